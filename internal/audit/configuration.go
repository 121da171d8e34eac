package audit

import (
	"fmt"
	"strings"

	"github.com/temirov/provaudit/internal/aireview"
)

const (
	defaultLockfilePathConstant      = ".terraform.lock.hcl"
	lockfileConfigurationKeySuffix   = "lockfile"
	debugConfigurationKeySuffix      = "debug"
	aiModelConfigurationKeySuffix    = "ai_model"
	configurationKeyTemplateConstant = "%s.%s"
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Lockfile string `mapstructure:"lockfile"`
	Debug    bool   `mapstructure:"debug"`
	AIModel  string `mapstructure:"ai_model"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Lockfile: defaultLockfilePathConstant,
		Debug:    false,
		AIModel:  aireview.DefaultModelName(),
	}
}

// DefaultConfigurationValues exposes the baseline values keyed for the configuration loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		fmt.Sprintf(configurationKeyTemplateConstant, configurationKeyPrefix, lockfileConfigurationKeySuffix): defaults.Lockfile,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationKeyPrefix, debugConfigurationKeySuffix):    defaults.Debug,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationKeyPrefix, aiModelConfigurationKeySuffix):  defaults.AIModel,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Lockfile = strings.TrimSpace(configuration.Lockfile)
	if len(sanitized.Lockfile) == 0 {
		sanitized.Lockfile = defaultLockfilePathConstant
	}

	sanitized.AIModel = strings.TrimSpace(configuration.AIModel)
	if len(sanitized.AIModel) == 0 {
		sanitized.AIModel = aireview.DefaultModelName()
	}

	return sanitized
}
