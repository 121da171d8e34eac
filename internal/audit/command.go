package audit

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/provaudit/internal/aireview"
	"github.com/temirov/provaudit/internal/githubrepo"
	"github.com/temirov/provaudit/internal/lockfile"
	"github.com/temirov/provaudit/internal/scorecard"
	"github.com/temirov/provaudit/internal/throttle"
	"github.com/temirov/provaudit/internal/utils"
)

const (
	commandNameConstant           = "audit"
	commandShortDescription       = "Audit Terraform providers declared in a dependency lock file"
	commandLongDescription        = "audit extracts provider identities from a Terraform dependency lock file, checks whether the expected GitHub repositories exist, fetches OpenSSF scorecards, optionally requests an AI summary of the batch, and prints a report table."
	flagLockfileName              = "lockfile"
	flagLockfileDescription       = "Path to the Terraform dependency lock file."
	flagDebugName                 = "debug"
	flagDebugDescription          = "Emit extraction and network diagnostics to stderr."
	apiKeyEnvironmentVariableName = "OPENAI_API_KEY"
	probeDelayConstant            = 500 * time.Millisecond
	scoreDelayConstant            = time.Second
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted audit configuration.
type ConfigurationProvider func() CommandConfiguration

// APIKeyProvider supplies the optional summary credential.
type APIKeyProvider func() string

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	APIKeyProvider        APIKeyProvider
	Extractor             LockfileExtractor
	RepositoryChecker     RepositoryChecker
	ScorecardFetcher      ScorecardFetcher
	Summarizer            BatchSummarizer
	ProbePacer            Pacer
	ScorePacer            Pacer
}

// Build constructs the cobra command for the provider audit workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()

	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  builder.run,
	}

	command.Flags().String(flagLockfileName, defaults.Lockfile, flagLockfileDescription)
	command.Flags().Bool(flagDebugName, defaults.Debug, flagDebugDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command)

	service := NewService(
		builder.resolveExtractor(),
		builder.resolveRepositoryChecker(),
		builder.resolveScorecardFetcher(),
		builder.resolveSummarizer(options),
		builder.resolveProbePacer(),
		builder.resolveScorePacer(),
		utils.NewFlushingWriter(command.OutOrStdout()),
		command.ErrOrStderr(),
		builder.resolveLogger(),
	)

	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) CommandOptions {
	configuration := builder.resolveConfiguration().sanitize()

	options := CommandOptions{
		LockfilePath: configuration.Lockfile,
		DebugOutput:  configuration.Debug,
		AIModelName:  configuration.AIModel,
	}

	if command.Flags().Changed(flagLockfileName) {
		lockfileFlagValue, _ := command.Flags().GetString(flagLockfileName)
		options.LockfilePath = lockfileFlagValue
	}

	if command.Flags().Changed(flagDebugName) {
		debugFlagValue, _ := command.Flags().GetBool(flagDebugName)
		options.DebugOutput = debugFlagValue
	}

	return options
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveExtractor() LockfileExtractor {
	if builder.Extractor != nil {
		return builder.Extractor
	}
	return lockfile.NewExtractor()
}

func (builder *CommandBuilder) resolveRepositoryChecker() RepositoryChecker {
	if builder.RepositoryChecker != nil {
		return builder.RepositoryChecker
	}
	return githubrepo.NewClient()
}

func (builder *CommandBuilder) resolveScorecardFetcher() ScorecardFetcher {
	if builder.ScorecardFetcher != nil {
		return builder.ScorecardFetcher
	}
	return scorecard.NewClient()
}

func (builder *CommandBuilder) resolveSummarizer(options CommandOptions) BatchSummarizer {
	if builder.Summarizer != nil {
		return builder.Summarizer
	}
	return aireview.NewClient(builder.resolveAPIKey(), options.AIModelName)
}

func (builder *CommandBuilder) resolveAPIKey() string {
	if builder.APIKeyProvider != nil {
		return builder.APIKeyProvider()
	}
	return os.Getenv(apiKeyEnvironmentVariableName)
}

func (builder *CommandBuilder) resolveProbePacer() Pacer {
	if builder.ProbePacer != nil {
		return builder.ProbePacer
	}
	return throttle.NewThrottle(probeDelayConstant)
}

func (builder *CommandBuilder) resolveScorePacer() Pacer {
	if builder.ScorePacer != nil {
		return builder.ScorePacer
	}
	return throttle.NewThrottle(scoreDelayConstant)
}
