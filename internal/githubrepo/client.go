package githubrepo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const (
	defaultBaseURLConstant            = "https://github.com"
	githubHostConstant                = "github.com"
	providerRepositoryPrefixConstant  = "terraform-provider-"
	repositoryURLTemplateConstant     = "%s/%s/%s"
	repositoryPathTemplateConstant    = "%s/%s/%s"
	probeTimeoutConstant              = 10 * time.Second
	probeRequestCreationErrorTemplate = "unable to create probe request: %w"
)

// ExistenceStatus captures the tri-state outcome of a repository probe.
type ExistenceStatus string

// Supported existence statuses.
const (
	ExistenceStatusExists  ExistenceStatus = "exists"
	ExistenceStatusMissing ExistenceStatus = "missing"
	ExistenceStatusUnknown ExistenceStatus = "unknown"
)

// ProbeOutcome pairs the stored tri-state status with diagnostic detail that
// verbose output may surface but stored identity state never distinguishes.
type ProbeOutcome struct {
	Status         ExistenceStatus
	HTTPStatusCode int
	TransportError error
}

// Client issues repository existence probes against a GitHub-compatible host.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a Client against the public GitHub host.
func NewClient() *Client {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = probeTimeoutConstant
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURLConstant,
	}
}

// NewClientWithOptions constructs a Client with injected transport and base URL for testing.
func NewClientWithOptions(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
		httpClient.Timeout = probeTimeoutConstant
	}
	if len(baseURL) == 0 {
		baseURL = defaultBaseURLConstant
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// RepositoryName derives the conventional provider repository name.
func RepositoryName(providerName string) string {
	return providerRepositoryPrefixConstant + providerName
}

// RepositoryPath derives the host-qualified repository locator used to key
// third-party scoring services.
func RepositoryPath(organization string, providerName string) string {
	return fmt.Sprintf(repositoryPathTemplateConstant, githubHostConstant, organization, RepositoryName(providerName))
}

// CheckRepository performs exactly one metadata-only probe for the provider's
// expected repository. Success maps to exists, not-found to missing, and any
// other status or transport failure to unknown.
func (client *Client) CheckRepository(executionContext context.Context, organization string, providerName string) ProbeOutcome {
	repositoryURL := fmt.Sprintf(repositoryURLTemplateConstant, client.baseURL, organization, RepositoryName(providerName))

	probeRequest, requestCreationError := http.NewRequestWithContext(executionContext, http.MethodHead, repositoryURL, nil)
	if requestCreationError != nil {
		return ProbeOutcome{
			Status:         ExistenceStatusUnknown,
			TransportError: fmt.Errorf(probeRequestCreationErrorTemplate, requestCreationError),
		}
	}

	probeResponse, transportError := client.httpClient.Do(probeRequest)
	if transportError != nil {
		return ProbeOutcome{
			Status:         ExistenceStatusUnknown,
			TransportError: transportError,
		}
	}
	defer probeResponse.Body.Close()

	outcome := ProbeOutcome{HTTPStatusCode: probeResponse.StatusCode}
	switch {
	case probeResponse.StatusCode >= http.StatusOK && probeResponse.StatusCode < http.StatusMultipleChoices:
		outcome.Status = ExistenceStatusExists
	case probeResponse.StatusCode == http.StatusNotFound:
		outcome.Status = ExistenceStatusMissing
	default:
		outcome.Status = ExistenceStatusUnknown
	}

	return outcome
}
