package scorecard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const (
	defaultBaseURLConstant            = "https://api.securityscorecards.dev"
	projectEndpointTemplateConstant   = "%s/projects/%s"
	fetchTimeoutConstant              = 30 * time.Second
	fetchRequestCreationErrorTemplate = "unable to create scorecard request: %w"
	responseDecodeErrorTemplate       = "unable to decode scorecard response: %w"
)

// Client fetches scorecard documents from an OpenSSF Scorecard compatible API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a Client against the public scorecard API.
func NewClient() *Client {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = fetchTimeoutConstant
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURLConstant,
	}
}

// NewClientWithOptions constructs a Client with injected transport and base URL for testing.
func NewClientWithOptions(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
		httpClient.Timeout = fetchTimeoutConstant
	}
	if len(baseURL) == 0 {
		baseURL = defaultBaseURLConstant
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Fetch issues exactly one request for the repository's scorecard. A 404 is
// the expected "repository exists but was never scored" outcome; any other
// failure collapses to unknown or network-error without aborting the batch.
func (client *Client) Fetch(executionContext context.Context, repositoryPath string) Assessment {
	endpointURL := fmt.Sprintf(projectEndpointTemplateConstant, client.baseURL, repositoryPath)

	fetchRequest, requestCreationError := http.NewRequestWithContext(executionContext, http.MethodGet, endpointURL, nil)
	if requestCreationError != nil {
		return Assessment{
			Status:         AssessmentStatusNetworkError,
			TransportError: fmt.Errorf(fetchRequestCreationErrorTemplate, requestCreationError),
		}
	}

	fetchResponse, transportError := client.httpClient.Do(fetchRequest)
	if transportError != nil {
		return Assessment{
			Status:         AssessmentStatusNetworkError,
			TransportError: transportError,
		}
	}
	defer fetchResponse.Body.Close()

	switch {
	case fetchResponse.StatusCode == http.StatusOK:
	case fetchResponse.StatusCode == http.StatusNotFound:
		return Assessment{
			Status:         AssessmentStatusNotFound,
			HTTPStatusCode: fetchResponse.StatusCode,
		}
	default:
		return Assessment{
			Status:         AssessmentStatusUnknown,
			HTTPStatusCode: fetchResponse.StatusCode,
		}
	}

	decodedResult := Result{}
	if decodeError := json.NewDecoder(fetchResponse.Body).Decode(&decodedResult); decodeError != nil {
		return Assessment{
			Status:         AssessmentStatusUnknown,
			HTTPStatusCode: fetchResponse.StatusCode,
			TransportError: fmt.Errorf(responseDecodeErrorTemplate, decodeError),
		}
	}

	return Assessment{
		Status:         AssessmentStatusScored,
		Result:         &decodedResult,
		HTTPStatusCode: fetchResponse.StatusCode,
	}
}
