package aireview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

const (
	defaultEndpointURLConstant       = "https://api.openai.com/v1/chat/completions"
	defaultModelNameConstant         = "gpt-4o-mini"
	requestTimeoutConstant           = 60 * time.Second
	systemRoleConstant               = "system"
	userRoleConstant                 = "user"
	contentTypeHeaderConstant        = "Content-Type"
	authorizationHeaderConstant      = "Authorization"
	jsonContentTypeConstant          = "application/json"
	bearerTokenTemplateConstant      = "Bearer %s"
	systemInstructionConstant        = "You are a security analyst reviewing Terraform provider supply-chain risk. Summarize the overall posture for an engineering audience in one short paragraph, calling out the weakest providers and their failing checks."
	userMessageTemplateConstant      = "Analyze the following Terraform provider security report:\n\n%s"
	payloadMarshalErrorTemplate      = "unable to encode analysis payload: %w"
	requestCreationErrorTemplate     = "unable to create summary request: %w"
	requestTransportErrorTemplate    = "summary request failed: %w"
	unexpectedStatusErrorTemplate = "summary request returned status %d"
	responseDecodeErrorTemplate   = "unable to decode summary response: %w"
	jsonIndentPrefixConstant      = ""
	jsonIndentConstant            = "  "
	missingCredentialErrorMessage = "summary credential not configured"
	emptyCompletionErrorMessage   = "summary response contained no choices"
)

var (
	errMissingCredential = errors.New(missingCredentialErrorMessage)
	errEmptyCompletion   = errors.New(emptyCompletionErrorMessage)
)

// DefaultModelName returns the model identifier used when configuration does not override it.
func DefaultModelName() string {
	return defaultModelNameConstant
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client posts one batch summary request to a chat-completion endpoint.
type Client struct {
	apiKey      string
	modelName   string
	endpointURL string
	httpClient  *http.Client
}

// NewClient constructs a Client for the public endpoint with the given credential and model.
func NewClient(apiKey string, modelName string) *Client {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = requestTimeoutConstant
	if len(modelName) == 0 {
		modelName = defaultModelNameConstant
	}
	return &Client{
		apiKey:      apiKey,
		modelName:   modelName,
		endpointURL: defaultEndpointURLConstant,
		httpClient:  httpClient,
	}
}

// NewClientWithOptions constructs a Client with injected transport and endpoint for testing.
func NewClientWithOptions(apiKey string, modelName string, httpClient *http.Client, endpointURL string) *Client {
	client := NewClient(apiKey, modelName)
	if httpClient != nil {
		client.httpClient = httpClient
	}
	if len(endpointURL) > 0 {
		client.endpointURL = endpointURL
	}
	return client
}

// Configured reports whether a credential is available for the summary request.
func (client *Client) Configured() bool {
	return client != nil && len(client.apiKey) > 0
}

// Summarize sends the pretty-printed analysis payload and returns the generated text.
func (client *Client) Summarize(executionContext context.Context, payload AnalysisPayload) (string, error) {
	if !client.Configured() {
		return "", errMissingCredential
	}

	prettyPayload, marshalError := json.MarshalIndent(payload, jsonIndentPrefixConstant, jsonIndentConstant)
	if marshalError != nil {
		return "", fmt.Errorf(payloadMarshalErrorTemplate, marshalError)
	}

	completionRequest := chatCompletionRequest{
		Model: client.modelName,
		Messages: []chatMessage{
			{Role: systemRoleConstant, Content: systemInstructionConstant},
			{Role: userRoleConstant, Content: fmt.Sprintf(userMessageTemplateConstant, string(prettyPayload))},
		},
	}

	requestBody, encodeError := json.Marshal(completionRequest)
	if encodeError != nil {
		return "", fmt.Errorf(payloadMarshalErrorTemplate, encodeError)
	}

	summaryRequest, requestCreationError := http.NewRequestWithContext(executionContext, http.MethodPost, client.endpointURL, bytes.NewReader(requestBody))
	if requestCreationError != nil {
		return "", fmt.Errorf(requestCreationErrorTemplate, requestCreationError)
	}
	summaryRequest.Header.Set(contentTypeHeaderConstant, jsonContentTypeConstant)
	summaryRequest.Header.Set(authorizationHeaderConstant, fmt.Sprintf(bearerTokenTemplateConstant, client.apiKey))

	summaryResponse, transportError := client.httpClient.Do(summaryRequest)
	if transportError != nil {
		return "", fmt.Errorf(requestTransportErrorTemplate, transportError)
	}
	defer summaryResponse.Body.Close()

	if summaryResponse.StatusCode != http.StatusOK {
		return "", fmt.Errorf(unexpectedStatusErrorTemplate, summaryResponse.StatusCode)
	}

	decodedResponse := chatCompletionResponse{}
	if decodeError := json.NewDecoder(summaryResponse.Body).Decode(&decodedResponse); decodeError != nil {
		return "", fmt.Errorf(responseDecodeErrorTemplate, decodeError)
	}

	if len(decodedResponse.Choices) == 0 {
		return "", errEmptyCompletion
	}

	return decodedResponse.Choices[0].Message.Content, nil
}
