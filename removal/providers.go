package removal

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	removeBgBaseUrl = "https://api.remove.bg"
	clipdropBaseUrl = "https://clipdrop-api.co"
)

// ProviderOpts configures an HTTP removal provider.
type ProviderOpts struct {
	BaseURL string
	APIKey  string
}

// RemoveBgProvider calls the remove.bg API.
type RemoveBgProvider struct {
	httpClient *resty.Client
	apiKey     string
}

// NewRemoveBgProvider creates a remove.bg backed provider.
func NewRemoveBgProvider(opts ProviderOpts) *RemoveBgProvider {
	baseURL := removeBgBaseUrl
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	return &RemoveBgProvider{
		httpClient: resty.New().SetBaseURL(baseURL),
		apiKey:     opts.APIKey,
	}
}

func (p *RemoveBgProvider) Name() string { return "remove.bg" }

// Attempt posts the image and returns the processed PNG bytes.
func (p *RemoveBgProvider) Attempt(ctx context.Context, imageData []byte) ([]byte, error) {
	res, err := handleError(p.httpClient.
		NewRequest().
		SetContext(ctx).
		SetHeader("X-Api-Key", p.apiKey).
		SetFileReader("image_file", "image.png", bytes.NewReader(imageData)).
		SetFormData(map[string]string{
			"size":   "auto",
			"format": "png",
		}).
		Post("/v1.0/removebg"))
	if err != nil {
		return nil, err
	}

	return res.Body(), nil
}

// ClipdropProvider calls the Clipdrop remove-background API.
type ClipdropProvider struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClipdropProvider creates a Clipdrop backed provider.
func NewClipdropProvider(opts ProviderOpts) *ClipdropProvider {
	baseURL := clipdropBaseUrl
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	return &ClipdropProvider{
		httpClient: resty.New().SetBaseURL(baseURL),
		apiKey:     opts.APIKey,
	}
}

func (p *ClipdropProvider) Name() string { return "clipdrop" }

// Attempt posts the image and returns the processed PNG bytes.
func (p *ClipdropProvider) Attempt(ctx context.Context, imageData []byte) ([]byte, error) {
	res, err := handleError(p.httpClient.
		NewRequest().
		SetContext(ctx).
		SetHeader("x-api-key", p.apiKey).
		SetFileReader("image_file", "image.png", bytes.NewReader(imageData)).
		Post("/remove-background/v1"))
	if err != nil {
		return nil, err
	}

	return res.Body(), nil
}

// handleError is a generic error handler for failing responses (>399 status
// code). Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}

	return res, nil
}
