package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/resep/pkg/config"
	"github.com/zfogg/resep/pkg/logger"
)

const userAgent = "Resep-CLI/0.1.0"

var httpClient *resty.Client

// Init initializes the HTTP client from configuration
func Init() {
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second
	Configure(config.GetString("api.base_url"), timeout)
}

// Configure replaces the HTTP client with one pointing at baseURL
func Configure(baseURL string, timeout time.Duration) {
	httpClient = resty.New()

	httpClient.SetBaseURL(baseURL)
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	httpClient.SetHeader("User-Agent", userAgent)
	httpClient.SetHeader("Accept", "application/json")

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response",
			"status", resp.StatusCode(),
			"url", resp.Request.URL,
			"duration", resp.Time(),
		)
		return nil
	})
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// BaseURL returns the API base URL the client is configured with
func BaseURL() string {
	return GetClient().BaseURL
}
