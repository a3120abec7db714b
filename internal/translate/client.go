// Package translate calls the translation API to render English blog content
// in Tamil. Translation is best effort: any failure falls back to the
// original text so publishing never blocks on the external service.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// The public quota tolerates ~10 requests per second per project.
	rateLimit = 5
	rateBurst = 10
)

type Client struct {
	apiURL      string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

func NewClient(apiURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiURL:      apiURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		logger:      logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// ToTamil translates English text to Tamil. On any error the original text
// comes back so callers can store it unchanged.
func (c *Client) ToTamil(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if c.apiKey == "" {
		return text
	}

	translated, err := c.translate(ctx, text, "en", "ta")
	if err != nil {
		c.logger.Warn("translation failed, keeping original text", "error", err)
		return text
	}
	return translated
}

func (c *Client) translate(ctx context.Context, text, source, target string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.apiURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translation API returned %d: %s", resp.StatusCode, raw)
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Data.Translations) == 0 {
		return "", fmt.Errorf("translation API returned no translations")
	}

	return parsed.Data.Translations[0].TranslatedText, nil
}
