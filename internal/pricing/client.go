package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"lending-api/internal/config"
	"lending-api/internal/infrastructure/monitoring"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Oracle quotes the market price of a car model.
type Oracle interface {
	GetCarPrice(ctx context.Context, model string) (decimal.Decimal, error)
}

type priceResponse struct {
	Price decimal.Decimal `json:"price"`
}

// Client calls the external pricing service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Oracle = (*Client)(nil)

func NewClient(cfg config.PricingConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "pricingClient")),
	}
}

func (c *Client) GetCarPrice(ctx context.Context, model string) (price decimal.Decimal, err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		monitoring.RecordPricingLookup("oracle", status)
	}()

	endpoint := c.baseURL + "/prices?" + url.Values{"model": {model}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", apperrors.ErrPricingUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Pricing request failed", slog.String("model", model), slog.Any("error", err))
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrPricingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WarnContext(ctx, "Pricing service returned an error", slog.String("model", model), slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return decimal.Zero, fmt.Errorf("%w: status %d", apperrors.ErrPricingUnavailable, resp.StatusCode)
	}

	var out priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty response body")
		}
		return decimal.Zero, fmt.Errorf("%w: decoding response: %v", apperrors.ErrPricingUnavailable, err)
	}
	if !out.Price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive price %s for %q", apperrors.ErrPricingUnavailable, out.Price, model)
	}

	c.logger.DebugContext(ctx, "Car priced", slog.String("model", model), slog.String("price", out.Price.String()))
	return out.Price, nil
}
