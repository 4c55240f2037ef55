package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	finnhubName   = "finnhub"
	finnhubSource = "Finnhub (Real-Time)"
)

// FinnhubConfig configures the Finnhub client.
type FinnhubConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retries int
}

// finnhubQuote is the /quote response body. Unknown symbols come back with
// zeros and nulls rather than an error status.
type finnhubQuote struct {
	Current       decimal.NullDecimal `json:"c"`
	Change        decimal.NullDecimal `json:"d"`
	PercentChange decimal.NullDecimal `json:"dp"`
	High          decimal.NullDecimal `json:"h"`
	Low           decimal.NullDecimal `json:"l"`
	Open          decimal.NullDecimal `json:"o"`
	PreviousClose decimal.NullDecimal `json:"pc"`
	Timestamp     int64               `json:"t"`
}

// FinnhubProvider fetches quotes from the Finnhub REST API.
type FinnhubProvider struct {
	client  *resty.Client
	apiKey  string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// ensure FinnhubProvider implements the interface
var _ Provider = (*FinnhubProvider)(nil)

// NewFinnhubProvider creates a Finnhub client. cfg.Timeout bounds a whole
// Quote call, retries included; network errors and 5xx responses are retried
// while that budget lasts.
func NewFinnhubProvider(cfg FinnhubConfig, logger *zap.SugaredLogger) *FinnhubProvider {
	client := resty.New().
		SetLogger(logger).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
			}
			return r.StatusCode() >= http.StatusInternalServerError
		})

	return &FinnhubProvider{
		client:  client,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Name returns the provider's identifier.
func (p *FinnhubProvider) Name() string { return finnhubName }

// Quote fetches the current quote for symbol.
func (p *FinnhubProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("X-Finnhub-Token", p.apiKey).
		SetQueryParam("symbol", symbol).
		Get("/quote")
	if err != nil {
		kind := KindNetwork
		if isTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return nil, &UpstreamError{Provider: finnhubName, Kind: kind, Err: err}
	}

	p.logger.Debugw("finnhub response", "symbol", symbol, "status", resp.StatusCode(), "attempts", resp.Request.Attempt)

	switch status := resp.StatusCode(); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, &UpstreamError{Provider: finnhubName, Kind: KindAuth, StatusCode: status, Err: errors.New(resp.Status())}
	case !resp.IsSuccess():
		return nil, &UpstreamError{Provider: finnhubName, Kind: KindStatus, StatusCode: status, Err: errors.New(resp.Status())}
	}

	var body finnhubQuote
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &UpstreamError{Provider: finnhubName, Kind: KindMalformed, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decoding quote: %w", err)}
	}

	if !body.Current.Valid || !body.Current.Decimal.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	return &Quote{
		Symbol:        symbol,
		Price:         body.Current.Decimal,
		Source:        finnhubSource,
		Change:        body.Change,
		PercentChange: body.PercentChange,
		High:          body.High,
		Low:           body.Low,
		Open:          body.Open,
		PreviousClose: body.PreviousClose,
		Timestamp:     body.Timestamp,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
