package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/logger"
	"optionlab/internal/metrics"
	"optionlab/internal/quote"
	"optionlab/internal/validator"
)

// quoteService fronts a quote provider with validation, an optional cache
// and error classification.
type quoteService struct {
	provider quote.Provider
	cache    quote.Cache
	metrics  *metrics.Metrics
	logger   *zap.SugaredLogger
}

// NewQuoteService creates a new QuoteServicer. cache and m may be nil.
func NewQuoteService(provider quote.Provider, cache quote.Cache, m *metrics.Metrics) QuoteServicer {
	return &quoteService{
		provider: provider,
		cache:    cache,
		metrics:  m,
		logger:   logger.Named("quote"),
	}
}

// GetQuote returns the latest quote for symbol.
func (s *quoteService) GetQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "stock symbol is required")
	}
	if !validator.IsTicker(symbol) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid stock symbol")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, symbol)
		if err != nil {
			s.logger.Warnw("quote cache read failed", "symbol", symbol, "error", err)
		}
		if s.metrics != nil && err == nil {
			s.metrics.ObserveCache(cached != nil)
		}
		if cached != nil {
			return cached, nil
		}
	}

	start := time.Now()
	q, err := s.provider.Quote(ctx, symbol)
	if s.metrics != nil {
		s.metrics.ObserveUpstream(s.provider.Name(), outcome(err), time.Since(start))
	}
	if err != nil {
		return nil, classifyQuoteError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, q); err != nil {
			s.logger.Warnw("quote cache write failed", "symbol", symbol, "error", err)
		}
	}

	return q, nil
}

func outcome(err error) string {
	var upErr *quote.UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, quote.ErrSymbolNotFound):
		return "not_found"
	case errors.As(err, &upErr):
		return string(upErr.Kind)
	}
	return "error"
}

// classifyQuoteError maps provider failures onto API errors. The cause is
// kept as the internal error for logging.
func classifyQuoteError(err error) error {
	if errors.Is(err, quote.ErrSymbolNotFound) {
		return apperrors.Wrap(apperrors.ErrSymbolNotFound, err)
	}

	var upErr *quote.UpstreamError
	if errors.As(err, &upErr) {
		switch upErr.Kind {
		case quote.KindTimeout:
			return apperrors.Wrap(apperrors.ErrUpstreamTimeout, err)
		case quote.KindAuth:
			return apperrors.Wrap(apperrors.ErrUpstreamAuth, err)
		case quote.KindMalformed:
			return apperrors.Wrap(apperrors.ErrUpstreamBadResponse, err)
		default:
			return apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err)
		}
	}

	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
