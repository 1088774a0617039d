// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

const instrumentationName = "github.com/jsamuelsen/quotation-service/app"

// QuotationService is the gateway in front of the quotation store.
// It validates and persists new quotations, hands each persisted record to
// the broadcaster, and answers the two list queries.
type QuotationService struct {
	store       ports.QuotationStore
	broadcaster ports.Broadcaster
	logger      *slog.Logger
	created     metric.Int64Counter
}

// QuotationServiceConfig contains the dependencies of the quotation service.
type QuotationServiceConfig struct {
	Store       ports.QuotationStore
	Broadcaster ports.Broadcaster
	Logger      *slog.Logger
}

// NewQuotationService creates a quotation service.
// It panics if Store or Broadcaster is nil; Logger defaults to slog.Default().
func NewQuotationService(cfg QuotationServiceConfig) *QuotationService {
	if cfg.Store == nil {
		panic("app: quotation store is required")
	}

	if cfg.Broadcaster == nil {
		panic("app: broadcaster is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	created, err := otel.Meter(instrumentationName).Int64Counter(
		"quotations.created",
		metric.WithDescription("Number of quotations persisted"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &QuotationService{
		store:       cfg.Store,
		broadcaster: cfg.Broadcaster,
		logger:      logger,
		created:     created,
	}
}

// Create validates draft, persists it and publishes the stored record.
//
// Publish is only attempted after the store acknowledged the write, and
// Create returns only after Publish returned. A validation or persistence
// failure suppresses the broadcast.
//
// Once validation passes, the write and the broadcast run detached from
// ctx cancellation and deadlines. A client going away cannot leave a
// committed record unannounced.
func (s *QuotationService) Create(ctx context.Context, draft *domain.QuotationDraft) (*domain.Quotation, error) {
	if err := draft.Validate(); err != nil {
		s.logger.InfoContext(ctx, "rejected quotation", slog.Any("error", err))
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	q, err := s.store.Create(ctx, draft.Quotation())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist quotation", slog.Any("error", err))
		return nil, err
	}

	if s.created != nil {
		s.created.Add(ctx, 1)
	}

	s.broadcaster.Publish(ctx, q)

	s.logger.InfoContext(ctx, "created quotation",
		slog.String("quotation_id", q.ID),
		slog.Time("event_date", q.EventDate),
	)

	return q, nil
}

// ListByEventDate returns all quotations, soonest event first.
func (s *QuotationService) ListByEventDate(ctx context.Context) ([]*domain.Quotation, error) {
	quotations, err := s.store.ListByEventDate(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotations by event date", slog.Any("error", err))
		return nil, err
	}

	return quotations, nil
}

// ListByCreatedDate returns all quotations, newest first.
func (s *QuotationService) ListByCreatedDate(ctx context.Context) ([]*domain.Quotation, error) {
	quotations, err := s.store.ListByCreatedDate(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotations by created date", slog.Any("error", err))
		return nil, err
	}

	return quotations, nil
}
