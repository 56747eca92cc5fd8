package leads

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	domain "github.com/400brands/brand-doctor/internal/domain/leads"
	"github.com/400brands/brand-doctor/internal/metrics"
)

type Service struct {
	Sink domain.Sink
}

// SubmitPurchase validates the checkout form and forwards it to the sales webhook.
func (s *Service) SubmitPurchase(ctx context.Context, p domain.PurchaseIntent) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		metrics.Leads.WithLabelValues("invalid").Inc()
		return err
	}

	if err := s.Sink.SubmitPurchase(ctx, p); err != nil {
		metrics.Leads.WithLabelValues("error").Inc()
		return fmt.Errorf("submit purchase: %w", err)
	}

	metrics.Leads.WithLabelValues("submitted").Inc()
	zerolog.Ctx(ctx).Info().Str("plan", p.PlanName).Str("price", p.Price).Msg("purchase intent submitted")
	return nil
}
