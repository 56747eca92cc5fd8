package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/400brands/brand-doctor/internal/domain/leads"
)

type mockSink struct{ mock.Mock }

func (m *mockSink) SubmitPurchase(ctx context.Context, p domain.PurchaseIntent) error {
	return m.Called(ctx, p).Error(0)
}

func TestSubmitPurchase(t *testing.T) {
	sink := &mockSink{}
	sink.On("SubmitPurchase", mock.Anything, domain.PurchaseIntent{
		FullName: "Ada Obi", Email: "ada@example.com", Phone: "0800", PlanName: "🔹 Growth", Price: "$299",
	}).Return(nil)

	svc := &Service{Sink: sink}
	err := svc.SubmitPurchase(context.Background(), domain.PurchaseIntent{
		FullName: " Ada Obi ", Email: "ada@example.com ", Phone: "0800", PlanName: "🔹 Growth", Price: "$299",
	})

	require.NoError(t, err)
	sink.AssertExpectations(t)
}

func TestSubmitPurchase_InvalidSkipsSink(t *testing.T) {
	sink := &mockSink{}
	svc := &Service{Sink: sink}

	err := svc.SubmitPurchase(context.Background(), domain.PurchaseIntent{Email: "ada@example.com", Phone: "1"})

	assert.Equal(t, domain.ErrFullNameRequired, err)
	sink.AssertNotCalled(t, "SubmitPurchase", mock.Anything, mock.Anything)
}

func TestSubmitPurchase_SinkError(t *testing.T) {
	sink := &mockSink{}
	sink.On("SubmitPurchase", mock.Anything, mock.Anything).Return(errors.New("webhook returned 500"))

	svc := &Service{Sink: sink}
	err := svc.SubmitPurchase(context.Background(), domain.PurchaseIntent{
		FullName: "Ada", Email: "ada@example.com", Phone: "1", PlanTitle: "Growth",
	})

	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))
}
