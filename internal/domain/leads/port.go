package leads

import "context"

// Sink delivers purchase intents to the sales inbox.
type Sink interface {
	SubmitPurchase(ctx context.Context, p PurchaseIntent) error
}
