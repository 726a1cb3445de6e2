package interfaces

import (
	"context"

	"ib-assistant/internal/types"
)

// Broker is the IB TWS session boundary. Every method maps to one
// registered capability and reports through an Outcome; calls against a
// disconnected session return failed outcomes rather than errors so a plan
// keeps executing past them.
type Broker interface {
	Connect(ctx context.Context) types.Outcome
	Disconnect(ctx context.Context) types.Outcome
	QualifyContracts(ctx context.Context, c types.Contract) types.Outcome
	MarketData(ctx context.Context, c types.Contract) types.Outcome
	PlaceLimitOrder(ctx context.Context, o types.OrderReq) types.Outcome
	Positions(ctx context.Context, account string) types.Outcome
	AccountValues(ctx context.Context, account string) types.Outcome
	IsConnected() bool
}
