package ibkrobs

import (
	"context"

	"ib-assistant/internal/interfaces"
	"ib-assistant/internal/logger"
	"ib-assistant/internal/trace"
	"ib-assistant/internal/types"
)

// observableBroker wraps a Broker with observability (logging & tracing)
type observableBroker struct {
	broker interfaces.Broker
}

// Compile-time interface check
var _ interfaces.Broker = (*observableBroker)(nil)

// Wrap wraps a broker with observability middleware
func Wrap(broker interfaces.Broker) interfaces.Broker {
	return &observableBroker{
		broker: broker,
	}
}

func (ob *observableBroker) Connect(ctx context.Context) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "broker.Connect")
	defer span.End()

	out := ob.broker.Connect(ctx)
	logger.Info(ctx, "Broker connect", "result", out.Result)
	return out
}

func (ob *observableBroker) Disconnect(ctx context.Context) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "broker.Disconnect")
	defer span.End()

	out := ob.broker.Disconnect(ctx)
	logger.Info(ctx, "Broker disconnect", "result", out.Result)
	return out
}

func (ob *observableBroker) QualifyContracts(ctx context.Context, c types.Contract) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "broker.QualifyContracts")
	defer span.End()

	logger.Debug(ctx, "Qualifying contract", "symbol", c.Symbol, "secType", c.SecType)
	out := ob.broker.QualifyContracts(ctx, c)
	logger.Debug(ctx, "Contract qualified", "symbol", c.Symbol, "result", out.Result)
	return out
}

func (ob *observableBroker) MarketData(ctx context.Context, c types.Contract) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "broker.MarketData")
	defer span.End()

	logger.Debug(ctx, "Requesting market data", "symbol", c.Symbol, "exchange", c.Exchange)
	out := ob.broker.MarketData(ctx, c)
	logger.Debug(ctx, "Market data received", "symbol", c.Symbol, "result", out.Result)
	return out
}

func (ob *observableBroker) PlaceLimitOrder(ctx context.Context, o types.OrderReq) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "broker.PlaceLimitOrder")
	defer span.End()

	logger.Info(ctx, "Placing limit order",
		"symbol", o.Symbol,
		"action", o.Action,
		"quantity", o.Quantity,
		"limit_price", o.LimitPrice,
	)

	out := ob.broker.PlaceLimitOrder(ctx, o)
	logger.Info(ctx, "Order placed", "symbol", o.Symbol, "result", out.Result)
	return out
}

func (ob *observableBroker) Positions(ctx context.Context, account string) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "broker.Positions")
	defer span.End()

	out := ob.broker.Positions(ctx, account)
	logger.Debug(ctx, "Positions fetched", "account", account, "result", out.Result)
	return out
}

func (ob *observableBroker) AccountValues(ctx context.Context, account string) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "broker.AccountValues")
	defer span.End()

	out := ob.broker.AccountValues(ctx, account)
	logger.Debug(ctx, "Account values fetched", "account", account, "result", out.Result)
	return out
}

func (ob *observableBroker) IsConnected() bool {
	return ob.broker.IsConnected()
}
