package ibkr

import (
	"context"

	"ib-assistant/internal/interfaces"
	"ib-assistant/internal/tools"
	"ib-assistant/internal/types"
)

// RegisterCapabilities wires the broker session into the tool registry.
// Names, parameter lists and defaults are the prompt-visible contract the
// model is trained against; changing them breaks existing prompts.
func RegisterCapabilities(reg *tools.Registry, b interfaces.Broker) {
	contractParams := []tools.Param{
		tools.Required("symbol", "str"),
		tools.Optional("secType", "str", "STK"),
		tools.Optional("exchange", "str", "SMART"),
		tools.Optional("currency", "str", "USD"),
	}

	reg.MustRegister(&tools.Capability{
		Name: "connect",
		Doc: "Connect to IB TWS or Gateway using values from the environment " +
			"(IB_HOST, IB_PORT, IB_CLIENT).",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			return b.Connect(ctx), nil
		},
	})

	reg.MustRegister(&tools.Capability{
		Name: "disconnect",
		Doc:  "Disconnect from IB TWS or Gateway.",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			return b.Disconnect(ctx), nil
		},
	})

	reg.MustRegister(&tools.Capability{
		Name:   "qualifyContracts",
		Params: contractParams,
		Doc:    "Qualify a contract by filling in missing fields.",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			c, err := contractFromArgs(args)
			if err != nil {
				return types.Outcome{}, err
			}
			return b.QualifyContracts(ctx, c), nil
		},
	})

	reg.MustRegister(&tools.Capability{
		Name:   "reqMktData",
		Params: contractParams,
		Doc:    "Request market data (bid, ask, last, volume) for a contract.",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			c, err := contractFromArgs(args)
			if err != nil {
				return types.Outcome{}, err
			}
			return b.MarketData(ctx, c), nil
		},
	})

	reg.MustRegister(&tools.Capability{
		Name: "placeOrder",
		Params: []tools.Param{
			tools.Required("symbol", "str"),
			tools.Required("action", "str"),
			tools.Required("quantity", "float"),
			tools.Required("limitPrice", "float"),
			tools.Optional("secType", "str", "STK"),
			tools.Optional("exchange", "str", "SMART"),
			tools.Optional("currency", "str", "USD"),
		},
		Doc: "Place a limit order for a contract. Action is BUY or SELL.",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			c, err := contractFromArgs(args)
			if err != nil {
				return types.Outcome{}, err
			}
			action, err := tools.RequireString(args, "action")
			if err != nil {
				return types.Outcome{}, err
			}
			qty, err := tools.RequireFloat(args, "quantity")
			if err != nil {
				return types.Outcome{}, err
			}
			price, err := tools.RequireFloat(args, "limitPrice")
			if err != nil {
				return types.Outcome{}, err
			}
			return b.PlaceLimitOrder(ctx, types.OrderReq{
				Contract:   c,
				Action:     action,
				Quantity:   qty,
				LimitPrice: price,
			}), nil
		},
	})

	reg.MustRegister(&tools.Capability{
		Name:   "positions",
		Params: []tools.Param{tools.Optional("account", "str", "")},
		Doc:    "Retrieve current positions (symbol, quantity, avgCost) for the account.",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			account, err := tools.StringArg(args, "account", "")
			if err != nil {
				return types.Outcome{}, err
			}
			return b.Positions(ctx, account), nil
		},
	})

	reg.MustRegister(&tools.Capability{
		Name:   "accountValues",
		Params: []tools.Param{tools.Optional("account", "str", "")},
		Doc:    "Retrieve account values (key, value, currency) for the specified account.",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			account, err := tools.StringArg(args, "account", "")
			if err != nil {
				return types.Outcome{}, err
			}
			return b.AccountValues(ctx, account), nil
		},
	})
}

func contractFromArgs(args map[string]any) (types.Contract, error) {
	symbol, err := tools.RequireString(args, "symbol")
	if err != nil {
		return types.Contract{}, err
	}
	secType, err := tools.StringArg(args, "secType", "STK")
	if err != nil {
		return types.Contract{}, err
	}
	exchange, err := tools.StringArg(args, "exchange", "SMART")
	if err != nil {
		return types.Contract{}, err
	}
	currency, err := tools.StringArg(args, "currency", "USD")
	if err != nil {
		return types.Contract{}, err
	}
	return types.Contract{Symbol: symbol, SecType: secType, Exchange: exchange, Currency: currency}, nil
}
