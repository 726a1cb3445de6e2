package news

import (
	"context"
	"fmt"

	"ib-assistant/internal/tools"
	"ib-assistant/internal/types"
)

// RegisterCapability adds the headlines tool to the registry. Unlike the
// broker capabilities it does not require an active TWS session.
func RegisterCapability(reg *tools.Registry, s *Scraper, maxHeadlines int) {
	reg.MustRegister(&tools.Capability{
		Name: "headlines",
		Params: []tools.Param{
			tools.Required("symbol", "str"),
			tools.Optional("limit", "int", fmt.Sprintf("%d", maxHeadlines)),
		},
		Doc: "Fetch recent finance news headlines for a symbol.",
		Execute: func(ctx context.Context, args map[string]any) (types.Outcome, error) {
			symbol, err := tools.RequireString(args, "symbol")
			if err != nil {
				return types.Outcome{}, err
			}
			limit, err := tools.IntArg(args, "limit", maxHeadlines)
			if err != nil {
				return types.Outcome{}, err
			}

			found, err := s.Headlines(ctx, symbol, limit)
			if err != nil {
				return types.Failed(fmt.Sprintf("headline fetch failed: %v", err)), nil
			}
			if len(found) == 0 {
				return types.Failed(fmt.Sprintf("no headlines found for %s", symbol)), nil
			}
			return types.Success(found), nil
		},
	})
}
