package types

// Contract identifies a tradeable instrument the way TWS expects it.
type Contract struct {
	Symbol   string `json:"symbol"`
	SecType  string `json:"secType"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
}

// OrderReq is a limit order request against a contract.
type OrderReq struct {
	Contract
	Action     string  `json:"action"` // BUY or SELL
	Quantity   float64 `json:"quantity"`
	LimitPrice float64 `json:"limitPrice"`
}

// Position is one entry in the paper or live position book.
type Position struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	AvgCost  float64 `json:"avgCost"`
}

// AccountValue is one account metric row.
type AccountValue struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Currency string `json:"currency"`
}
