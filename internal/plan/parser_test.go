package plan

import (
	"errors"
	"testing"
)

func TestParseEmptyActionsIsValid(t *testing.T) {
	p, err := Parse(`{"actions":[]}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(p.Actions) != 0 {
		t.Errorf("expected empty plan, got %d actions", len(p.Actions))
	}
}

func TestParseMissingActionsKey(t *testing.T) {
	_, err := Parse(`{"steps":[]}`)
	if !errors.Is(err, ErrMalformedPlan) {
		t.Errorf("expected ErrMalformedPlan, got %v", err)
	}
}

func TestParseNoObjectLiteral(t *testing.T) {
	_, err := Parse("I'm sorry, I can't help with that.")
	if !errors.Is(err, ErrMalformedPlan) {
		t.Errorf("expected ErrMalformedPlan, got %v", err)
	}
}

func TestParseSingleQuotedDialect(t *testing.T) {
	// Exactly the shape the prompt's worked examples teach the model.
	text := `{'actions': [{'name': 'connect', 'parameters': {}}, ` +
		`{'name': 'reqMktData', 'parameters': {'symbol': 'AAPL', 'secType': 'STK', 'exchange': 'SMART', 'currency': 'USD'}}]}`

	p, err := Parse(text)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(p.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(p.Actions))
	}
	if p.Actions[0].Name != "connect" || len(p.Actions[0].Parameters) != 0 {
		t.Errorf("unexpected first action: %+v", p.Actions[0])
	}
	if p.Actions[1].Name != "reqMktData" {
		t.Errorf("unexpected second action: %+v", p.Actions[1])
	}
	if got := p.Actions[1].Parameters["symbol"]; got != "AAPL" {
		t.Errorf("symbol = %v, want AAPL", got)
	}
}

func TestParseAccumulatedFragments(t *testing.T) {
	// Streamed fragments are concatenated before parsing.
	fragments := []string{"{'actions': [", "{'name': 'connect', 'parameters': {}}]}"}
	text := fragments[0] + fragments[1]

	p, err := Parse(text)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(p.Actions) != 1 || p.Actions[0].Name != "connect" {
		t.Errorf("unexpected plan: %+v", p)
	}
	if len(p.Actions[0].Parameters) != 0 {
		t.Errorf("expected empty parameters, got %v", p.Actions[0].Parameters)
	}
}

func TestParseBooleanCasings(t *testing.T) {
	for _, text := range []string{
		`{"actions":[{"name":"placeOrder","parameters":{"transmit":true,"hidden":false}}]}`,
		`{'actions':[{'name':'placeOrder','parameters':{'transmit':True,'hidden':False}}]}`,
	} {
		p, err := Parse(text)
		if err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		params := p.Actions[0].Parameters
		if params["transmit"] != true || params["hidden"] != false {
			t.Errorf("%s: booleans not parsed: %v", text, params)
		}
	}
}

func TestParseBooleanTokenInsideString(t *testing.T) {
	// A symbol containing "true" must survive intact; this is what the
	// substring rewrite the parser replaced used to corrupt.
	p, err := Parse(`{'actions':[{'name':'reqMktData','parameters':{'symbol':'TRUEVALUE', 'note':'is true'}}]}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	params := p.Actions[0].Parameters
	if params["symbol"] != "TRUEVALUE" || params["note"] != "is true" {
		t.Errorf("string values corrupted: %v", params)
	}
}

func TestParseNumbersAndNull(t *testing.T) {
	p, err := Parse(`{'actions':[{'name':'placeOrder','parameters':{'quantity': 10, 'limitPrice': 187.5, 'account': None}}]}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	params := p.Actions[0].Parameters
	if params["quantity"] != int64(10) {
		t.Errorf("quantity = %v (%T), want int64 10", params["quantity"], params["quantity"])
	}
	if params["limitPrice"] != 187.5 {
		t.Errorf("limitPrice = %v, want 187.5", params["limitPrice"])
	}
	if v, ok := params["account"]; !ok || v != nil {
		t.Errorf("account = %v, want nil", v)
	}
}

func TestParseMissingParametersDefaultsEmpty(t *testing.T) {
	p, err := Parse(`{'actions':[{'name':'disconnect'}]}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Actions[0].Parameters == nil || len(p.Actions[0].Parameters) != 0 {
		t.Errorf("expected empty parameter map, got %v", p.Actions[0].Parameters)
	}
}

func TestParseActionWithoutName(t *testing.T) {
	_, err := Parse(`{'actions':[{'parameters':{}}]}`)
	if !errors.Is(err, ErrMalformedPlan) {
		t.Errorf("expected ErrMalformedPlan, got %v", err)
	}
}

func TestParseSurroundingProseAndFences(t *testing.T) {
	text := "Here is the plan:\n```json\n{\"actions\": [{\"name\": \"positions\", \"parameters\": {\"account\": \"\"}}]}\n```\n"
	p, err := Parse(text)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Actions[0].Name != "positions" {
		t.Errorf("unexpected plan: %+v", p)
	}
	if p.Actions[0].Parameters["account"] != "" {
		t.Errorf("account = %v, want empty string", p.Actions[0].Parameters["account"])
	}
}

func TestParseTrailingComma(t *testing.T) {
	p, err := Parse(`{'actions': [{'name': 'disconnect', 'parameters': {},},],}`)
	if err != nil {
		t.Fatalf("expected trailing commas to be tolerated, got %v", err)
	}
	if len(p.Actions) != 1 {
		t.Errorf("expected 1 action, got %d", len(p.Actions))
	}
}

func TestParseEscapes(t *testing.T) {
	p, err := Parse(`{'actions':[{'name':'reqMktData','parameters':{'symbol':'O\'REILLY'}}]}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := p.Actions[0].Parameters["symbol"]; got != "O'REILLY" {
		t.Errorf("symbol = %v, want O'REILLY", got)
	}
}

func TestParseNestedStructures(t *testing.T) {
	p, err := Parse(`{'actions':[{'name':'x','parameters':{'legs':[{'symbol':'AAPL','qty':1},{'symbol':'MSFT','qty':2}]}}]}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	legs, ok := p.Actions[0].Parameters["legs"].([]any)
	if !ok || len(legs) != 2 {
		t.Fatalf("legs = %v", p.Actions[0].Parameters["legs"])
	}
	first, ok := legs[0].(map[string]any)
	if !ok || first["symbol"] != "AAPL" || first["qty"] != int64(1) {
		t.Errorf("unexpected leg: %v", legs[0])
	}
}
