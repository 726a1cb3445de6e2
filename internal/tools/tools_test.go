package tools

import (
	"context"
	"strings"
	"testing"

	"ib-assistant/internal/types"
)

func okExec(ctx context.Context, args map[string]any) (types.Outcome, error) {
	return types.Success("ok"), nil
}

func TestDescribeNoParameters(t *testing.T) {
	c := &Capability{
		Name:    "disconnect",
		Doc:     "Disconnect from IB TWS or Gateway.",
		Execute: okExec,
	}

	got := Describe(c)
	want := "disconnect: Parameters: No parameters. Disconnect from IB TWS or Gateway."
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribeWithDefaults(t *testing.T) {
	c := &Capability{
		Name: "reqMktData",
		Params: []Param{
			Required("symbol", "string"),
			Optional("secType", "string", "STK"),
			Optional("exchange", "string", "SMART"),
			Optional("currency", "string", "USD"),
		},
		Doc:     "Request market data for a contract.",
		Execute: okExec,
	}

	got := Describe(c)
	want := "reqMktData: Parameters: symbol (string), secType (string, default 'STK'), " +
		"exchange (string, default 'SMART'), currency (string, default 'USD'). " +
		"Request market data for a contract."
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribeEmptyStringDefault(t *testing.T) {
	c := &Capability{
		Name:    "positions",
		Params:  []Param{Optional("account", "string", "")},
		Doc:     "Retrieve current positions.",
		Execute: okExec,
	}

	got := Describe(c)
	if !strings.Contains(got, "account (string, default '')") {
		t.Errorf("expected empty default rendering, got %q", got)
	}
}

func TestDescribeNormalizesWhitespace(t *testing.T) {
	c := &Capability{
		Name:    "connect",
		Doc:     "Connect to IB TWS\n\n    using values   from the environment.",
		Execute: okExec,
	}

	got := Describe(c)
	want := "connect: Parameters: No parameters. Connect to IB TWS using values from the environment."
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribeDeterministic(t *testing.T) {
	c := &Capability{
		Name:    "qualifyContracts",
		Params:  []Param{Required("symbol", "string"), Optional("secType", "string", "STK")},
		Doc:     "Qualify a contract by filling in missing fields.",
		Execute: okExec,
	}

	first := Describe(c)
	for i := 0; i < 10; i++ {
		if got := Describe(c); got != first {
			t.Fatalf("Describe() not deterministic: %q vs %q", got, first)
		}
	}
}

func TestDescribeParameterCount(t *testing.T) {
	// N parameters must yield exactly N comma-joined descriptors.
	for n := 1; n <= 5; n++ {
		params := make([]Param, 0, n)
		for i := 0; i < n; i++ {
			params = append(params, Required("p"+string(rune('a'+i)), "string"))
		}
		c := &Capability{Name: "cap", Params: params, Doc: "doc", Execute: okExec}
		rendered := Describe(c)
		list := strings.TrimPrefix(rendered, "cap: Parameters: ")
		list = list[:strings.Index(list, ". ")]
		if got := len(strings.Split(list, ", ")); got != n {
			t.Errorf("n=%d: got %d descriptors in %q", n, got, rendered)
		}
	}
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"connect", "disconnect", "reqMktData"} {
		r.MustRegister(&Capability{Name: name, Doc: "d", Execute: okExec})
	}

	if _, ok := r.Get("disconnect"); !ok {
		t.Fatal("expected to find disconnect")
	}
	if _, ok := r.Get("bogus"); ok {
		t.Fatal("did not expect to find bogus")
	}

	caps := r.List()
	want := []string{"connect", "disconnect", "reqMktData"}
	for i, c := range caps {
		if c.Name != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, c.Name, want[i])
		}
	}

	schemas := r.Schemas()
	if len(schemas) != 3 {
		t.Fatalf("expected 3 schemas, got %d", len(schemas))
	}
	if !strings.HasPrefix(schemas[2], "reqMktData:") {
		t.Errorf("schema order not stable: %v", schemas)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&Capability{Name: "connect", Execute: okExec})
	if err := r.Register(&Capability{Name: "connect", Execute: okExec}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestRegistryRejectsMissingExecute(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Capability{Name: "connect"}); err == nil {
		t.Error("expected registration without execute func to fail")
	}
}
