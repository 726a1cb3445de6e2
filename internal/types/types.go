package types

// Result tags carried by every Outcome.
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

// Action is one requested capability invocation produced by the model.
type Action struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// Plan is the ordered list of actions for one user utterance.
// Execution order is exactly plan order.
type Plan struct {
	Actions []Action `json:"actions"`
}

// Outcome is the result of executing a single action. Message is free-form:
// a string for errors, structured data for quotes/positions/orders.
type Outcome struct {
	Result  string `json:"result"`
	Message any    `json:"message"`
}

func Success(message any) Outcome {
	return Outcome{Result: ResultSuccess, Message: message}
}

func Failed(message any) Outcome {
	return Outcome{Result: ResultFailed, Message: message}
}

// OK reports whether the outcome carries the success tag.
func (o Outcome) OK() bool { return o.Result == ResultSuccess }

// StepResult pairs a dispatched action with its outcome.
type StepResult struct {
	Action  Action  `json:"action"`
	Outcome Outcome `json:"outcome"`
}
