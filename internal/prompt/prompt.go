// Package prompt assembles the system prompt that steers the model toward
// the action-plan output contract. The wording of the directives and the
// worked examples is a protocol contract shared with the dispatcher: the
// model is prompted to emit an {'actions': [...]} object whose entries the
// plan parser understands, with a leading connect action whenever the
// broker session is down.
package prompt

import "strings"

const (
	framing = "You are a financial assistant that executes trading commands and retrieves market data."

	connectDirective = "If the connection is not established (i.e., connection status is 'not connected'), " +
		"include a 'connect' tool call as the first action in the sequence, " +
		"followed by the tool call for the user's request. " +
		"If the connection is already established (i.e., connection status is 'already connected'), " +
		"only include the tool call for the user's request."

	outputContract = "Respond with a JSON object containing 'actions' (a list of tool calls). " +
		"Each tool call in the list must have 'name' (tool name) and 'parameters'. " +
		"Execute all actions in the list sequentially."

	examples = "Examples: " +
		"- If user says 'What's the current price of AAPL?' and connection is not established: " +
		"{'actions': [{'name': 'connect', 'parameters': {}}, " +
		"{'name': 'reqMktData', 'parameters': {'symbol': 'AAPL', 'secType': 'STK', 'exchange': 'SMART', 'currency': 'USD'}}]} " +
		"- If connection is already established: " +
		"{'actions': [{'name': 'reqMktData', 'parameters': {'symbol': 'AAPL', 'secType': 'STK', 'exchange': 'SMART', 'currency': 'USD'}}]} " +
		"- If user says 'Disconnect': " +
		"{'actions': [{'name': 'disconnect', 'parameters': {}}]}"
)

// ConnectionStatus renders the literal status phrase embedded in the prompt.
func ConnectionStatus(connected bool) string {
	if connected {
		return "already connected"
	}
	return "not connected"
}

// Build produces the system prompt for one turn from the current connection
// state and the registered tool schemas. Same inputs, same prompt.
func Build(connected bool, toolSchemas []string) string {
	var b strings.Builder
	b.WriteString(framing)
	b.WriteString(" The connection status to IB TWS is currently ")
	b.WriteString(ConnectionStatus(connected))
	b.WriteString(". ")
	b.WriteString(connectDirective)
	b.WriteString(" Use only the following tools with their exact parameters as defined in their schemas (no extra fields): ")
	b.WriteString(strings.Join(toolSchemas, ", "))
	b.WriteString(". ")
	b.WriteString(outputContract)
	b.WriteString(" ")
	b.WriteString(examples)
	return b.String()
}
