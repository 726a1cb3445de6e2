// Package plan turns accumulated model output into an ordered action plan.
//
// The model is prompted with Python-style examples, so the response is
// usually not strict JSON: keys and strings may use single quotes, booleans
// may appear as True/False, and None shows up for missing values. Parse
// reads that dialect with a small recursive-descent parser instead of
// normalizing the text first; rewriting boolean tokens as substrings would
// corrupt string values that happen to contain them.
package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ib-assistant/internal/types"
)

// ErrMalformedPlan reports response text that cannot be interpreted as an
// object with an 'actions' list. Fatal to the turn, not to the session.
var ErrMalformedPlan = errors.New("malformed action plan")

// Parse converts response text into a plan. An empty 'actions' list is a
// valid empty plan. Action names are not validated against the registry
// here; unknown tools fail at dispatch so the rest of the plan still runs.
func Parse(text string) (types.Plan, error) {
	body, ok := extractObject(text)
	if !ok {
		return types.Plan{}, fmt.Errorf("%w: no object literal found", ErrMalformedPlan)
	}

	p := &parser{src: body}
	value, err := p.parseValue()
	if err != nil {
		return types.Plan{}, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return types.Plan{}, fmt.Errorf("%w: trailing data at offset %d", ErrMalformedPlan, p.pos)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return types.Plan{}, fmt.Errorf("%w: top-level value is not an object", ErrMalformedPlan)
	}

	rawActions, ok := obj["actions"]
	if !ok {
		return types.Plan{}, fmt.Errorf("%w: missing 'actions' key", ErrMalformedPlan)
	}
	list, ok := rawActions.([]any)
	if !ok {
		return types.Plan{}, fmt.Errorf("%w: 'actions' is not a list", ErrMalformedPlan)
	}

	result := types.Plan{Actions: make([]types.Action, 0, len(list))}
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return types.Plan{}, fmt.Errorf("%w: action %d is not an object", ErrMalformedPlan, i)
		}
		name, ok := entry["name"].(string)
		if !ok || name == "" {
			return types.Plan{}, fmt.Errorf("%w: action %d has no name", ErrMalformedPlan, i)
		}
		params, ok := entry["parameters"].(map[string]any)
		if !ok {
			params = map[string]any{}
		}
		result.Actions = append(result.Actions, types.Action{Name: name, Parameters: params})
	}
	return result, nil
}

// extractObject strips any prose or code fences around the object literal by
// taking the span from the first '{' to the last '}'.
func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) expect(c byte) error {
	got, ok := p.peek()
	if !ok {
		return fmt.Errorf("unexpected end of input, want %q", string(c))
	}
	if got != c {
		return fmt.Errorf("unexpected %q at offset %d, want %q", string(got), p.pos, string(c))
	}
	p.pos++
	return nil
}

func (p *parser) parseValue() (any, error) {
	c, ok := p.peek()
	if !ok {
		return nil, errors.New("unexpected end of input")
	}
	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseList()
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseWord()
	}
}

func (p *parser) parseObject() (map[string]any, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	obj := make(map[string]any)
	for {
		c, ok := p.peek()
		if !ok {
			return nil, errors.New("unterminated object")
		}
		if c == '}' {
			p.pos++
			return obj, nil
		}
		if c != '\'' && c != '"' {
			return nil, fmt.Errorf("object key at offset %d must be quoted", p.pos)
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = value

		c, ok = p.peek()
		if !ok {
			return nil, errors.New("unterminated object")
		}
		if c == ',' {
			p.pos++
			continue
		}
		if c != '}' {
			return nil, fmt.Errorf("unexpected %q at offset %d in object", string(c), p.pos)
		}
	}
}

func (p *parser) parseList() ([]any, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	list := []any{}
	for {
		c, ok := p.peek()
		if !ok {
			return nil, errors.New("unterminated list")
		}
		if c == ']' {
			p.pos++
			return list, nil
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, value)

		c, ok = p.peek()
		if !ok {
			return nil, errors.New("unterminated list")
		}
		if c == ',' {
			p.pos++
			continue
		}
		if c != ']' {
			return nil, fmt.Errorf("unexpected %q at offset %d in list", string(c), p.pos)
		}
	}
}

func (p *parser) parseString() (string, error) {
	quote, ok := p.peek()
	if !ok || (quote != '\'' && quote != '"') {
		return "", fmt.Errorf("expected string at offset %d", p.pos)
	}
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", errors.New("unterminated escape sequence")
			}
			esc := p.src[p.pos]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(esc)
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", errors.New("unterminated string")
}

func (p *parser) parseNumber() (any, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	isFloat := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			// exponent sign only valid mid-number; strconv rejects the rest
			isFloat = true
			p.pos++
			continue
		}
		break
	}
	tok := p.src[start:p.pos]
	if !isFloat {
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q at offset %d", tok, start)
	}
	return f, nil
}

// parseWord reads bare identifiers: both JSON and Python casings of the
// boolean and null literals are accepted.
func (p *parser) parseWord() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && isWordChar(p.src[p.pos]) {
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	case "null", "None":
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected token %q at offset %d", word, start)
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
