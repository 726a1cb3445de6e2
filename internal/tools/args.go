package tools

import (
	"fmt"
	"strconv"
)

// Argument extraction helpers for capability implementations. The model
// emits loosely typed parameter maps; numbers arrive as int64 or float64
// and occasionally as quoted strings.

// StringArg returns the named string argument or the default when absent.
func StringArg(args map[string]any, name, def string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", name, v)
	}
	return s, nil
}

// RequireString returns the named string argument or an error when absent.
func RequireString(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required parameter %q", name)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string, got %v", name, v)
	}
	return s, nil
}

// RequireFloat returns the named numeric argument or an error when absent.
func RequireFloat(args map[string]any, name string) (float64, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	return toFloat(name, v)
}

// IntArg returns the named integer argument or the default when absent.
func IntArg(args map[string]any, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	f, err := toFloat(name, v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func toFloat(name string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %q must be a number, got %q", name, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number, got %T", name, v)
	}
}
