package dispatcher

import (
	"fmt"
)

// Result holds the value returned by a successful operation. Composite
// operations carry one result per step.
type Result struct {
	Value interface{} `json:"result,omitempty"`
	Steps []*Result   `json:"steps,omitempty"`
}

// String returns the value rendered as a string.
func (r *Result) String() string {
	if r == nil || r.Value == nil {
		return ""
	}
	return toString(r.Value)
}

// Map returns the value as a map, or nil.
func (r *Result) Map() map[string]interface{} {
	if r == nil {
		return nil
	}
	ret, _ := r.Value.(map[string]interface{})
	return ret
}

// List returns the value as a slice, or nil.
func (r *Result) List() []interface{} {
	if r == nil {
		return nil
	}
	switch actual := r.Value.(type) {
	case []interface{}:
		return actual
	case []string:
		ret := make([]interface{}, len(actual))
		for i, v := range actual {
			ret[i] = v
		}
		return ret
	}
	return nil
}

// ResultError reports a failure returned by the management endpoint.
type ResultError struct {
	Operation   string
	Description string
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("operation %v failed: %v", e.Operation, e.Description)
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
