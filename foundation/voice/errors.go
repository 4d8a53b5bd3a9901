package voice

import "fmt"

// InvalidInputError reports a malformed analysis input, such as an empty
// buffer or a non-positive window or hop size.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// UnsupportedConfigError reports an analysis setting the engine cannot honor,
// such as a coefficient count exceeding the filter count.
type UnsupportedConfigError struct {
	Setting string
	Reason  string
}

func (e *UnsupportedConfigError) Error() string {
	return fmt.Sprintf("unsupported config: %s: %s", e.Setting, e.Reason)
}

// ComputationError reports a numeric failure detected during analysis.
// Silent or unvoiced audio is not a computation failure.
type ComputationError struct {
	Stage  string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed: %s: %s", e.Stage, e.Reason)
}
