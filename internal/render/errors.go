package render

import "fmt"

// FilterNotMatchedError reports a path filter that matched no item anywhere
// in the traversal.
type FilterNotMatchedError struct {
	Filter string
}

func (e *FilterNotMatchedError) Error() string {
	return fmt.Sprintf("filter path %q did not match any items", e.Filter)
}

// FormatError reports that the external formatter rejected generated output.
// This always indicates a rendering defect, not a user error.
type FormatError struct {
	Stderr string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("formatting rendered output: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("formatting rendered output: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
