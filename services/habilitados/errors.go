package habilitados

import "fmt"

// LoginError and ExtractionError are per-system failures. they never
// cross the orchestrator boundary, it downgrades them into the run
// report before moving on to the next system.

type LoginError struct {
	System string
	Step   string
	Err    error
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login %s: %s: %s", e.System, e.Step, e.Err)
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

type ExtractionError struct {
	System string
	// the named filter that could not be applied, empty for table
	// read failures
	Filter string
	Page   int
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Filter != "" {
		return fmt.Sprintf("extract %s: filter %q: %s", e.System, e.Filter, e.Err)
	}
	return fmt.Sprintf("extract %s: page %d: %s", e.System, e.Page, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
