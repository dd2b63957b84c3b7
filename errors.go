package tmedanalysis

import "fmt"

// DataFormatError indicates that an input table does not have the layout the
// pipeline expects, e.g. a missing identifier column or a non-numeric value in
// a retained sample column.
type DataFormatError struct {
	Path   string
	Detail string
}

func (e DataFormatError) Error() string {
	return fmt.Sprintf("data format error in %s: %s", e.Path, e.Detail)
}

// ConfigurationError indicates that the declared group and column layout is
// inconsistent with the actual shape of the data.
type ConfigurationError struct {
	Detail string
}

func (e ConfigurationError) Error() string {
	return "configuration error: " + e.Detail
}

// ConvergenceError indicates that an iterative estimation procedure could not
// produce estimates for a degenerate input. Callers must treat this as fatal:
// dropping the affected rows instead would silently change the results.
type ConvergenceError struct {
	Stage  string
	Detail string
}

func (e ConvergenceError) Error() string {
	return fmt.Sprintf("%s failed to converge: %s", e.Stage, e.Detail)
}

// NetworkError wraps a failed remote fetch. Fetches are single-attempt; a
// NetworkError always terminates the run.
type NetworkError struct {
	URL string
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e NetworkError) Unwrap() error { return e.Err }
