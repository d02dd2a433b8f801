package pipeline

import "fmt"

// Severity classifies a step failure. The pipeline's primary guarantee is
// artifact-level attestation; failures of the supplementary checks degrade
// that guarantee without aborting the run.
type Severity int

const (
	// SeverityFatal aborts the pipeline and produces a nonzero exit.
	SeverityFatal Severity = iota
	// SeverityWarning is reported and the pipeline continues.
	SeverityWarning
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// StepError is a pipeline step failure tagged with the step name and a
// severity.
type StepError struct {
	Step     string
	Severity Severity
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// fatal wraps an error as a pipeline-aborting failure.
func fatal(step string, err error) *StepError {
	return &StepError{Step: step, Severity: SeverityFatal, Err: err}
}

// warning wraps an error as a continue-with-degraded-guarantees failure.
func warning(step string, err error) *StepError {
	return &StepError{Step: step, Severity: SeverityWarning, Err: err}
}
