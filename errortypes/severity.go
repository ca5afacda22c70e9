package errortypes

// Severity tells the host whether an error cost it bids or only noted ignored input.
type Severity int

const (
	SeverityUnknown Severity = iota

	// SeverityFatal marks an error which dropped a request, a bid or a whole response.
	SeverityFatal

	// SeverityWarning marks input which was ignored or replaced while the result was still produced.
	SeverityWarning
)

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

// SeverityOf returns the severity of err. Errors which do not implement Coder are fatal.
func SeverityOf(err error) Severity {
	if s, ok := err.(Coder); ok && s.Severity() != SeverityUnknown {
		return s.Severity()
	}
	return SeverityFatal
}

// IsWarning returns true if an error is labeled with a Severity of SeverityWarning.
// Throughout the codebase, errors with SeverityWarning are of the type Warning
// defined in this package.
func IsWarning(err error) bool {
	return SeverityOf(err) == SeverityWarning
}

// ContainsFatalError checks if the error list contains a fatal error.
func ContainsFatalError(errs []error) bool {
	for _, err := range errs {
		if SeverityOf(err) == SeverityFatal {
			return true
		}
	}
	return false
}
