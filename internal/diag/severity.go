package diag

// Severity orders diagnostics by weight; comparisons like
// `sev >= SevWarning` rely on the declaration order below.
type Severity uint8

const (
	// SevInfo is advisory output, safe to drop under --quiet.
	SevInfo Severity = iota
	// SevWarning flags a recoverable problem; processing continues.
	SevWarning
	// SevError marks the unit as failed once the run completes.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
