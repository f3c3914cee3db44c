package arkprop

import "fmt"

type DiagnosticKind int

const (
	// SizeMismatch reports a declared payload size that differs from the
	// number of bytes actually consumed.
	SizeMismatch DiagnosticKind = iota

	// DuplicateMember reports a struct member key that was seen twice. The later value is kept.
	DuplicateMember
)

func (k DiagnosticKind) String() string {
	switch k {
	case SizeMismatch:
		return "size mismatch"
	case DuplicateMember:
		return "duplicate member"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic is a non-fatal finding recorded while decoding. Diagnostics
// never change the decoded value or the number of bytes read.
type Diagnostic struct {
	Kind     DiagnosticKind
	Offset   int
	Expected int
	Actual   int
	Context  string
}

func (d Diagnostic) String() string {
	if d.Kind == DuplicateMember {
		return fmt.Sprintf("%s at offset %d: %s", d.Kind, d.Offset, d.Context)
	}

	return fmt.Sprintf("%s at offset %d: %s should end at %d, but ends at %d",
		d.Kind, d.Offset, d.Context, d.Offset+d.Expected, d.Offset+d.Actual)
}
