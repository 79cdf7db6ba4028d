package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"datamapper/internal/common"
)

// Diagnostics collects the problems found while importing a schema or a
// mapping snapshot, grouped by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	// Code is a stable machine-readable identifier, e.g. "unknown_field".
	Code    string
	Message string
	// Document is the "kind:id" reference of the affected document.
	Document string
	// FieldPath is the "/"-joined field path, empty for document-level
	// problems.
	FieldPath string
}

// Severity is the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records an error; the import that produced it must not be used.
func (d *Diagnostics) AddError(code, message, document, fieldPath string) {
	d.add(SeverityError, code, message, document, fieldPath)
}

// AddWarning records a problem that was worked around by dropping data.
func (d *Diagnostics) AddWarning(code, message, document, fieldPath string) {
	d.add(SeverityWarning, code, message, document, fieldPath)
}

// AddInfo records a note.
func (d *Diagnostics) AddInfo(code, message, document, fieldPath string) {
	d.add(SeverityInfo, code, message, document, fieldPath)
}

func (d *Diagnostics) add(sev Severity, code, message, document, fieldPath string) {
	diag := Diagnostic{
		Severity:  sev,
		Code:      code,
		Message:   message,
		Document:  document,
		FieldPath: fieldPath,
	}

	switch sev {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends the diagnostics of other. A nil other is ignored.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, most severe first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String formats the diagnostic as "[document] path: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Document != "" {
		prefix = append(prefix, "["+d.Document+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
