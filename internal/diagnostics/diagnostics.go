// Package diagnostics models the structured per-line error and warning
// outcomes produced while pricing a claim line or grouping an encounter.
// Unlike internal/errors, a Diagnostic is data, not a Go error: it never
// aborts the computation for the rest of the claim. Fatal diagnostics mean
// "this line could not be priced" (allowed amount is zero for that line);
// non-fatal diagnostics are informational notes about defaults or fallbacks
// that were applied.
package diagnostics

import "fmt"

// Code identifies the kind of diagnostic, matching the error kinds in
// spec.md section 7.
type Code string

const (
	CodeProcedureNotFound    Code = "procedure_code_not_found"
	CodeLocalityOrZipMissing Code = "locality_or_zip_required"
	CodeUnsupportedService   Code = "unsupported_service_type"
	CodeDRGNotFound          Code = "drg_not_found"
	CodeHospitalNotFound     Code = "hospital_not_found"
	CodeWageIndexNotFound    Code = "wage_index_not_found"
	CodeGrouperUngroupable   Code = "grouper_ungroupable"
	CodeLocalityDefaulted    Code = "locality_defaulted"
	CodeUnknownModifier      Code = "unknown_modifier"
	CodeSeveritySlotFallback Code = "severity_slot_fallback"
	CodeGPCIDefaulted        Code = "gpci_defaulted"
	CodeModifierApplied      Code = "modifier_applied"
	CodeMPPRApplied          Code = "mppr_applied"
	CodeMDCUnassigned        Code = "mdc_unassigned"
	CodeNonORProcedure       Code = "non_or_procedure_assumed"
)

// fatalCodes lists the diagnostics that are fatal for the line they attach
// to: the line's allowed amount is zero and no further pricing is attempted.
var fatalCodes = map[Code]bool{
	CodeProcedureNotFound:    true,
	CodeLocalityOrZipMissing: true,
	CodeUnsupportedService:   true,
	CodeDRGNotFound:          true,
	CodeHospitalNotFound:     true,
	CodeWageIndexNotFound:    true,
	CodeGrouperUngroupable:   true,
}

// IsFatal reports whether a diagnostic code is fatal for its line.
func IsFatal(c Code) bool {
	return fatalCodes[c]
}

// Diagnostic is a single structured outcome attached to a priced line or a
// grouper result.
type Diagnostic struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Fatal   bool   `json:"fatal"`
}

func (d Diagnostic) String() string {
	if d.Fatal {
		return fmt.Sprintf("[error:%s] %s", d.Code, d.Message)
	}
	return fmt.Sprintf("[warning:%s] %s", d.Code, d.Message)
}

// New builds a Diagnostic for code, deriving Fatal from the code's default
// classification.
func New(code Code, message string) Diagnostic {
	return Diagnostic{Code: code, Message: message, Fatal: IsFatal(code)}
}

// Newf builds a Diagnostic with a formatted message.
func Newf(code Code, format string, args ...any) Diagnostic {
	return New(code, fmt.Sprintf(format, args...))
}

// Bag accumulates diagnostics for a single line or grouper call, separating
// fatal errors from non-fatal notes/warnings as spec.md section 3.2 requires
// ("structured notes and error list").
type Bag struct {
	Errors []Diagnostic `json:"errors,omitempty"`
	Notes  []Diagnostic `json:"notes,omitempty"`
}

// Add appends d to Errors if fatal, else to Notes.
func (b *Bag) Add(d Diagnostic) {
	if d.Fatal {
		b.Errors = append(b.Errors, d)
	} else {
		b.Notes = append(b.Notes, d)
	}
}

// HasFatal reports whether any fatal diagnostic has been recorded.
func (b *Bag) HasFatal() bool {
	return len(b.Errors) > 0
}
