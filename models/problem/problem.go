package problem

import (
	"net/http"
)

const (
	// SchemaName is the name under which ProblemModel is registered
	// in the API document components
	SchemaName = "ProblemModel"
	// ViolationSchemaName is the name of the nested field violation shape
	ViolationSchemaName = "FieldViolationModel"

	// DefaultType is the problem type used when no specific documentation URI exists
	DefaultType = "about:blank"
)

// ProblemModel is the error body returned by every failing API call
// (RFC 7807 problem details)
type ProblemModel struct {
	Type       string                `json:"type"`
	Title      string                `json:"title"`
	Status     int                   `json:"status"`
	Detail     string                `json:"detail,omitempty"`
	Instance   string                `json:"instance,omitempty"`
	Violations []FieldViolationModel `json:"violations,omitempty"`
}

// FieldViolationModel describes one invalid input field
type FieldViolationModel struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TypeName implements openapi.Typer
func (ProblemModel) TypeName() string { return SchemaName }

// TypeName implements openapi.Typer
func (FieldViolationModel) TypeName() string { return ViolationSchemaName }

// New returns a problem for the given status, titled with the status text
func New(status int, detail string) *ProblemModel {
	return &ProblemModel{
		Type:   DefaultType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// WithInstance sets the URI reference of the request that triggered the problem
func (p *ProblemModel) WithInstance(instance string) *ProblemModel {
	p.Instance = instance
	return p
}

// AddViolation appends a field violation to the problem
func (p *ProblemModel) AddViolation(field, message string) *ProblemModel {
	p.Violations = append(p.Violations, FieldViolationModel{Field: field, Message: message})
	return p
}

// Error implements the error interface, so a problem can travel
// through handler error returns untouched
func (p *ProblemModel) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
