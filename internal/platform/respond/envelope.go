package respond

// Envelope wraps every JSON error response.
// data: the primary payload (null for errors)
// meta: trace correlation
// error: populated only on failures
type Envelope[T any] struct {
	Data  *T         `json:"data"`
	Meta  Meta       `json:"meta"`
	Error *ErrorBody `json:"error"`
}

// Meta holds cross-cutting metadata.
type Meta struct {
	TraceID *string `json:"traceId,omitempty"`
}

// ErrorBody describes an error in a predictable structured format.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldIssue `json:"details,omitempty"`
	TraceID *string      `json:"traceId,omitempty"`
}

// FieldIssue gives field-level error information, e.g. a failed form rule.
type FieldIssue struct {
	Field string `json:"field,omitempty"`
	Issue string `json:"issue"`
}

// NewErrorEnvelope constructs an error envelope with no data.
func NewErrorEnvelope[T any](traceID *string, code, msg string, details []FieldIssue) Envelope[T] {
	var cloned []FieldIssue
	if len(details) > 0 {
		cloned = make([]FieldIssue, len(details))
		copy(cloned, details)
	}
	return Envelope[T]{
		Meta: Meta{TraceID: traceID},
		Error: &ErrorBody{
			Code:    code,
			Message: msg,
			Details: cloned,
			TraceID: traceID,
		},
	}
}
