// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// Envelope is the uniform response wrapper. Success responses carry
// data; failures carry error. Exactly one of the two is populated.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldIssue `json:"details,omitempty"`
}

// FieldIssue points at one invalid request field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
