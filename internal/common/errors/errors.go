// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Proposal errors
const (
	ErrCodeInvalidProposalInput ErrorCode = "INVALID_PROPOSAL_INPUT"
	ErrCodeInvalidApproach      ErrorCode = "INVALID_APPROACH"
	ErrCodeClientEmailRequired  ErrorCode = "CLIENT_EMAIL_REQUIRED"
	ErrCodeCatalogInvalid       ErrorCode = "CATALOG_INVALID"

	ErrCodeExportRenderFailed  ErrorCode = "EXPORT_RENDER_FAILED"
	ErrCodeExportStorageFailed ErrorCode = "EXPORT_STORAGE_FAILED"
	ErrCodeClipboardFailed     ErrorCode = "CLIPBOARD_UNAVAILABLE"

	ErrCodeParseError    ErrorCode = "PARSE_ERROR"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns the error with an extra metadata entry set.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidProposalInputError reports job variables or host input that cannot form a proposal.
func NewInvalidProposalInputError(problems ...string) *StandardError {
	return newError(ErrCodeInvalidProposalInput, "Invalid proposal input", strings.Join(problems, "; "), nil)
}

// NewInvalidApproachError reports an approach key outside nocode, cms and custom.
func NewInvalidApproachError(value string) *StandardError {
	return newError(ErrCodeInvalidApproach, "Unknown development approach",
		fmt.Sprintf("approach: %q", value), nil)
}

// NewClientEmailRequiredError is returned when mail composition has no recipient.
func NewClientEmailRequiredError() *StandardError {
	return newError(ErrCodeClientEmailRequired, "Please enter the client email address first.", "", nil)
}

// NewCatalogInvalidError lists every catalog problem found during load.
func NewCatalogInvalidError(problems []string) *StandardError {
	return newError(ErrCodeCatalogInvalid, "Service catalog is invalid", strings.Join(problems, "; "), nil)
}

func NewExportRenderFailedError(kind string, err error) *StandardError {
	return newError(ErrCodeExportRenderFailed,
		fmt.Sprintf("Error generating %s. Please try again.", kind), err.Error(), err).
		WithMetadata("exportKind", kind)
}

func NewExportStorageFailedError(location string, err error) *StandardError {
	return newError(ErrCodeExportStorageFailed, "Error exporting data. Please try again.",
		fmt.Sprintf("location %s: %v", location, err), err)
}

func NewClipboardFailedError(err error) *StandardError {
	return newError(ErrCodeClipboardFailed, "Could not copy to clipboard", err.Error(), err)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), err)
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	e := newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), err)
	e.Retryable = true
	return e
}

func NewTimeoutError(service string, err error) *StandardError {
	e := newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), err)
	e.Retryable = true
	return e
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, nil)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes caught by boundary events in the proposal process.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidProposalInput: "INVALID_PROPOSAL_INPUT",
	ErrCodeInvalidApproach:      "INVALID_PROPOSAL_INPUT",
	ErrCodeClientEmailRequired:  "CLIENT_EMAIL_REQUIRED",
	ErrCodeCatalogInvalid:       "CATALOG_INVALID",
	ErrCodeExportRenderFailed:   "EXPORT_FAILED",
	ErrCodeExportStorageFailed:  "EXPORT_FAILED",
	ErrCodeClipboardFailed:      "EXPORT_FAILED",
	ErrCodeParseError:           "INVALID_PROPOSAL_INPUT",
}

// BPMNCodes lists the distinct codes a worker can throw to the process, sorted.
func BPMNCodes() []string {
	seen := make(map[string]bool, len(BPMNErrorMapping))
	codes := make([]string, 0, len(BPMNErrorMapping))
	for _, c := range BPMNErrorMapping {
		if !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}
	sort.Strings(codes)
	return codes
}

// GetRetryCount returns the retry count for a code. Proposal jobs are never retried:
// a failed export is re-triggered by the user.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case "EXTERNAL_SERVICE_ERROR", "TIMEOUT_ERROR":
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err to a *StandardError when one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "EXPORT") || strings.Contains(codeStr, "CLIPBOARD"):
		return "EXPORT"
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "REQUIRED") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "INFRASTRUCTURE"
	default:
		return "OTHER"
	}
}
