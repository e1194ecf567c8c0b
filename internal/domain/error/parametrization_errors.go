// Package error defines domain-specific errors for the accounting office application.
package error

import "errors"

// Parametrization domain errors.
var (
	// ErrCompanyRequired is returned when a request does not identify a company.
	ErrCompanyRequired = errors.New("company id is required")

	// ErrInvalidYear is returned when the fiscal year is out of range.
	ErrInvalidYear = errors.New("invalid fiscal year")

	// ErrInvalidMonth is returned when the month is not between 1 and 12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrChartNodeNotFound is returned when a chart-of-accounts node does not exist.
	ErrChartNodeNotFound = errors.New("chart node not found")

	// ErrEmptyTrialBalanceCodes is returned when a link carries no trial-balance codes.
	ErrEmptyTrialBalanceCodes = errors.New("at least one trial balance code is required")

	// ErrTrialBalanceCodeAlreadyMapped is returned when a code is already linked to another node.
	ErrTrialBalanceCodeAlreadyMapped = errors.New("trial balance code already mapped to another chart node")

	// ErrTrialBalanceNotFound is returned when no eligible trial balance exists for a period.
	ErrTrialBalanceNotFound = errors.New("trial balance not found")

	// ErrChartOfAccountsEmpty is returned when the catalog has no nodes.
	ErrChartOfAccountsEmpty = errors.New("chart of accounts is empty")

	// ErrInvalidChartNode is returned when an imported chart node is malformed.
	ErrInvalidChartNode = errors.New("invalid chart node")

	// ErrParametrizationLinkNotFound is returned when a link does not exist for the company.
	ErrParametrizationLinkNotFound = errors.New("parametrization link not found")
)

// ParametrizationErrorCode defines error codes for parametrization errors.
// Format: PRM-XXYYYY where XX is category and YYYY is specific error.
type ParametrizationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCompanyRequired   ParametrizationErrorCode = "PRM-010001"
	ErrCodeInvalidYear       ParametrizationErrorCode = "PRM-010002"
	ErrCodeInvalidMonth      ParametrizationErrorCode = "PRM-010003"
	ErrCodeEmptyCodes        ParametrizationErrorCode = "PRM-010004"
	ErrCodeMissingLinkFields ParametrizationErrorCode = "PRM-010005"
	ErrCodeInvalidChartNode  ParametrizationErrorCode = "PRM-010006"

	// Lookup and conflict errors (02XXXX)
	ErrCodeChartNodeNotFound    ParametrizationErrorCode = "PRM-020001"
	ErrCodeCodeAlreadyMapped    ParametrizationErrorCode = "PRM-020002"
	ErrCodeTrialBalanceNotFound ParametrizationErrorCode = "PRM-020003"
	ErrCodeChartOfAccountsEmpty ParametrizationErrorCode = "PRM-020004"
	ErrCodeLinkNotFound         ParametrizationErrorCode = "PRM-020005"

	// Internal errors (99XXXX)
	ErrCodeParametrizationInternal ParametrizationErrorCode = "PRM-990001"
)

// ParametrizationError represents a parametrization error with code and message.
type ParametrizationError struct {
	Code    ParametrizationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParametrizationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ParametrizationError) Unwrap() error {
	return e.Err
}

// NewParametrizationError creates a new ParametrizationError with the given code and message.
func NewParametrizationError(code ParametrizationErrorCode, message string, err error) *ParametrizationError {
	return &ParametrizationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
