package checker

import "fmt"

// CheckError represents errors that occur while running an advisory check
type CheckError struct {
	CheckID   string
	Operation string
	Cause     error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check %q failed during %s: %v", e.CheckID, e.Operation, e.Cause)
}

func (e *CheckError) Unwrap() error {
	return e.Cause
}

// NewCheckError creates a new check error
func NewCheckError(checkID, operation string, cause error) *CheckError {
	return &CheckError{
		CheckID:   checkID,
		Operation: operation,
		Cause:     cause,
	}
}

// MalformedResponseError reports a check result that does not have the expected shape
type MalformedResponseError struct {
	Index  int
	Reason string
}

func (e *MalformedResponseError) Error() string {
	if e.Index < 0 {
		return "malformed Trusted Advisor response: " + e.Reason
	}
	return fmt.Sprintf("malformed Trusted Advisor response: flagged resource %d: %s", e.Index, e.Reason)
}
