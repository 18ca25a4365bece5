package models

// Status is a monitoring plugin severity
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit status expected by Sensu and Nagios
func (s Status) ExitCode() int {
	switch s {
	case StatusOK, StatusWarning, StatusCritical:
		return int(s)
	default:
		return int(StatusUnknown)
	}
}

// CheckOutcome is the aggregated result of one check run
type CheckOutcome struct {
	Status    Status
	Message   string
	Problems  []string
	Resources []FlaggedResource

	// ErrorType classifies the failure behind an UNKNOWN outcome, when known
	ErrorType string
}

// OK returns an outcome with no problems
func OK() CheckOutcome {
	return CheckOutcome{Status: StatusOK}
}

// Critical returns an outcome reporting the given problems
func Critical(message string, problems []string, resources []FlaggedResource) CheckOutcome {
	return CheckOutcome{
		Status:    StatusCritical,
		Message:   message,
		Problems:  problems,
		Resources: resources,
	}
}

// Unknown returns an outcome for a run that could not determine a result
func Unknown(message string) CheckOutcome {
	return CheckOutcome{
		Status:  StatusUnknown,
		Message: message,
	}
}

// UnknownWithType returns an UNKNOWN outcome tagged with the failure class
func UnknownWithType(message, errorType string) CheckOutcome {
	outcome := Unknown(message)
	outcome.ErrorType = errorType
	return outcome
}
