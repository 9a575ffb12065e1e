package services

import "fmt"

// Service errors
var (
	ErrInvalidProgram       = &ServiceError{Message: "program_id must be a positive integer"}
	ErrInvalidParticipant   = &ServiceError{Message: "participant id must be a positive integer"}
	ErrInvalidJudge         = &ServiceError{Message: "judge_id must be a positive integer"}
	ErrInvalidPaymentStatus = &ServiceError{Message: "payment_status must be pending or approved"}
	ErrNoProgramSelected    = &ServiceError{Message: "no program selected"}
	ErrBaseURLNotSet        = &ServiceError{Message: "base_url is not configured"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// InvalidSettingError reports a setting value that failed validation
type InvalidSettingError struct {
	Key    string
	Reason string
}

func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Key, e.Reason)
}
