package services

// Service errors
var (
	ErrUserRequired   = &ServiceError{Message: "user name is required"}
	ErrNameRequired   = &ServiceError{Message: "name is required"}
	ErrNameExists     = &ServiceError{Message: "name already exists"}
	ErrNameNotFound   = &ServiceError{Message: "name not found"}
	ErrNotEnoughNames = &ServiceError{Message: "need at least 2 names to start a tournament"}
	ErrSessionNotFound = &ServiceError{Message: "tournament session not found"}
	ErrInvalidOutcome  = &ServiceError{Message: "outcome must be one of: left, right, both, none"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
