// Package apierrors defines the expected, caller-recoverable errors of the
// API and their HTTP representation.
package apierrors

import "fmt"

// APIError is an error carrying an HTTP status and a client-facing detail
// message. Anything not wrapped in an APIError surfaces as a 500.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewErrEmailTaken reports a registration attempt with an existing email.
func NewErrEmailTaken() *APIError {
	return &APIError{Status: 400, Message: "Email already registered"}
}

// NewErrInvalidCredentials reports a failed login. The message is shared
// between unknown-email and wrong-password so account existence is not
// leaked.
func NewErrInvalidCredentials() *APIError {
	return &APIError{Status: 401, Message: "Incorrect email or password"}
}

// NewErrNotAuthenticated reports a request with no bearer token.
func NewErrNotAuthenticated() *APIError {
	return &APIError{Status: 401, Message: "Not authenticated"}
}

// NewErrInvalidToken reports a bearer token that failed verification or
// whose subject no longer resolves to a user.
func NewErrInvalidToken() *APIError {
	return &APIError{Status: 401, Message: "Could not validate credentials"}
}

// NewErrVehicleNotFound reports an unknown vehicle id.
func NewErrVehicleNotFound() *APIError {
	return &APIError{Status: 404, Message: "Vehicle not found"}
}

// NewErrVehicleForbidden reports an operation on a vehicle owned by another
// user. The action verb matches the attempted operation.
func NewErrVehicleForbidden(action string) *APIError {
	return &APIError{Status: 403, Message: fmt.Sprintf("Not authorized to %s this vehicle", action)}
}

// NewErrPlateTaken reports a duplicate license plate.
func NewErrPlateTaken() *APIError {
	return &APIError{Status: 400, Message: "License plate already registered"}
}

// NewErrVINTaken reports a duplicate VIN.
func NewErrVINTaken() *APIError {
	return &APIError{Status: 400, Message: "VIN already registered"}
}
