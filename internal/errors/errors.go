package errors

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateRegistration = errors.New("an active registration already exists for this event")
var ErrSoldOut = errors.New("ticket type is sold out")
var ErrRegistrationClosed = errors.New("registration is closed for this event")
var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")
var ErrEmailTaken = errors.New("email is already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
