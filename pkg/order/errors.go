package order

import "errors"

var (
	ErrNotFound      = errors.New("order not found")
	ErrForbidden     = errors.New("order belongs to another user")
	ErrOwnerNotFound = errors.New("user not found")
	ErrValidation    = errors.New("validation failed")
)
