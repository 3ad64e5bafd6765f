package service

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrUnauthorized       = errors.New("no token provided")
	ErrForbidden          = errors.New("invalid or expired token")
)

// ValidationDetail returns the text after the ErrValidation prefix, which is
// what users should see.
func ValidationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
}
