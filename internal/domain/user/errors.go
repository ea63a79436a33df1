package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidName        = errors.New("name is required")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
