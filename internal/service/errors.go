package service

import "errors"

var (
	// ErrInvalidInput wraps payload validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmailAlreadyExists is returned when registering a taken email or username.
	ErrEmailAlreadyExists = errors.New("email or username are already taken")
)
