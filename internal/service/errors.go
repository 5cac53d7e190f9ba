package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingFields      = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
