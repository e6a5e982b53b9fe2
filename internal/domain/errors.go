package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Session errors
var (
	ErrNoSession    = errors.New("no session")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Staging errors
var (
	ErrStageIndex = errors.New("staged image index out of range")
	ErrStageFull  = errors.New("too many staged images")
	ErrNotImage   = errors.New("file is not an image")
	ErrTooLarge   = errors.New("file is too large")
)
