package domain

import "errors"

var (
	ErrDuplicateResource = errors.New("duplicate resource")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInternal          = errors.New("internal error")

	ErrMatchFull     = errors.New("match is full")
	ErrSessionExists = errors.New("match session already exists")
)
