package services

import (
	"errors"

	"storefront/internal/repositories"
)

var (
	ErrNotFound           = repositories.ErrNotFound
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrDuplicateCategory  = errors.New("category already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("not authorized as an admin")
	ErrAlreadyReviewed    = errors.New("product already reviewed")
	ErrEmptyCart          = errors.New("no order items")
	ErrValidation         = errors.New("validation failed")
	ErrUpstream           = errors.New("upstream service failed")
)
