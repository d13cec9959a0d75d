package service

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductExists      = errors.New("product already exists in this category")
	ErrInvalidPriceRange  = errors.New("invalid price range")
	ErrReviewNotFound     = errors.New("review not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
)
