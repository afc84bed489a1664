package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrImageRequired   = errors.New("no image file uploaded")
	ErrInvalidPrice    = errors.New("invalid product price")
)
