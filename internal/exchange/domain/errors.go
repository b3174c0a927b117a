package domain

import "errors"

var (
	ErrQueryNotFound          = errors.New("query not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrForbidden              = errors.New("caller does not own this resource")
	ErrInvalidID              = errors.New("malformed document id")
)
