package credential

import "errors"

var (
	ErrNotFound   = errors.New("credential not found")
	ErrConflict   = errors.New("credential already exists for this manufacturer")
	ErrValidation = errors.New("invalid credential payload")
)
