package domain

import "errors"

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
	ErrItemNotFound   = errors.New("item_not_found")
	ErrInvalidType    = errors.New("invalid_type")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrInvalidRequest = errors.New("invalid_request")
)
