package model

import "errors"

const (
	ErrEmptyBodyMessage = "Request body is empty"
)

var (
	ErrRejectedOrder  = errors.New("order rejected")
	ErrMissingStatus  = errors.New("order result has no status")
	ErrNotOrderList   = errors.New("request body is not a list of orders")
	ErrNotOrderRecord = errors.New("order record is not an object")
)
