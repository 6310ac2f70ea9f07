package model

import "errors"

var (
	ErrInvalidDuration = errors.New("invalid timer duration")
	ErrInvalidCategory = errors.New("invalid timer category")
	ErrUnknownCommand  = errors.New("unknown timer command")
	ErrInvalidSnapshot = errors.New("invalid timer snapshot")
)
