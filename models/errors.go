package models

import "errors"

var (
	ErrSlugNotFound     = errors.New("project slug not found")
	ErrProjectNotCached = errors.New("project not found in catalog")
	ErrMalformedData    = errors.New("malformed data")
	ErrUnexpectedStatus = errors.New("unexpected http status")
	ErrUnexpectedNode   = errors.New("unexpected html node")
	ErrUnknownPolicy    = errors.New("unknown selection policy")
)
