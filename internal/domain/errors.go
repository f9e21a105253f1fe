package domain

import "errors"

var (
	ErrPublisherRequired = errors.New("publisher with a non-empty id is required")
	ErrTagMissing        = errors.New("created redirect tag has no tag value")
	ErrTargetURLRequired = errors.New("target url is required")
)
