package designer

import "errors"

var (
	ErrNoSelection       = errors.New("no element selected")
	ErrElementNotFound   = errors.New("element not found")
	ErrUnknownProperty   = errors.New("unknown property")
	ErrInvalidValue      = errors.New("invalid property value")
	ErrUnknownFrame      = errors.New("unknown frame")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrNothingToSave     = errors.New("nothing to save")
	ErrInvalidTransition = errors.New("invalid interaction")
)
