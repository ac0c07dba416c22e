package domain

import shared "nathanbeddoewebdev/slatf/internal/domain"

var (
	// ErrConfiguration indicates the document lacks the monitoring project ID.
	ErrConfiguration = shared.ErrConfiguration
	// ErrUnknownTarget indicates an emitter target that is not registered.
	ErrUnknownTarget = shared.ErrUnknownTarget
	// ErrInvalidOption indicates a compile option outside its accepted values.
	ErrInvalidOption = shared.ErrInvalidOption
)
