package domain

import "errors"

// Sentinel errors for classifying compile failures. Stages wrap these so the
// CLI can report error categories uniformly:
//
//	return fmt.Errorf("compile: project ID is empty: %w", domain.ErrConfiguration)
var (
	// ErrConfiguration indicates the document lacks a setting the output
	// cannot be produced without, such as the monitoring project ID.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownTarget indicates an emitter target name that is not registered.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrInvalidOption indicates a compile option outside its accepted values.
	ErrInvalidOption = errors.New("invalid option")
)
