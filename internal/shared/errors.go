package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Story errors
	ErrInvalidStory = fmt.Errorf("invalid story")
	ErrEmptyStory   = fmt.Errorf("story has no chapters")

	// Persistence errors
	ErrDatabaseDisabled = fmt.Errorf("database disabled")
	ErrSessionNotFound  = fmt.Errorf("session not found")

	// Device errors
	ErrAudioUnavailable = fmt.Errorf("audio unavailable")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
