package extraction

import "errors"

// Common extraction errors
var (
	// ErrMissingAPIKey is returned when no model API key is configured.
	ErrMissingAPIKey = errors.New("missing OpenAI API key")

	// ErrNoImages is returned when a scan is requested without any
	// source images.
	ErrNoImages = errors.New("no images provided for extraction")

	// ErrEmptyResponse is returned when the model returns no choices.
	ErrEmptyResponse = errors.New("empty response from extraction model")

	// ErrUnparsableResponse is returned when the model output cannot be
	// read as a JSON transaction array after all retries.
	ErrUnparsableResponse = errors.New("unparsable extraction response")
)
