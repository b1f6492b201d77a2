package meeting

import "fmt"

// InvalidInputError reports bad caller input, such as an empty audio payload.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// TranscriptionError reports a failure of a configured transcription provider.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// SummarizationError reports a failure of a configured summarisation provider.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed: %v", e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// PersistenceError reports a failure to write the meeting document.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// EmailDeliveryError reports a failure to deliver the meeting document. It is
// independent from persistence: a failed email never invalidates a prior save.
type EmailDeliveryError struct {
	Err error
}

func (e *EmailDeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed: %v", e.Err)
}

func (e *EmailDeliveryError) Unwrap() error { return e.Err }
