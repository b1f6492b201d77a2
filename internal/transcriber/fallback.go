package transcriber

import (
	"context"

	"github.com/meetscribe/scribe/internal/meeting"
)

// implFallback returns the same fixed transcript on every call so the rest of
// the pipeline stays testable without network access. It is selected only
// when no transcription credential is configured; a configured provider that
// fails at runtime never degrades to this.
type implFallback struct{}

func (implFallback) Transcribe(ctx context.Context, audio []byte) ([]meeting.Segment, error) {
	if len(audio) == 0 {
		return nil, &meeting.InvalidInputError{Reason: "empty audio payload"}
	}
	return []meeting.Segment{
		{Speaker: "Speaker A", Start: 0, End: 10, Text: "Welcome everyone, let's get started with today's agenda."},
		{Speaker: "Speaker B", Start: 10, End: 22, Text: "Thanks. The main topic is the release timeline for next quarter."},
		{Speaker: "Speaker A", Start: 22, End: 34, Text: "Agreed. I will prepare the follow-up notes and share them by Friday."},
	}, nil
}
