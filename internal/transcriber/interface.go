package transcriber

import (
	"context"

	"github.com/meetscribe/scribe/internal/meeting"
)

// Transcriber converts raw audio bytes into diarised transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) ([]meeting.Segment, error)
}
