package summarizer

import (
	"context"

	"github.com/meetscribe/scribe/internal/meeting"
)

// Summarizer turns a rendered transcript into a summary plus action items.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (meeting.Summary, error)
}
