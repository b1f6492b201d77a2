package watcher

import "context"

// Watcher monitors the inbox directory for dropped recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly detected audio file.
type EventHandler func(ctx context.Context, filePath string) error
