package notifier

import "context"

// Notifier delivers a meeting document to a recipient. Send reports whether a
// message actually went out; a disabled notifier returns (false, nil) rather
// than an error so callers treat email as strictly optional.
type Notifier interface {
	Send(ctx context.Context, subject, body, recipient string) (bool, error)
}
