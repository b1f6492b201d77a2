package notifier

import (
	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
)

// New returns the SMTP notifier when email is configured, otherwise a no-op.
func New(cfg *config.Config, log logger.Logger) Notifier {
	if cfg.EmailConfigured() {
		return &implSMTP{cfg: cfg.Email, logger: log}
	}
	return &implDisabled{logger: log}
}
