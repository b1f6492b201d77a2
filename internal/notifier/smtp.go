package notifier

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/meeting"
)

type implDisabled struct {
	logger logger.Logger
}

func (n *implDisabled) Send(ctx context.Context, subject, body, recipient string) (bool, error) {
	n.logger.Debug(ctx, "email disabled; skipping delivery")
	return false, nil
}

type implSMTP struct {
	cfg    config.EmailConfig
	logger logger.Logger
}

func (n *implSMTP) Send(ctx context.Context, subject, body, recipient string) (bool, error) {
	if recipient == "" {
		recipient = n.cfg.Recipient
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.SenderAddress()); err != nil {
		return false, &meeting.EmailDeliveryError{Err: fmt.Errorf("sender address: %w", err)}
	}
	if err := msg.To(recipient); err != nil {
		return false, &meeting.EmailDeliveryError{Err: fmt.Errorf("recipient address: %w", err)}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{mail.WithPort(n.cfg.Port)}
	if n.cfg.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return false, &meeting.EmailDeliveryError{Err: fmt.Errorf("smtp client: %w", err)}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return false, &meeting.EmailDeliveryError{Err: err}
	}

	n.logger.Info(ctx, "meeting notes emailed to %s", recipient)
	return true, nil
}
