// Package push delivers user-facing messages outside the inbox. Every channel
// implements contract.IPushChannel; MultiChannel fans one message out to
// several of them.
package push

import (
	"context"
	"errors"
	"fmt"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// EventBusChannel publishes the message on the user's live topic as a push
// event, which clients show as a banner.
type EventBusChannel struct {
	bus contract.IEventBus
}

var _ contract.IPushChannel = (*EventBusChannel)(nil)

func NewEventBusChannel(bus contract.IEventBus) *EventBusChannel {
	return &EventBusChannel{bus: bus}
}

func (c *EventBusChannel) Send(ctx context.Context, userID, title, body string) error {
	return c.bus.Publish(ctx, entity.UserTopic(userID), entity.NewEvent(entity.EventPush, map[string]interface{}{
		"user_id": userID,
		"title":   title,
		"body":    body,
	}))
}

// MailChannel mails the message to the user's address.
type MailChannel struct {
	users  contract.IUserRepository
	mailer contract.IEmailService
}

var _ contract.IPushChannel = (*MailChannel)(nil)

func NewMailChannel(users contract.IUserRepository, mailer contract.IEmailService) *MailChannel {
	return &MailChannel{users: users, mailer: mailer}
}

func (c *MailChannel) Send(ctx context.Context, userID, title, body string) error {
	user, err := c.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load recipient %s: %w", userID, err)
	}
	if user.Email == "" {
		return nil
	}
	return c.mailer.SendEmail(ctx, user.Email, title, body)
}

// MultiChannel sends through every channel and joins their errors. One
// failing leg never stops the others.
type MultiChannel struct {
	channels []contract.IPushChannel
	logger   usecasecontract.IAppLogger
}

var _ contract.IPushChannel = (*MultiChannel)(nil)

func NewMultiChannel(logger usecasecontract.IAppLogger, channels ...contract.IPushChannel) *MultiChannel {
	kept := make([]contract.IPushChannel, 0, len(channels))
	for _, ch := range channels {
		if ch != nil {
			kept = append(kept, ch)
		}
	}
	return &MultiChannel{channels: kept, logger: logger}
}

func (m *MultiChannel) Send(ctx context.Context, userID, title, body string) error {
	var errs []error
	for _, ch := range m.channels {
		if err := ch.Send(ctx, userID, title, body); err != nil {
			m.logger.Warnf("push to %s via %T failed: %v", userID, ch, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
