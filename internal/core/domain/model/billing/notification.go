package billing

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a NotificationRequest was
// not created through its constructor.
var ErrNotificationIsNotConstructed = errors.New(
	"NotificationRequest must be created via NewNotificationRequest constructor")

// Channel is the delivery medium of an outbound notification.
type Channel int

const (
	// ChannelUnknown represents an invalid or undefined channel.
	ChannelUnknown Channel = iota

	// ChannelEmail delivers via email.
	ChannelEmail

	// ChannelWhatsApp delivers via WhatsApp message.
	ChannelWhatsApp
)

func getChannelStrings() map[Channel]string {
	return map[Channel]string{
		ChannelUnknown:  "unknown",
		ChannelEmail:    "email",
		ChannelWhatsApp: "whatsapp",
	}
}

// ParseChannel resolves the stored string form of a channel.
func ParseChannel(s string) (Channel, error) {
	for c, str := range getChannelStrings() {
		if c != ChannelUnknown && str == s {
			return c, nil
		}
	}
	return ChannelUnknown, errs.NewValueIsInvalidErrorWithCause("channel",
		fmt.Errorf("%q is not a valid notification channel", s))
}

// Validate checks if the Channel is one of the defined values.
func (c Channel) Validate() error {
	if c == ChannelUnknown {
		return errs.NewValueIsInvalidErrorWithCause("channel",
			fmt.Errorf("%d is not a valid notification channel", c))
	}
	if _, ok := getChannelStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("channel",
			fmt.Errorf("%d is not a valid notification channel", c))
	}
	return nil
}

// String returns the snake_case name of the channel.
func (c Channel) String() string {
	if str, ok := getChannelStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// NotificationStatus tracks the dispatch state of a notification request.
type NotificationStatus int

const (
	// NotificationStatusUnknown represents an invalid or undefined status.
	NotificationStatusUnknown NotificationStatus = iota

	// NotificationPending means the request has not been dispatched yet.
	NotificationPending

	// NotificationSent means dispatch succeeded.
	NotificationSent

	// NotificationFailed means dispatch failed.
	NotificationFailed
)

func getNotificationStatusStrings() map[NotificationStatus]string {
	return map[NotificationStatus]string{
		NotificationStatusUnknown: "unknown",
		NotificationPending:       "pending",
		NotificationSent:          "sent",
		NotificationFailed:        "failed",
	}
}

// Validate checks if the NotificationStatus is one of the defined states.
func (s NotificationStatus) Validate() error {
	if s == NotificationStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("notificationStatus",
			fmt.Errorf("%d is not a valid notification status", s))
	}
	if _, ok := getNotificationStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("notificationStatus",
			fmt.Errorf("%d is not a valid notification status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
func (s NotificationStatus) String() string {
	if str, ok := getNotificationStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// NotificationRequest is a queued outbound message to a client. Requests are
// enqueued outside the billing transaction and drained by a background job,
// so a failed dispatch never affects an already committed invoice.
type NotificationRequest struct {
	id        kernel.UUID
	clientID  kernel.UUID
	channel   Channel
	subject   string
	body      string
	status    NotificationStatus
	createdAt time.Time

	isConstructed bool
}

// NewNotificationRequest creates a pending notification request.
func NewNotificationRequest(
	id kernel.UUID,
	clientID kernel.UUID,
	channel Channel,
	subject string,
	body string,
	createdAt time.Time,
) (*NotificationRequest, error) {
	n := &NotificationRequest{
		subject:       subject,
		status:        NotificationPending,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setClientID(clientID),
		n.setChannel(channel),
		n.setBody(body),
		n.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotificationRequest reconstructs a notification request from
// persistence.
func RestoreNotificationRequest(
	id kernel.UUID,
	clientID kernel.UUID,
	channel Channel,
	subject string,
	body string,
	status NotificationStatus,
	createdAt time.Time,
) (*NotificationRequest, error) {
	n, err := NewNotificationRequest(id, clientID, channel, subject, body, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	n.status = status
	return n, nil
}

// Validate ensures the request was created through its constructor.
func (n *NotificationRequest) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (n *NotificationRequest) ID() kernel.UUID { return n.id }

// Client returns the addressed client's ID.
func (n *NotificationRequest) Client() kernel.UUID { return n.clientID }

// Channel returns the delivery medium.
func (n *NotificationRequest) Channel() Channel { return n.channel }

// Subject returns the message subject. Empty for channels without one.
func (n *NotificationRequest) Subject() string { return n.subject }

// Body returns the message body.
func (n *NotificationRequest) Body() string { return n.body }

// Status returns the dispatch status.
func (n *NotificationRequest) Status() NotificationStatus { return n.status }

// CreatedAt returns the enqueue timestamp.
func (n *NotificationRequest) CreatedAt() time.Time { return n.createdAt }

// MarkSent records a successful dispatch.
func (n *NotificationRequest) MarkSent() error {
	if n.status != NotificationPending {
		return errs.NewValueIsInvalidErrorWithCause("notificationStatus",
			fmt.Errorf("%s is not a valid status to mark as sent", n.status))
	}
	n.status = NotificationSent
	return nil
}

// MarkFailed records a failed dispatch.
func (n *NotificationRequest) MarkFailed() error {
	if n.status != NotificationPending {
		return errs.NewValueIsInvalidErrorWithCause("notificationStatus",
			fmt.Errorf("%s is not a valid status to mark as failed", n.status))
	}
	n.status = NotificationFailed
	return nil
}

func (n *NotificationRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *NotificationRequest) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	n.clientID = clientID
	return nil
}

func (n *NotificationRequest) setChannel(channel Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	n.channel = channel
	return nil
}

func (n *NotificationRequest) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	n.body = body
	return nil
}

func (n *NotificationRequest) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	n.createdAt = createdAt
	return nil
}
