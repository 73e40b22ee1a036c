// Package notificationrepo provides data transfer objects and mapping functions
// for the outbound notification queue. Requests are enqueued after billing
// commits and drained by the dispatch job.
package notificationrepo

import (
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting queued
// outbound notifications.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Channel   int       `gorm:"type:int;not null"`
	Subject   string    `gorm:"type:varchar(255)"`
	Body      string    `gorm:"type:text;not null"`
	Status    int       `gorm:"type:int;not null;index"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for queued notifications.
// Overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification request to its database representation.
func fromDomain(n *billing.NotificationRequest) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		ClientID:  n.Client().Bytes(),
		Channel:   int(n.Channel()),
		Subject:   n.Subject(),
		Body:      n.Body(),
		Status:    int(n.Status()),
		CreatedAt: n.CreatedAt(),
	}
}

// toDomain converts a database DTO to a notification request.
func toDomain(dto NotificationDTO) (*billing.NotificationRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	return billing.RestoreNotificationRequest(
		id,
		clientID,
		billing.Channel(dto.Channel),
		dto.Subject,
		dto.Body,
		billing.NotificationStatus(dto.Status),
		dto.CreatedAt,
	)
}
