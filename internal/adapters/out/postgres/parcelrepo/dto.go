// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Maps parcel domain entities to relational database tables with proper indexing
// for efficient querying by client, origin and status.
type ParcelDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
	OriginID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	WeightLbs    float64    `gorm:"type:numeric(10,2);not null"`
	LengthIn     *float64
	WidthIn      *float64
	HeightIn     *float64
	PieceCount   int  `gorm:"type:int;not null"`
	Fragile      bool `gorm:"not null"`
	Repack       bool `gorm:"not null"`
	Status       int  `gorm:"type:int;not null;index"`
	ReceivedAt   time.Time
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// ParcelEventDTO represents one append-only audit record of a parcel.
type ParcelEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FromLabel  string    `gorm:"type:varchar(64);not null"`
	ToLabel    string    `gorm:"type:varchar(64);not null"`
	Actor      string    `gorm:"type:varchar(255);not null"`
	Note       string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for parcel audit events.
func (ParcelEventDTO) TableName() string {
	return "parcel_events"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(p *parcel.Parcel) ParcelDTO {
	var clientID *uuid.UUID
	if id := p.Client(); id != nil {
		raw := id.Bytes()
		clientID = &raw
	}

	var lengthIn, widthIn, heightIn *float64
	if dims := p.Dimensions(); dims != nil {
		l, w, h := dims.Length(), dims.Width(), dims.Height()
		lengthIn, widthIn, heightIn = &l, &w, &h
	}

	return ParcelDTO{
		ID:           p.ID().Bytes(),
		TrackingCode: p.TrackingCode(),
		ClientID:     clientID,
		OriginID:     p.Origin().Bytes(),
		WeightLbs:    p.Weight().Pounds(),
		LengthIn:     lengthIn,
		WidthIn:      widthIn,
		HeightIn:     heightIn,
		PieceCount:   p.PieceCount(),
		Fragile:      p.IsFragile(),
		Repack:       p.NeedsRepack(),
		Status:       int(p.Status()),
		ReceivedAt:   p.ReceivedAt(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including optional client and dimensions
// using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var clientID *kernel.UUID
	if dto.ClientID != nil {
		cID, clientErr := kernel.UUIDFromBytes((*dto.ClientID)[:])
		if clientErr != nil {
			return nil, clientErr
		}
		clientID = &cID
	}

	originID, err := kernel.UUIDFromBytes(dto.OriginID[:])
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightLbs)
	if err != nil {
		return nil, err
	}

	var dims *kernel.Dimensions
	if dto.LengthIn != nil && dto.WidthIn != nil && dto.HeightIn != nil {
		d, dimsErr := kernel.NewDimensions(*dto.LengthIn, *dto.WidthIn, *dto.HeightIn)
		if dimsErr != nil {
			return nil, dimsErr
		}
		dims = &d
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingCode,
		clientID,
		originID,
		weight,
		dims,
		dto.PieceCount,
		dto.Fragile,
		dto.Repack,
		parcel.Status(dto.Status),
		dto.ReceivedAt,
	)
}

// eventFromDomain converts a parcel audit event to its database representation.
func eventFromDomain(e *parcel.Event) ParcelEventDTO {
	return ParcelEventDTO{
		ID:         e.ID().Bytes(),
		ParcelID:   e.ParcelID().Bytes(),
		FromLabel:  e.FromLabel(),
		ToLabel:    e.ToLabel(),
		Actor:      e.Actor(),
		Note:       e.Note(),
		OccurredAt: e.OccurredAt(),
	}
}
