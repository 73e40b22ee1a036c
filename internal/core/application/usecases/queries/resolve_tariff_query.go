// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrResolveTariffQueryIsNotConstructed = errors.New(
		"ResolveTariffQuery must be created via NewResolveTariffQuery constructor",
	)
	ErrPackageCountIsInvalid = errors.New("package count must be greater than 0")
)

// ResolveTariffQuery prices a hypothetical pooled weight against an origin
// warehouse's active tariff, without creating any invoice. Used for quoting.
//
// Example:
//
//	query, err := NewResolveTariffQuery(originID, 12.5, 3)
//	if err != nil {
//	    return fmt.Errorf("invalid quote request: %w", err)
//	}
//
//	handler := NewResolveTariffQueryHandler(db)
//	quote, err := handler.Handle(ctx, query)
type ResolveTariffQuery struct { //nolint:recvcheck //using for validation
	originID     kernel.UUID
	weight       kernel.Weight
	packageCount int

	guard guard.ConstructorGuard
}

// NewResolveTariffQuery creates a quoting query for the given origin, pooled
// weight in pounds and package count.
func NewResolveTariffQuery(originID kernel.UUID, pounds float64, packageCount int) (ResolveTariffQuery, error) {
	query := ResolveTariffQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOriginID(originID),
		query.setWeight(pounds),
		query.setPackageCount(packageCount),
	); err != nil {
		return ResolveTariffQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrResolveTariffQueryIsNotConstructed if validation fails.
func (q ResolveTariffQuery) Validate() error {
	return q.guard.Validate(ErrResolveTariffQueryIsNotConstructed)
}

// OriginID returns the origin warehouse to quote against.
func (q ResolveTariffQuery) OriginID() kernel.UUID {
	return q.originID
}

// Weight returns the pooled weight to price.
func (q ResolveTariffQuery) Weight() kernel.Weight {
	return q.weight
}

// PackageCount returns the package count used by per-package tiers.
func (q ResolveTariffQuery) PackageCount() int {
	return q.packageCount
}

func (q *ResolveTariffQuery) setOriginID(originID kernel.UUID) error {
	if err := originID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originId", err)
	}

	q.originID = originID
	return nil
}

func (q *ResolveTariffQuery) setWeight(pounds float64) error {
	weight, err := kernel.NewWeight(pounds)
	if err != nil {
		return err
	}

	q.weight = weight
	return nil
}

func (q *ResolveTariffQuery) setPackageCount(packageCount int) error {
	if packageCount <= 0 {
		return ErrPackageCountIsInvalid
	}

	q.packageCount = packageCount
	return nil
}

// ResolveTariffQueryResponse is the quote produced for a pooled weight.
// Fallback reports that no tier range matched and the base tier was used.
type ResolveTariffQueryResponse struct {
	TierID     kernel.UUID
	Service    string
	ChargeType string
	Rate       float64
	Amount     float64
	Fallback   bool
}
