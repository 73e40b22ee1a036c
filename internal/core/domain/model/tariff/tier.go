package tariff

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// MinBillableWeightLbs is the floor applied to per-pound charges: anything
// lighter is billed as one pound.
const MinBillableWeightLbs = 1.0

// ChargeType determines how a tier computes its charge.
type ChargeType int

const (
	// ChargeTypeUnknown represents an invalid or undefined charge type.
	ChargeTypeUnknown ChargeType = iota

	// PerPound charges rate x pooled weight, with a one-pound minimum.
	PerPound

	// Flat charges the rate once, ignoring weight and package count.
	Flat

	// PerPackage charges rate x package count.
	PerPackage
)

func getChargeTypeStrings() map[ChargeType]string {
	return map[ChargeType]string{
		ChargeTypeUnknown: "unknown",
		PerPound:          "per_pound",
		Flat:              "flat",
		PerPackage:        "per_package",
	}
}

// ParseChargeType resolves the stored string form of a charge type.
func ParseChargeType(s string) (ChargeType, error) {
	for ct, str := range getChargeTypeStrings() {
		if ct != ChargeTypeUnknown && str == s {
			return ct, nil
		}
	}
	return ChargeTypeUnknown, errs.NewValueIsInvalidErrorWithCause("chargeType",
		fmt.Errorf("%q is not a valid charge type", s))
}

// Validate checks if the ChargeType is one of the defined values.
func (ct ChargeType) Validate() error {
	if ct == ChargeTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("chargeType",
			fmt.Errorf("%d is not a valid charge type", ct))
	}
	if _, ok := getChargeTypeStrings()[ct]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("chargeType",
			fmt.Errorf("%d is not a valid charge type", ct))
	}
	return nil
}

// String returns the snake_case name of the charge type.
func (ct ChargeType) String() string {
	if str, ok := getChargeTypeStrings()[ct]; ok {
		return str
	}
	return "unknown"
}

// ErrTierIsNotConstructed is returned when a Tier was not created via NewTier.
var ErrTierIsNotConstructed = errors.New("Tier must be created via NewTier constructor")

// Tier is one priced rule of an origin warehouse's tariff. A tier applies to
// pooled weights within [minWeight, maxWeight]; a nil maxWeight means the
// range is unbounded above.
type Tier struct {
	id         kernel.UUID
	originID   kernel.UUID
	service    string
	chargeType ChargeType
	rate       float64
	minWeight  float64
	maxWeight  *float64
	active     bool

	isConstructed bool
}

// NewTier creates a tariff tier. Rate and minWeight must be non-negative; a
// bounded maxWeight must not be below minWeight.
func NewTier(
	id kernel.UUID,
	originID kernel.UUID,
	service string,
	chargeType ChargeType,
	rate float64,
	minWeight float64,
	maxWeight *float64,
	active bool,
) (*Tier, error) {
	t := &Tier{
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOriginID(originID),
		t.setService(service),
		t.setChargeType(chargeType),
		t.setRate(rate),
		t.setWeightRange(minWeight, maxWeight),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the Tier was created via NewTier.
func (t *Tier) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTierIsNotConstructed
	}
	return nil
}

// ID returns the tier's unique identifier.
func (t *Tier) ID() kernel.UUID { return t.id }

// Origin returns the origin warehouse the tier is scoped to.
func (t *Tier) Origin() kernel.UUID { return t.originID }

// Service returns the human-facing service name.
func (t *Tier) Service() string { return t.service }

// ChargeType returns how the tier computes its charge.
func (t *Tier) ChargeType() ChargeType { return t.chargeType }

// Rate returns the tier rate.
func (t *Tier) Rate() float64 { return t.rate }

// MinWeight returns the inclusive lower bound of the weight range in pounds.
func (t *Tier) MinWeight() float64 { return t.minWeight }

// MaxWeight returns the inclusive upper bound in pounds, or nil when unbounded.
func (t *Tier) MaxWeight() *float64 { return t.maxWeight }

// IsActive reports whether the tier participates in resolution.
func (t *Tier) IsActive() bool { return t.active }

// Matches reports whether the pooled weight falls inside the tier's range.
func (t *Tier) Matches(weight kernel.Weight) bool {
	w := weight.Pounds()
	if w < t.minWeight {
		return false
	}
	return t.maxWeight == nil || w <= *t.maxWeight
}

// Charge computes the amount for a pooled weight and package count:
// per_pound charges rate x max(weight, 1 lb), flat charges the rate once,
// per_package charges rate x count.
func (t *Tier) Charge(weight kernel.Weight, packageCount int) float64 {
	switch t.chargeType {
	case PerPound:
		return t.rate * max(weight.Pounds(), MinBillableWeightLbs)
	case Flat:
		return t.rate
	case PerPackage:
		return t.rate * float64(packageCount)
	default:
		return 0
	}
}

func (t *Tier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tier) setOriginID(originID kernel.UUID) error {
	if err := originID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originId", err)
	}
	t.originID = originID
	return nil
}

func (t *Tier) setService(service string) error {
	if service == "" {
		return errs.NewValueIsRequiredError("service")
	}
	t.service = service
	return nil
}

func (t *Tier) setChargeType(chargeType ChargeType) error {
	if err := chargeType.Validate(); err != nil {
		return err
	}
	t.chargeType = chargeType
	return nil
}

func (t *Tier) setRate(rate float64) error {
	if rate < 0 {
		return errs.NewValueIsInvalidErrorWithCause("rate",
			fmt.Errorf("%v is negative", rate))
	}
	t.rate = rate
	return nil
}

func (t *Tier) setWeightRange(minWeight float64, maxWeight *float64) error {
	if minWeight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minWeight",
			fmt.Errorf("%v is negative", minWeight))
	}
	if maxWeight != nil && *maxWeight < minWeight {
		return errs.NewValueIsInvalidErrorWithCause("maxWeight",
			fmt.Errorf("%v is below the minimum weight %v", *maxWeight, minWeight))
	}
	t.minWeight = minWeight
	t.maxWeight = maxWeight
	return nil
}
