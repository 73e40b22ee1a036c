package kernel

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// volumetricDivisor converts cubic inches to volumetric pounds.
// Standard air-freight divisor: (L x W x H) / 166.
const volumetricDivisor = 166.0

// ErrDimensionsAreNotConstructed is returned when validating a zero-value
// Dimensions instance that bypassed NewDimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions represents the length, width, and height of a package in inches.
// It is an immutable value object used to derive the volumetric weight.
//
// Example:
//
//	dims, err := kernel.NewDimensions(20, 14, 10)
//	if err != nil {
//	    // handle validation error
//	}
//	vw := dims.VolumetricWeight() // (20*14*10)/166 lb
type Dimensions struct { //nolint:recvcheck //using for validation
	length float64
	width  float64
	height float64

	guard guard.ConstructorGuard
}

// NewDimensions creates Dimensions from length, width, and height in inches.
// All three sides must be positive.
func NewDimensions(length, width, height float64) (Dimensions, error) {
	dims := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dims.setSide("length", &dims.length, length),
		dims.setSide("width", &dims.width, width),
		dims.setSide("height", &dims.height, height),
	); err != nil {
		return Dimensions{}, err
	}

	return dims, nil
}

// Validate ensures the Dimensions instance was created via NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// Length returns the length in inches.
func (d Dimensions) Length() float64 {
	return d.length
}

// Width returns the width in inches.
func (d Dimensions) Width() float64 {
	return d.width
}

// Height returns the height in inches.
func (d Dimensions) Height() float64 {
	return d.height
}

// VolumetricWeight derives the billable volumetric weight in pounds
// from the package volume.
func (d Dimensions) VolumetricWeight() Weight {
	return Weight{pounds: d.length * d.width * d.height / volumetricDivisor}
}

// String returns the dimensions formatted as LxWxH in inches.
func (d Dimensions) String() string {
	return fmt.Sprintf("%.1fx%.1fx%.1f in", d.length, d.width, d.height)
}

func (d *Dimensions) setSide(name string, field *float64, value float64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%v is not greater than 0", value))
	}
	*field = value
	return nil
}
