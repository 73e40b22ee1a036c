// Package tariff contains the pricing tiers used to bill consolidated
// freight. A tier is scoped to an origin warehouse and a weight range, and
// charges per pound, per package, or a flat amount.
package tariff
