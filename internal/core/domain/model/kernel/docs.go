// Package kernel contains shared value objects used across all domain models:
// identifiers, weights, and package dimensions. All types are immutable and
// must be created through their constructor functions.
package kernel
