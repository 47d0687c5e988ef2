// Package validation provides common validation utilities for construction
// arguments across the orlando library.
//
// Transformations and pipelines reject contract violations (negative counts,
// non-positive window sizes, nil functions) when they are built rather than
// when they run. These helpers keep the resulting error messages consistent.
package validation
