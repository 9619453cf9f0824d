// Package coerce converts dynamically typed numbers to fixed-width native
// values without losing information. Conversions that would truncate,
// overflow or change sign report false.
package coerce
