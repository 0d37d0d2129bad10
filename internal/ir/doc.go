// Package ir provides the shared value types of a harvest document.
//
// This package contains type definitions and canonical hashing only. All other
// internal packages import ir; ir imports nothing internal. This keeps the
// coordinate-bearing types in one foundational layer with no circular
// dependencies.
//
// Coordinate conventions:
//   - Every position stored on an ir type is a concatenated coordinate: one
//     0-based offset across all reference sequences laid end to end in store
//     order (see internal/reference).
//   - Intervals are half-open: [Start, End).
//   - Track 0 is always the reference genome.
package ir
