// Package annotation reads annotation sources: GenBank flat files and BED
// interval files.
//
// Records are returned in their own local coordinates (0-based, half-open,
// relative to the record's sequence). Placing them on a document's
// concatenated coordinate space is the caller's job, because only the caller
// knows whether the record's embedded sequence or an already loaded
// reference is authoritative.
package annotation
