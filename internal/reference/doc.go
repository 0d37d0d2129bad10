// Package reference owns the ordered reference sequences of a document and
// the single concatenated coordinate space they define.
//
// Sequences are laid end to end in store (load) order. A concatenated
// coordinate P with 0 <= P < TotalLength maps to exactly one
// (sequence index, offset) pair; any other P maps to NotFound.
//
// Every importer and exporter translates positions through a Store so that
// all views of a document agree on one coordinate system.
package reference
