// Package document is the harvest orchestrator: one explicit document
// context composing a reference store, a phylogeny, annotation tracks, an
// alignment and a variant table, plus the rules that keep them in one
// coordinate space.
//
// # Lifecycle
//
// A run performs every load in caller order, then at most one tree
// mutation, then every write. The first write seals the document; a load
// after that fails with ErrSealed. Writers read only the resolved
// document and never re-parse a source.
//
// # Reference authority
//
// The container, an alignment, a GenBank file carrying sequence, or an
// explicit FASTA can each supply the reference. Authority tracks which one
// did (see Authority). Annotation, variant and filter sources are
// accepted only once the reference is set.
//
// # Errors
//
// Orchestration failures are *Error values carrying a Code; malformed
// filter arguments are *FilterSpecError. Identifier lookups that fail are
// skipped with a warning unless the document was built with
// WithStrictIdentifiers.
package document
