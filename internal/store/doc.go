// Package store is the binary container codec: one SQLite file holding a
// whole harvest document.
//
// The container holds, one section per concern:
//   - Meta: format version, tool version, document ID, reference authority,
//     reference digest
//   - Reference sequences: ordered (name, description, sequence bytes)
//   - Tree: Newick text of the phylogeny
//   - Tracks: ordered genome names (track 0 = reference)
//   - Annotation tracks: named feature lists
//   - Variant filters and variants
//   - Alignment: LCBs and their gapped regions
//
// # Ordering
//
// Every ordered collection carries an idx column and all reads use
// ORDER BY idx ASC, so a loaded container reproduces the saved order exactly.
//
// # Writing
//
// Create writes into a temporary file beside the destination inside one
// transaction; Commit renames it into place. A failed or abandoned write
// never leaves a partial container at the destination path.
//
// Containers are read back only by the tool version that wrote them: Open
// rejects any other FormatVersion.
package store
