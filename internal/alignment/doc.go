// Package alignment models a whole-genome alignment as an ordered list of
// tracks (genomes) and locally collinear blocks (LCBs).
//
// Track 0 is always the reference. Each block holds one region per
// participating track; a region records ungapped coordinates in that
// track's own concatenated space together with the gapped row. Region
// coordinates of track 0 are therefore concatenated reference coordinates.
//
// Two input layouts are supported:
//   - MFA: equal-length gapped rows, the first row being the reference,
//     read as a single block
//   - XMFA: Mauve/parsnp blocks ("> idx:start-end strand name", closed by
//     "="), one block per LCB
//
// The package also renders the two alignment-derived views of a document:
// backbone intervals and XMFA text. DeriveVariants turns alignment columns
// into variants placed on the reference.
package alignment
