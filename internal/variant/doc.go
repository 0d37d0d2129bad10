// Package variant holds the variant-table views of a document: VCF input
// and output, the multi-FASTA SNP table, and filter tagging.
//
// Variants are positioned in concatenated reference coordinates and carry
// one allele per track, track 0 being the reference. VCF records are
// translated to and from that space through a reference.Store.
package variant
