// Package testutil holds shared test fixtures: small input files in every
// format harvest reads, a temp-file helper, golden-file assertions and a
// deterministic document ID source.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample inputs. The two-sequence reference (chrA 12 bp, chrB 8 bp) is the
// coordinate space the other fixtures are positioned on.
const (
	ReferenceFasta = `>chrA Escherichia coli
ACGTACGTACGT
>chrB plasmid pX
GGGGCCCC
`

	// Reference row plus two genomes. Variable reference positions: 2, 7, 13.
	AlignmentMFA = `>chrA
ACGTACGTACGTGGGGCCCC
>s1
ACCTACGAACGTGTGGCCCC
>s2
ACGTACG-ACGTGTGGCCCC
`

	AlignmentXMFA = `#FormatVersion Mauve1
#Sequence1File	ref.fna
#Sequence1Format	FastA
#Sequence2File	s1.fna
#Sequence2Format	FastA
> 1:1-4 + ref.fna
ACGT
> 2:11-14 - s1.fna
ACCT
=
> 1:9-12 + ref.fna
GG-CC
> 2:0-0 + s1.fna
-----
=
`

	Tree = "((chrA:1,s1:1):1,s2:4);\n"

	// GenBank record carrying its own sequence.
	GenbankWithSequence = `LOCUS       chrA                      12 bp    DNA     linear
DEFINITION  Escherichia coli.
ACCESSION   chrA
VERSION     chrA.1
FEATURES             Location/Qualifiers
     gene            1..4
                     /locus_tag="g1"
                     /product="first gene"
     gene            complement(6..9)
                     /gene="g2"
ORIGIN
        1 acgtacgtac gt
//
`

	// GenBank record without an ORIGIN section.
	GenbankWithoutSequence = `LOCUS       chrB                       8 bp    DNA     circular
DEFINITION  plasmid pX.
ACCESSION   chrB
VERSION     chrB.2
FEATURES             Location/Qualifiers
     CDS             2..5
                     /locus_tag="p1"
//
`

	Bed = `track name=core
chrA	0	4
chrB	2	6
`

	VCF = `##fileformat=VCFv4.1
##contig=<ID=chrA,length=12>
##contig=<ID=chrB,length=8>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	s1	s2
chrA	3	.	G	C	.	PASS	.	GT	1	0
chrA	8	.	T	A	.	PASS	.	GT	1	.
chrB	2	.	G	T	.	PASS	.	GT	1	1
`
)

// WriteFile writes content to name inside a fresh temp directory owned by
// t and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	return WriteFileIn(t, t.TempDir(), name, content)
}

// WriteFileIn writes content to dir/name and returns the path.
func WriteFileIn(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
