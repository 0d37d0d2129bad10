package alignment

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/harvest/internal/ir"
)

// XMFALineWidth is the residue count per line written by WriteXMFA.
const XMFALineWidth = 80

var (
	xmfaTrackFile = regexp.MustCompile(`^##?Sequence(\d+)File\s+(.+)$`)
	xmfaHeader    = regexp.MustCompile(`^>\s*(\d+):(\d+)-(\d+)\s+([+-])\s*(.*)$`)
)

// LoadXMFA parses the XMFA alignment at path.
func LoadXMFA(path string) (*Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load xmfa: %w", err)
	}
	defer f.Close()

	aln, err := ReadXMFA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return aln, nil
}

// ReadXMFA parses an XMFA stream.
//
// Track names come from "#SequenceNFile" headers, falling back to the name
// on the first region header of that track. Region headers are 1-based and
// inclusive; "0-0" marks a track with no residues in the block.
func ReadXMFA(r io.Reader) (*Alignment, error) {
	br := bufio.NewReader(r)

	var (
		names   = map[int]string{}
		lcbs    []ir.LCB
		cur     ir.LCB
		region  *ir.Region
		row     strings.Builder
		nTracks int
		lineNo  int
	)
	flushRegion := func() {
		if region == nil {
			return
		}
		region.Aligned = row.String()
		row.Reset()
		cur.Regions = append(cur.Regions, *region)
		region = nil
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read xmfa: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(line, "#"):
			if m := xmfaTrackFile.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[1])
				if n < 1 {
					return nil, fmt.Errorf("read xmfa: line %d: bad sequence number %q", lineNo, m[1])
				}
				names[n-1] = strings.TrimSpace(m[2])
				nTracks = max(nTracks, n)
			}

		case strings.HasPrefix(line, ">"):
			flushRegion()
			m := xmfaHeader.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("read xmfa: line %d: malformed region header %q", lineNo, line)
			}
			idx, _ := strconv.Atoi(m[1])
			start, _ := strconv.ParseInt(m[2], 10, 64)
			end, _ := strconv.ParseInt(m[3], 10, 64)
			if idx < 1 {
				return nil, fmt.Errorf("read xmfa: line %d: bad sequence number %d", lineNo, idx)
			}
			region = &ir.Region{Track: idx - 1, Reverse: m[4] == "-"}
			if start > 0 {
				if end < start {
					return nil, fmt.Errorf("read xmfa: line %d: bad range %d-%d", lineNo, start, end)
				}
				region.Start = start - 1
				region.Length = end - start + 1
			}
			if _, named := names[idx-1]; !named && m[5] != "" {
				names[idx-1] = strings.Fields(m[5])[0]
			}
			nTracks = max(nTracks, idx)

		case strings.HasPrefix(line, "="):
			flushRegion()
			if len(cur.Regions) > 0 {
				lcbs = append(lcbs, cur)
			}
			cur = ir.LCB{}

		case strings.TrimSpace(line) == "":
			// blank

		default:
			if region == nil {
				return nil, fmt.Errorf("read xmfa: line %d: sequence data outside a region", lineNo)
			}
			row.WriteString(strings.TrimSpace(line))
		}

		if err != nil {
			break
		}
	}

	flushRegion()
	if len(cur.Regions) > 0 {
		return nil, fmt.Errorf("read xmfa: last block not terminated by '='")
	}
	if nTracks == 0 {
		return nil, fmt.Errorf("read xmfa: no sequences")
	}

	aln := &Alignment{Tracks: make([]string, nTracks), LCBs: lcbs}
	for i := range aln.Tracks {
		if name, ok := names[i]; ok {
			aln.Tracks[i] = name
		} else {
			aln.Tracks[i] = fmt.Sprintf("track%d", i+1)
		}
	}
	if err := aln.Validate(); err != nil {
		return nil, fmt.Errorf("read xmfa: %w", err)
	}
	return aln, nil
}

// WriteXMFA renders the alignment as XMFA. The output reads back through
// ReadXMFA to the same tracks and blocks.
func WriteXMFA(w io.Writer, aln *Alignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#FormatVersion Mauve1")
	for i, name := range aln.Tracks {
		fmt.Fprintf(bw, "#Sequence%dFile\t%s\n", i+1, name)
		fmt.Fprintf(bw, "#Sequence%dFormat\tFastA\n", i+1)
	}

	for _, lcb := range aln.LCBs {
		for _, r := range lcb.Regions {
			strand := "+"
			if r.Reverse {
				strand = "-"
			}
			var start, end int64
			if r.Length > 0 {
				start, end = r.Start+1, r.End()
			}
			fmt.Fprintf(bw, "> %d:%d-%d %s %s\n", r.Track+1, start, end, strand, aln.Tracks[r.Track])
			for off := 0; off < len(r.Aligned); off += XMFALineWidth {
				fmt.Fprintln(bw, r.Aligned[off:min(off+XMFALineWidth, len(r.Aligned))])
			}
		}
		fmt.Fprintln(bw, "=")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write xmfa: %w", err)
	}
	return nil
}
