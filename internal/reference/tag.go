package reference

import (
	"strings"
	"unicode"
)

// SplitTag splits a FASTA header (without '>') into a name and description.
//
// The split happens at the first whitespace run: name is the text before it
// and description is the trimmed remainder, or "" when the tag contains no
// whitespace.
func SplitTag(tag string) (name, description string) {
	i := strings.IndexFunc(tag, unicode.IsSpace)
	if i < 0 {
		return tag, ""
	}
	return tag[:i], strings.TrimSpace(tag[i:])
}

// JoinTag is the inverse of SplitTag for names without whitespace.
func JoinTag(name, description string) string {
	if description == "" {
		return name
	}
	return name + " " + description
}

// Identifiers returns the lookup keys carried by a sequence name, most
// specific first:
//   - the name itself
//   - every value field of an NCBI pipe-tagged name, so
//     "gi|15|ref|NC_0001.1|" yields "15" and "NC_0001.1"
//   - version-stripped accessions ("NC_0001.1" also yields "NC_0001")
func Identifiers(name string) []string {
	if name == "" {
		return nil
	}
	keys := []string{name}
	if strings.Contains(name, "|") {
		fields := strings.Split(name, "|")
		for i := 0; i+1 < len(fields); i += 2 {
			if v := strings.TrimSpace(fields[i+1]); v != "" {
				keys = append(keys, v)
			}
		}
	}
	for _, k := range keys {
		if dot := strings.LastIndexByte(k, '.'); dot > 0 && isDigits(k[dot+1:]) {
			keys = append(keys, k[:dot])
		}
	}
	return keys
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
