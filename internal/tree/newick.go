package tree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseNewick parses one Newick tree terminated by ';'.
// Quoted labels use single quotes with '' as an escaped quote.
// Bracketed [comments] are skipped.
func ParseNewick(text string) (*Tree, error) {
	p := &parser{src: text}
	root, err := p.subtree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.consume(';') {
		return nil, p.errorf("expected ';'")
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected text after ';'")
	}
	return &Tree{Root: root}, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("newick: offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) consume(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '[':
			end := strings.IndexByte(p.src[p.pos:], ']')
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 1
		default:
			return
		}
	}
}

func (p *parser) subtree() (*Node, error) {
	n := &Node{}
	p.skipSpace()
	if p.consume('(') {
		for {
			child, err := p.subtree()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
			p.skipSpace()
			if p.consume(',') {
				continue
			}
			if p.consume(')') {
				break
			}
			return nil, p.errorf("expected ',' or ')'")
		}
	}

	name, err := p.label()
	if err != nil {
		return nil, err
	}
	n.Name = name

	p.skipSpace()
	if p.consume(':') {
		p.skipSpace()
		start := p.pos
		for p.pos < len(p.src) && !strings.ContainsRune("(),:;[ \t\r\n", rune(p.src[p.pos])) {
			p.pos++
		}
		v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return nil, p.errorf("bad branch length %q", p.src[start:p.pos])
		}
		n.Length = v
		n.HasLength = true
	}
	return n, nil
}

func (p *parser) label() (string, error) {
	p.skipSpace()
	if p.consume('\'') {
		var b strings.Builder
		for {
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated quoted label")
			}
			c := p.src[p.pos]
			p.pos++
			if c == '\'' {
				if p.consume('\'') {
					b.WriteByte('\'')
					continue
				}
				return b.String(), nil
			}
			b.WriteByte(c)
		}
	}
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("(),:;[", rune(p.src[p.pos])) {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos]), nil
}

// WriteNewick writes the tree as one line of Newick text ending in ";\n".
func (t *Tree) WriteNewick(w io.Writer) error {
	var b strings.Builder
	if t.Root != nil {
		writeNode(&b, t.Root)
	}
	b.WriteString(";\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the Newick text of the tree without the trailing newline.
func (t *Tree) String() string {
	var b strings.Builder
	_ = t.WriteNewick(&b)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeNode(b *strings.Builder, n *Node) {
	if len(n.Children) > 0 {
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNode(b, c)
		}
		b.WriteByte(')')
	}
	b.WriteString(quoteLabel(n.Name))
	if n.HasLength {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(n.Length, 'g', -1, 64))
	}
}

// quoteLabel renders a label so that ParseNewick reads it back unchanged.
func quoteLabel(name string) string {
	if name == "" {
		return ""
	}
	if !strings.ContainsAny(name, "()[]',:; \t\r\n") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
