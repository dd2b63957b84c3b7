package phylo

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one vertex of a phylogenetic tree parsed from Newick text. For
// internal nodes, Support carries the bootstrap label when the tree builder
// wrote one.
type Node struct {
	Name     string
	Support  string
	Length   float64
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// NumLeaves counts the tips under the node, itself included if a tip.
func (n *Node) NumLeaves() int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.NumLeaves()
	}
	return total
}

// MaxDepth returns the largest root-to-tip sum of branch lengths.
func (n *Node) MaxDepth() float64 {
	max := 0.0
	for _, c := range n.Children {
		if d := c.Length + c.MaxDepth(); d > max {
			max = d
		}
	}
	return max
}

// ParseNewick parses a single Newick tree, keeping branch lengths and
// internal-node bootstrap labels.
func ParseNewick(text string) (*Node, error) {
	p := &newickParser{s: strings.TrimSpace(text)}

	root, err := p.parseNode()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.peek() == ';' {
		p.pos++
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("newick: trailing characters at offset %d", p.pos)
	}

	return root, nil
}

type newickParser struct {
	s   string
	pos int
}

func (p *newickParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *newickParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n' || p.s[p.pos] == '\r') {
		p.pos++
	}
}

func (p *newickParser) readLabel() string {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("(),:;\t\n\r ", rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *newickParser) parseNode() (*Node, error) {
	p.skipSpace()
	n := &Node{}

	if p.peek() == '(' {
		p.pos++
		for {
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)

			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("newick: expected ')' at offset %d", p.pos)
		}
		p.pos++

		// A label directly after ')' is the bootstrap support.
		n.Support = p.readLabel()
	} else {
		n.Name = p.readLabel()
		if n.Name == "" {
			return nil, fmt.Errorf("newick: empty label at offset %d", p.pos)
		}
	}

	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		lengthStr := p.readLabel()
		length, err := strconv.ParseFloat(lengthStr, 64)
		if err != nil {
			return nil, fmt.Errorf("newick: bad branch length %q at offset %d", lengthStr, p.pos)
		}
		n.Length = length
	}

	return n, nil
}
