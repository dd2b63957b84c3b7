package phylo

import (
	"math"
	"testing"
)

func TestParseNewick(t *testing.T) {
	tree, err := ParseNewick("(TMED1:0.1,(TMED5:0.2,TMED9:0.3)95:0.05,TMED10:0.4);\n")
	if err != nil {
		t.Fatal(err)
	}

	if got := tree.NumLeaves(); got != 4 {
		t.Fatalf("leaf count: got %d, want 4", got)
	}

	if len(tree.Children) != 3 {
		t.Fatalf("root arity: got %d, want 3", len(tree.Children))
	}

	inner := tree.Children[1]
	if inner.Support != "95" {
		t.Fatalf("bootstrap label: got %q, want \"95\"", inner.Support)
	}
	if math.Abs(inner.Length-0.05) > 1e-12 {
		t.Fatalf("inner branch length: got %v", inner.Length)
	}

	if inner.Children[0].Name != "TMED5" || inner.Children[1].Name != "TMED9" {
		t.Fatalf("inner tips: %v, %v", inner.Children[0].Name, inner.Children[1].Name)
	}

	// Deepest tip is TMED9 at 0.05 + 0.3.
	if d := tree.MaxDepth(); math.Abs(d-0.4) > 1e-12 {
		t.Fatalf("max depth: got %v, want 0.4", d)
	}
}

func TestParseNewickNoLengths(t *testing.T) {
	tree, err := ParseNewick("(A,(B,C));")
	if err != nil {
		t.Fatal(err)
	}
	if tree.NumLeaves() != 3 {
		t.Fatalf("leaf count: got %d", tree.NumLeaves())
	}
	if tree.MaxDepth() != 0 {
		t.Fatalf("expected zero depth without branch lengths, got %v", tree.MaxDepth())
	}
}

func TestParseNewickErrors(t *testing.T) {
	for _, v := range []string{
		"(A,B",
		"(A,B));",
		"(A,:0.5);",
		"(A:x,B:0.2);",
	} {
		if _, err := ParseNewick(v); err == nil {
			t.Fatalf("expected an error for %q", v)
		}
	}
}
