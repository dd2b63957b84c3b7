package phylo

import (
	"github.com/carbocation/pfx"
	"github.com/fogleman/gg"
)

const (
	treeWidth      = 900
	rowHeight      = 28.0
	treeMargin     = 40.0
	tipLabelSpace  = 160.0
	supportYOffset = 4.0
)

// DrawTree renders a rectangular phylogram of the parsed tree, with tip
// labels on the right and bootstrap support printed at internal nodes.
func DrawTree(root *Node, path string) error {
	leaves := root.NumLeaves()
	height := int(2*treeMargin + rowHeight*float64(leaves))

	dc := gg.NewContext(treeWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)

	maxDepth := root.MaxDepth()
	if maxDepth == 0 {
		// Cladogram fallback when the tree carries no branch lengths.
		maxDepth = float64(maxEdges(root))
	}
	xScale := (treeWidth - 2*treeMargin - tipLabelSpace) / maxDepth

	nextTipY := treeMargin + rowHeight/2
	var layout func(n *Node, depth float64) (x, y float64)
	layout = func(n *Node, depth float64) (float64, float64) {
		x := treeMargin + depth*xScale

		if n.IsLeaf() {
			y := nextTipY
			nextTipY += rowHeight
			dc.DrawString(n.Name, x+6, y+4)
			return x, y
		}

		ys := make([]float64, 0, len(n.Children))
		for _, c := range n.Children {
			edge := c.Length
			if edge == 0 && root.MaxDepth() == 0 {
				edge = 1
			}
			cx, cy := layout(c, depth+edge)

			// Horizontal branch from this node's depth to the child.
			dc.DrawLine(x, cy, cx, cy)
			dc.Stroke()

			ys = append(ys, cy)
		}

		// Vertical connector spanning the children.
		dc.DrawLine(x, ys[0], x, ys[len(ys)-1])
		dc.Stroke()

		mid := (ys[0] + ys[len(ys)-1]) / 2
		if n.Support != "" {
			dc.DrawString(n.Support, x+3, mid-supportYOffset)
		}

		return x, mid
	}

	layout(root, 0)

	return pfx.Err(dc.SavePNG(path))
}

func maxEdges(n *Node) int {
	max := 0
	for _, c := range n.Children {
		if d := 1 + maxEdges(c); d > max {
			max = d
		}
	}
	return max
}
