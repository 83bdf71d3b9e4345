// Package dot renders forest diagrams as Graphviz DOT graphs for debugging.
//
// Each variable node is drawn as a circle labelled with its variable. The
// hi edge (multiplied by the variable) is solid and the lo edge is dashed.
// The constants are boxes. Roots are marked with a plaintext label node.
package dot

import (
	"fmt"
	"io"

	gv "github.com/emicklei/dot"

	goanf "github.com/zzenonn/go-anf"
)

// Graph builds a DOT graph of the diagrams under roots. Shared subdiagrams
// are drawn once.
func Graph(f *goanf.Forest, roots ...goanf.NodeID) *gv.Graph {
	g := gv.NewGraph(gv.Directed)
	g.Attr("ordering", "out")

	drawn := make(map[goanf.NodeID]gv.Node)
	var draw func(id goanf.NodeID) gv.Node
	draw = func(id goanf.NodeID) gv.Node {
		if n, ok := drawn[id]; ok {
			return n
		}

		node := f.ToNode(id)
		var n gv.Node
		if node.IsTerminal() {
			label := "0"
			if id == goanf.True {
				label = "1"
			}
			n = g.Node(id.String()).Label(label).Attr("shape", "box")
			drawn[id] = n
			return n
		}

		n = g.Node(id.String()).Label(fmt.Sprintf("x%d", node.Var))
		drawn[id] = n
		g.Edge(n, draw(node.Hi)).Attr("style", "solid")
		g.Edge(n, draw(node.Lo)).Attr("style", "dashed")
		return n
	}

	for i, root := range roots {
		label := g.Node(fmt.Sprintf("root%d", i)).Label(fmt.Sprintf("p%d", i)).Attr("shape", "plaintext")
		g.Edge(label, draw(root))
	}
	return g
}

// Write renders the diagrams under roots to w in DOT syntax.
func Write(w io.Writer, f *goanf.Forest, roots ...goanf.NodeID) error {
	_, err := io.WriteString(w, Graph(f, roots...).String())
	return err
}
