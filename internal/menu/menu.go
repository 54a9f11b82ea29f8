/*
Package menu models the role-derived navigation tree served by the remote
session API and renders it as nested, collapsible sidebar markup.

The tree is read-only on this side: the forest reflects whatever the active
role is authorized to see, is fetched fresh for every dashboard render, and
is never mutated or cached by the gateway.
*/
package menu

// Node is one entry of the navigation forest. A node without children is a
// navigable leaf; a node with children is a collapsible group. Depth is
// unbounded.
type Node struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Children []Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children. A missing children key
// decodes to a nil slice and therefore counts as a leaf.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// LeafURLs returns the URLs of every childless node in the forest, in
// depth-first order. Rendering and this extraction agree on what a leaf is,
// so the set of rendered links always matches this sequence.
func LeafURLs(forest []Node) []string {
	urls := []string{}

	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.IsLeaf() {
				urls = append(urls, n.URL)
				continue
			}
			walk(n.Children)
		}
	}
	walk(forest)

	return urls
}
