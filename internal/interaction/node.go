package interaction

// Role is the interactive role of a Node.
type Role string

const (
	RoleGeneric  Role = "generic"
	RoleRegion   Role = "region"
	RoleButton   Role = "button"
	RoleLink     Role = "link"
	RoleInput    Role = "input"
	RoleSelect   Role = "select"
	RoleTextarea Role = "textarea"
)

// Node is an element in the rendered document. Click targets are resolved
// to nodes, and focus moves between nodes.
type Node struct {
	ID    string
	Role  Role
	Label string
	Href  string

	tabIndex    int
	hasTabIndex bool

	parent   *Node
	children []*Node
}

// NewNode creates a detached node.
func NewNode(id string, role Role) *Node {
	return &Node{ID: id, Role: role}
}

// WithLabel sets the display label and returns n.
func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// WithHref sets the link target and returns n.
func (n *Node) WithHref(href string) *Node {
	n.Href = href
	return n
}

// WithTabIndex sets an explicit tab index and returns n.
func (n *Node) WithTabIndex(i int) *Node {
	n.tabIndex = i
	n.hasTabIndex = true
	return n
}

// Append adds children to n, detaching each from its previous parent.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		c.Remove()
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	if n == nil {
		return false
	}
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Focusable reports whether the node can take keyboard focus: buttons, form
// controls, links with a target, or anything with a non-negative tab index.
func (n *Node) Focusable() bool {
	switch n.Role {
	case RoleButton, RoleInput, RoleSelect, RoleTextarea:
		return true
	}
	if n.Href != "" {
		return true
	}
	return n.hasTabIndex && n.tabIndex >= 0
}

// Focusables lists the focusable descendants of n in document order. n
// itself is not included.
func (n *Node) Focusables() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.children {
			if c.Focusable() {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Find returns the descendant (or n itself) with the given ID.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}
