package interaction

// FocusRing tracks the focused node within a document.
type FocusRing struct {
	root    *Node
	focused *Node
}

func NewFocusRing(root *Node) *FocusRing {
	return &FocusRing{root: root}
}

// Focused returns the focused node, or nil when nothing in the document has
// focus. A node that has since been removed from the document loses focus.
func (r *FocusRing) Focused() *Node {
	if r.focused != nil && !r.root.Contains(r.focused) {
		r.focused = nil
	}
	return r.focused
}

// Focus moves focus to n. It fails for nodes that are not focusable or not
// in the document.
func (r *FocusRing) Focus(n *Node) bool {
	if n == nil || !n.Focusable() || !r.root.Contains(n) {
		return false
	}
	r.focused = n
	return true
}

func (r *FocusRing) Blur() {
	r.focused = nil
}

// Next moves focus forward through the whole document, wrapping at the end.
func (r *FocusRing) Next() *Node {
	return r.cycle(r.root, 1)
}

// Prev moves focus backward through the whole document, wrapping at the start.
func (r *FocusRing) Prev() *Node {
	return r.cycle(r.root, -1)
}

// cycle moves focus by delta among container's focusables. Focus outside the
// container enters at the first (forward) or last (backward) element.
func (r *FocusRing) cycle(container *Node, delta int) *Node {
	list := container.Focusables()
	if len(list) == 0 {
		return nil
	}

	idx := -1
	current := r.Focused()
	for i, n := range list {
		if n == current {
			idx = i
			break
		}
	}

	var next int
	switch {
	case idx < 0 && delta > 0:
		next = 0
	case idx < 0:
		next = len(list) - 1
	default:
		next = ((idx+delta)%len(list) + len(list)) % len(list)
	}
	r.focused = list[next]
	return r.focused
}

// FocusTrap confines Tab and Shift+Tab to a container while attached.
type FocusTrap struct {
	ring      *FocusRing
	container *Node
}

func NewFocusTrap(ring *FocusRing) *FocusTrap {
	return &FocusTrap{ring: ring}
}

// Attach confines focus to container, replacing any previous container.
func (t *FocusTrap) Attach(container *Node) {
	t.container = container
}

// Detach releases the trap. Detaching twice is a no-op.
func (t *FocusTrap) Detach() {
	t.container = nil
}

func (t *FocusTrap) Attached() bool {
	return t.container != nil
}

// Forward handles Tab. It reports false when the trap is detached or the
// container has nothing to focus.
func (t *FocusTrap) Forward() bool {
	return t.move(1)
}

// Backward handles Shift+Tab.
func (t *FocusTrap) Backward() bool {
	return t.move(-1)
}

func (t *FocusTrap) move(delta int) bool {
	if t.container == nil {
		return false
	}
	return t.ring.cycle(t.container, delta) != nil
}
