package interaction

// Position is a cell coordinate on screen.
type Position struct {
	X, Y int
}

// ContextAction names an entry of the context menu.
type ContextAction string

const (
	ActionEmail    ContextAction = "email"
	ActionURL      ContextAction = "url"
	ActionLinkedIn ContextAction = "linkedin"
)

// MenuItem is one row of the context menu.
type MenuItem struct {
	Label  string
	Action ContextAction
}

// MenuItems is the fixed, ordered content of the context menu.
var MenuItems = []MenuItem{
	{Label: "Copy Email", Action: ActionEmail},
	{Label: "Copy Website URL", Action: ActionURL},
	{Label: "Copy LinkedIn", Action: ActionLinkedIn},
}

// MenuRegionID identifies the menu's region node.
const MenuRegionID = "context-menu"

// Menu is the singleton context menu: either closed or open at a position.
// Its region node holds one button per item.
type Menu struct {
	open   bool
	pos    Position
	region *Node
	items  map[*Node]ContextAction
}

func NewMenu() *Menu {
	m := &Menu{
		region: NewNode(MenuRegionID, RoleRegion),
		items:  make(map[*Node]ContextAction, len(MenuItems)),
	}
	for _, item := range MenuItems {
		btn := NewNode(MenuRegionID+"-"+string(item.Action), RoleButton).WithLabel(item.Label)
		m.region.Append(btn)
		m.items[btn] = item.Action
	}
	return m
}

// Open shows the menu at pos. Opening an open menu moves it.
func (m *Menu) Open(pos Position) {
	m.open = true
	m.pos = pos
}

// Close hides the menu and reports whether it was open.
func (m *Menu) Close() bool {
	was := m.open
	m.open = false
	return was
}

func (m *Menu) IsOpen() bool { return m.open }

func (m *Menu) Position() Position { return m.pos }

// Region is the node that contains every part of the rendered menu.
func (m *Menu) Region() *Node { return m.region }

// ItemNode returns the button for an action.
func (m *Menu) ItemNode(action ContextAction) *Node {
	for n, a := range m.items {
		if a == action {
			return n
		}
	}
	return nil
}

// ActionFor maps a menu button back to its action.
func (m *Menu) ActionFor(n *Node) (ContextAction, bool) {
	a, ok := m.items[n]
	return a, ok
}
