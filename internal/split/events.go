package split

// ScopeKind is where a pointer or resize notification is observed.
type ScopeKind int

const (
	// ScopeDivider is a single divider element. Only presses use it.
	ScopeDivider ScopeKind = iota
	// ScopeDocument is the whole surface, so drags continue when the
	// pointer leaves the divider.
	ScopeDocument
	// ScopeViewport is the window; it carries resize notifications.
	ScopeViewport
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeDivider:
		return "divider"
	case ScopeDocument:
		return "document"
	case ScopeViewport:
		return "viewport"
	}
	return "unknown"
}

// Scope identifies a subscription target. Element is only set for
// ScopeDivider.
type Scope struct {
	Kind    ScopeKind
	Element Element
}

// DividerScope scopes to one divider element.
func DividerScope(el Element) Scope { return Scope{Kind: ScopeDivider, Element: el} }

// Document and Viewport are the shared scopes.
var (
	Document = Scope{Kind: ScopeDocument}
	Viewport = Scope{Kind: ScopeViewport}
)

// EventKind is the kind of notification delivered to a handler.
type EventKind int

const (
	Press EventKind = iota
	Move
	Release
	Resize
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Resize:
		return "resize"
	}
	return "unknown"
}

// Event carries absolute pointer coordinates. Resize events leave them zero.
type Event struct {
	X, Y int
}

// Handler receives one notification.
type Handler func(Event)

// EventSource is the pointer/resize notification contract the host
// provides. The returned func removes the subscription.
type EventSource interface {
	On(scope Scope, kind EventKind, h Handler) (unsubscribe func())
}

type subscription struct {
	id    int
	scope Scope
	kind  EventKind
	h     Handler
}

// Dispatcher is an in-process EventSource. The host calls Emit from its
// event loop; handlers run synchronously in subscription order.
type Dispatcher struct {
	nextID int
	subs   []subscription
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// On registers h for exactly (scope, kind).
func (d *Dispatcher) On(scope Scope, kind EventKind, h Handler) func() {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, scope: scope, kind: kind, h: h})
	return func() { d.remove(id) }
}

func (d *Dispatcher) remove(id int) {
	for i, s := range d.subs {
		if s.id == id {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return
		}
	}
}

// Emit delivers ev to every handler subscribed to (scope, kind) and reports
// how many ran.
func (d *Dispatcher) Emit(scope Scope, kind EventKind, ev Event) int {
	// Snapshot so handlers may unsubscribe while being delivered to.
	subs := append([]subscription(nil), d.subs...)
	n := 0
	for _, s := range subs {
		if s.scope == scope && s.kind == kind {
			s.h(ev)
			n++
		}
	}
	return n
}

// Len is the number of live subscriptions.
func (d *Dispatcher) Len() int { return len(d.subs) }
