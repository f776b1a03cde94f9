package surface

// Event types dispatched by the front ends.
const (
	EventSubmit   = "submit"
	EventInput    = "input"
	EventFocusOut = "focusout"
	EventClick    = "click"
	EventChange   = "change"
)

// Event is delivered to listeners on the target and then on each ancestor.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node

	stopped bool
}

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an event. Listeners run synchronously, one at a time.
type Listener func(*Event)

func (n *Node) AddEventListener(typ string, fn Listener) {
	if n.listeners == nil {
		n.listeners = map[string][]Listener{}
	}
	n.listeners[typ] = append(n.listeners[typ], fn)
}

// Dispatch fires an event of typ with n as the target. The propagation
// path is fixed before any listener runs, so listeners may detach the target.
func (n *Node) Dispatch(typ string) *Event {
	e := &Event{Type: typ, Target: n}
	var path []*Node
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}
	for _, cur := range path {
		if e.stopped {
			break
		}
		e.CurrentTarget = cur
		for _, fn := range cur.listeners[typ] {
			fn(e)
		}
	}
	e.CurrentTarget = nil
	return e
}
