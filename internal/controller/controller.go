// Package controller binds surface events to store mutations and drives
// the render and persist cycle after each one.
package controller

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/kv"
	"github.com/Makepad-fr/tada/internal/surface"
	"github.com/Makepad-fr/tada/internal/view"
)

// Coordinator is the only piece that knows both the store and the view.
type Coordinator struct {
	store   *store.Store
	view    *view.Renderer
	storage kv.Storage
	key     string
	log     *log.Logger

	// rows maps each rendered row to the id of the item it shows.
	rows map[*surface.Node]int
	// pending holds in-progress edit text per item id until focus leaves the row.
	pending map[int]string
	// err is the most recent save failure.
	err error
}

// New wires listeners and draws the initial list. Nothing is persisted until
// the first mutation. A nil logger discards.
func New(st *store.Store, r *view.Renderer, storage kv.Storage, key string, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Coordinator{
		store:   st,
		view:    r,
		storage: storage,
		key:     key,
		log:     logger,
		rows:    map[*surface.Node]int{},
		pending: map[int]string{},
	}

	r.Form().AddEventListener(surface.EventSubmit, c.onSubmit)
	list := r.List()
	list.AddEventListener(surface.EventInput, c.onInput)
	list.AddEventListener(surface.EventFocusOut, c.onFocusOut)
	list.AddEventListener(surface.EventClick, c.onClick)
	list.AddEventListener(surface.EventChange, c.onChange)

	c.render()
	return c
}

// Items returns the current list.
func (c *Coordinator) Items() []model.Item { return c.store.Items() }

// Err returns the most recent save failure, or nil if every save succeeded.
func (c *Coordinator) Err() error { return c.err }

// RowByID returns the rendered row showing the item with id.
func (c *Coordinator) RowByID(id int) (*surface.Node, bool) {
	for row, rid := range c.rows {
		if rid == id {
			return row, true
		}
	}
	return nil, false
}

func (c *Coordinator) onSubmit(e *surface.Event) {
	text := c.view.EntryText()
	if strings.TrimSpace(text) == "" {
		return
	}
	c.store.Add(text)
	c.log.Debug("item added", "id", c.store.NextID()-1)
	c.view.ResetEntry()
	c.changed()
}

func (c *Coordinator) onInput(e *surface.Event) {
	if !e.Target.HasAttr(view.AttrInput) {
		return
	}
	id, ok := c.rowID(e.Target)
	if !ok {
		return
	}
	c.pending[id] = e.Target.TextContent()
}

func (c *Coordinator) onFocusOut(e *surface.Event) {
	if !e.Target.HasAttr(view.AttrInput) {
		return
	}
	id, ok := c.rowID(e.Target)
	if !ok {
		return
	}
	text := c.pending[id]
	delete(c.pending, id)
	if text == "" {
		// Nothing to commit; put the stored text back on screen.
		c.render()
		return
	}
	c.store.Edit(id, text)
	c.log.Debug("item edited", "id", id)
	c.changed()
}

func (c *Coordinator) onClick(e *surface.Event) {
	if !e.Target.HasAttr(view.AttrDelete) {
		return
	}
	id, ok := c.rowID(e.Target)
	if !ok {
		return
	}
	c.store.Delete(id)
	delete(c.pending, id)
	c.log.Debug("item deleted", "id", id)
	c.changed()
}

func (c *Coordinator) onChange(e *surface.Event) {
	if t, _ := e.Target.Attr("type"); t != "checkbox" {
		return
	}
	id, ok := c.rowID(e.Target)
	if !ok {
		return
	}
	c.store.ToggleComplete(id)
	c.log.Debug("item toggled", "id", id)
	c.changed()
}

// rowID resolves the item id for a node inside a rendered row.
func (c *Coordinator) rowID(n *surface.Node) (int, bool) {
	row := n.Closest(func(x *surface.Node) bool {
		_, ok := c.rows[x]
		return ok
	})
	if row == nil {
		return 0, false
	}
	return c.rows[row], true
}

// changed redraws, then overwrites the persisted snapshot.
func (c *Coordinator) changed() {
	items := c.render()
	if err := jsonstore.Save(c.storage, c.key, items); err != nil {
		c.log.Error("save failed", "key", c.key, "err", err)
		c.err = err
	}
}

func (c *Coordinator) render() []model.Item {
	items := c.store.Items()
	c.view.Render(items)

	clear(c.rows)
	for i, row := range c.view.Rows() {
		c.rows[row] = items[i].ID
	}
	return items
}
