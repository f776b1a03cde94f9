// Package view draws the task list onto a surface.
package view

import (
	"strconv"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/surface"
)

// Class and attribute names rows are built from.
const (
	ClassForm         = "form"
	ClassFormInput    = "formInput"
	ClassSubmitButton = "submitButton"
	ClassList         = "list"
	ClassItem         = "item"
	ClassCheckbox     = "checkbox"
	ClassText         = "input"
	ClassDeleteButton = "deleteButton"

	AttrInput  = "data-input"
	AttrDelete = "data-delete"
)

// Renderer owns the entry form and the list container under a mount point.
type Renderer struct {
	form   *surface.Node
	input  *surface.Node
	submit *surface.Node
	list   *surface.Node
}

// New builds the static chrome and attaches it to mount.
func New(mount *surface.Node) *Renderer {
	r := &Renderer{
		form:   surface.CreateElement("form", ClassForm),
		input:  surface.CreateElement("input", ClassFormInput),
		submit: surface.CreateElement("button", ClassSubmitButton),
		list:   surface.CreateElement("ul", ClassList),
	}
	r.input.SetAttr("type", "text")
	r.input.SetAttr("placeholder", "Task name")
	r.input.SetAttr("name", "todo")
	r.submit.SetText("Add")

	r.form.Append(r.input, r.submit)
	mount.Append(r.form, r.list)
	return r
}

func (r *Renderer) Form() *surface.Node  { return r.form }
func (r *Renderer) Input() *surface.Node { return r.input }
func (r *Renderer) List() *surface.Node  { return r.list }

// EntryText is the current content of the entry field.
func (r *Renderer) EntryText() string { return r.input.Value() }

func (r *Renderer) ResetEntry() { r.input.SetValue("") }

// Render replaces every row with one row per item, in order.
func (r *Renderer) Render(items []model.Item) {
	for r.list.FirstChild() != nil {
		r.list.RemoveChild(r.list.FirstChild())
	}

	for _, it := range items {
		li := surface.CreateElement("li", ClassItem)
		li.SetAttr("id", strconv.Itoa(it.ID))

		checkbox := surface.CreateElement("input", ClassCheckbox)
		checkbox.SetAttr("type", "checkbox")
		checkbox.SetChecked(it.Complete)

		text := surface.CreateElement("div", ClassText)
		text.SetAttr("contenteditable", "true")
		text.SetAttr(AttrInput, "")
		if it.Complete {
			strike := surface.CreateElement("strike")
			strike.SetText(it.Text)
			text.Append(strike)
		} else {
			text.SetText(it.Text)
		}

		del := surface.CreateElement("button", ClassDeleteButton)
		del.SetAttr(AttrDelete, "")
		del.SetText("Delete")

		li.Append(checkbox, text, del)
		r.list.Append(li)
	}
}

// Rows returns the rendered rows in list order.
func (r *Renderer) Rows() []*surface.Node { return r.list.Children() }

func Checkbox(row *surface.Node) *surface.Node {
	return row.Find(surface.ByClass(ClassCheckbox))
}

func TextRegion(row *surface.Node) *surface.Node {
	return row.Find(func(n *surface.Node) bool { return n.HasAttr(AttrInput) })
}

func DeleteButton(row *surface.Node) *surface.Node {
	return row.Find(func(n *surface.Node) bool { return n.HasAttr(AttrDelete) })
}
