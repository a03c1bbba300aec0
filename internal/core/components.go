package core

import (
	"fmt"
	"strings"

	"github.com/bethropolis/rawedit/internal/dom"
	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/logger"
	"github.com/bethropolis/rawedit/internal/richnode"
	"github.com/bethropolis/rawedit/internal/types"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/net/html"
)

const (
	componentAttr        = "data-component"
	componentContentAttr = "data-component-content"
	componentIDPrefix    = "editor-"
)

// Component is an embedded, non-editable widget in the document. Its payload
// is a JSON object stored on the element.
type Component struct {
	ID      string
	Name    string
	Content string
	Node    *html.Node
	Region  types.Region
}

// Get reads a value from the payload using a gjson path.
func (c Component) Get(path string) gjson.Result {
	return gjson.Get(c.Content, path)
}

// InsertComponent places a component at pos and returns its id. An empty id
// gets a random one; an empty payload becomes an empty object.
func (e *Editor) InsertComponent(pos int, name, payload, id string) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}
	if strings.TrimSpace(payload) == "" {
		payload = "{}"
	}
	if !gjson.Valid(payload) {
		return "", fmt.Errorf("component %s: payload is not valid JSON", name)
	}

	el := dom.NewElement("div",
		"contenteditable", "false",
		"id", componentIDPrefix+id,
		componentAttr, name,
		componentContentAttr, payload,
	)
	el.AppendChild(&html.Node{Type: html.CommentNode, Data: " component " + id + " "})
	if _, err := e.ReplaceTextWithHTML(pos, pos, dom.OuterHTML(el), event.ExtraInfo{Source: "component"}); err != nil {
		return "", err
	}
	logger.DebugTagf("component", "inserted %s component %s at %d", name, id, pos)
	return id, nil
}

// Components lists the components of the document in order.
func (e *Editor) Components() []Component {
	var out []Component
	for _, rn := range e.tree.Root.FlatMap(isComponent) {
		out = append(out, componentOf(rn))
	}
	return out
}

// Component looks a component up by id.
func (e *Editor) Component(id string) (Component, bool) {
	for _, rn := range e.tree.Root.FlatMap(isComponent) {
		if c := componentOf(rn); c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

// UpdateComponent sets path in the payload of component id to value.
func (e *Editor) UpdateComponent(id, path string, value interface{}) error {
	c, ok := e.Component(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	content, err := sjson.Set(c.Content, path, value)
	if err != nil {
		return fmt.Errorf("update component %s: %w", id, err)
	}
	e.CreateSnapshot()
	e.ApplyExternalMutation("update component", func() {
		dom.SetAttr(c.Node, componentContentAttr, content)
	}, event.ExtraInfo{Source: "component"})
	return nil
}

// RemoveComponent takes component id out of the document.
func (e *Editor) RemoveComponent(id string) error {
	c, ok := e.Component(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	_, err := e.RemoveNode(c.Node, event.ExtraInfo{Source: "component"})
	return err
}

func isComponent(rn *richnode.Node) bool {
	return rn.Type == richnode.TypeTag && dom.HasAttr(rn.DOMNode, componentAttr)
}

func componentOf(rn *richnode.Node) Component {
	name, _ := dom.Attr(rn.DOMNode, componentAttr)
	content, _ := dom.Attr(rn.DOMNode, componentContentAttr)
	id, _ := dom.Attr(rn.DOMNode, "id")
	return Component{
		ID:      strings.TrimPrefix(id, componentIDPrefix),
		Name:    name,
		Content: content,
		Node:    rn.DOMNode,
		Region:  rn.Region(),
	}
}
