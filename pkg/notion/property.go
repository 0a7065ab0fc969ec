package notion

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind is the type tag of a Notion property wrapper.
type Kind string

const (
	KindTitle    Kind = "title"
	KindRichText Kind = "rich_text"
	KindSelect   Kind = "select"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone_number"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
)

// RichText is one text fragment of a title or rich_text property.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Property is the tagged wrapper Notion uses for every field of a page.
// At most one payload is set; which one is given by Type.
type Property struct {
	ID          string        `json:"id,omitempty"`
	Type        Kind          `json:"type,omitempty"`
	Title       []RichText    `json:"title,omitempty"`
	RichText    []RichText    `json:"rich_text,omitempty"`
	Select      *SelectOption `json:"select,omitempty"`
	Email       *string       `json:"email,omitempty"`
	PhoneNumber *string       `json:"phone_number,omitempty"`
	Number      *float64      `json:"number,omitempty"`
	Checkbox    *bool         `json:"checkbox,omitempty"`
}

// MarshalJSON writes only the payload named by Type so that a nil payload is
// sent as an explicit null (Notion clears the field in that case).
func (p Property) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch p.Type {
	case KindTitle:
		payload = writeFragments(p.Title)
	case KindRichText:
		payload = writeFragments(p.RichText)
	case KindSelect:
		payload = p.Select
	case KindEmail:
		payload = p.Email
	case KindPhone:
		payload = p.PhoneNumber
	case KindNumber:
		payload = p.Number
	case KindCheckbox:
		payload = p.Checkbox
	default:
		type plain Property
		return json.Marshal(plain(p))
	}
	return json.Marshal(map[string]interface{}{string(p.Type): payload})
}

func writeFragments(fragments []RichText) []RichText {
	if fragments == nil {
		return []RichText{}
	}
	return fragments
}

// Properties is the property bag of a page, keyed by property name.
type Properties map[string]Property

// Page is a Notion database row.
type Page struct {
	ID             string     `json:"id"`
	Object         string     `json:"object,omitempty"`
	CreatedTime    time.Time  `json:"created_time"`
	LastEditedTime time.Time  `json:"last_edited_time"`
	Properties     Properties `json:"properties"`
}

// Value is the decoded scalar of a property. Only the field matching Kind is
// meaningful; the others stay at their zero value.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
}

// String renders the value as text regardless of kind.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindCheckbox:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

// Decode extracts the scalar of p as the given kind. A nil property, or one
// whose payload for that kind is missing, decodes to the zero value
// ("", 0 or false). Decode never fails.
func Decode(p *Property, kind Kind) Value {
	v := Value{Kind: kind}
	if p == nil {
		return v
	}
	switch kind {
	case KindTitle:
		v.Text = joinPlainText(p.Title)
	case KindRichText:
		v.Text = joinPlainText(p.RichText)
	case KindSelect:
		if p.Select != nil {
			v.Text = p.Select.Name
		}
	case KindEmail:
		if p.Email != nil {
			v.Text = *p.Email
		}
	case KindPhone:
		if p.PhoneNumber != nil {
			v.Text = *p.PhoneNumber
		}
	case KindNumber:
		if p.Number != nil {
			v.Number = *p.Number
		}
	case KindCheckbox:
		if p.Checkbox != nil {
			v.Bool = *p.Checkbox
		}
	}
	return v
}

func joinPlainText(fragments []RichText) string {
	var b strings.Builder
	for _, f := range fragments {
		switch {
		case f.PlainText != "":
			b.WriteString(f.PlainText)
		case f.Text != nil:
			b.WriteString(f.Text.Content)
		}
	}
	return b.String()
}

// Decode looks up name and decodes it as kind.
func (ps Properties) Decode(name string, kind Kind) Value {
	p, ok := ps[name]
	if !ok {
		return Decode(nil, kind)
	}
	return Decode(&p, kind)
}

// Text decodes a textual property (title, rich_text, select, email, phone_number).
func (ps Properties) Text(name string, kind Kind) string {
	return ps.Decode(name, kind).Text
}

func (ps Properties) Number(name string) float64 {
	return ps.Decode(name, KindNumber).Number
}

// Int decodes a number property and truncates it toward zero.
func (ps Properties) Int(name string) int {
	return int(ps.Number(name))
}

func (ps Properties) Checkbox(name string) bool {
	return ps.Decode(name, KindCheckbox).Bool
}

// --- write helpers ---

func Title(s string) Property {
	return Property{Type: KindTitle, Title: []RichText{{Text: &TextContent{Content: s}}}}
}

func Text(s string) Property {
	return Property{Type: KindRichText, RichText: []RichText{{Text: &TextContent{Content: s}}}}
}

// Select builds a select property; an empty name clears the field.
func Select(name string) Property {
	if name == "" {
		return Property{Type: KindSelect}
	}
	return Property{Type: KindSelect, Select: &SelectOption{Name: name}}
}

func Email(s string) Property {
	return Property{Type: KindEmail, Email: &s}
}

func Phone(s string) Property {
	return Property{Type: KindPhone, PhoneNumber: &s}
}

// Number builds a number property; nil clears the field.
func Number(n *float64) Property {
	return Property{Type: KindNumber, Number: n}
}

func Checkbox(b bool) Property {
	return Property{Type: KindCheckbox, Checkbox: &b}
}
