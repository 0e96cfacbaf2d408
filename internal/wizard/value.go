package wizard

import "slices"

type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindList
	KindLinks
	KindFlag
)

// SocialLink is one entry of the repeatable social links field.
type SocialLink struct {
	Platform string `json:"platform" yaml:"platform" toml:"platform"`
	URL      string `json:"url"      yaml:"url"      toml:"url"`
}

// Value is a single form field value. The zero Value is empty and every
// accessor on it returns the zero value of its type.
type Value struct {
	kind  Kind
	text  string
	list  []string
	links []SocialLink
	flag  bool
}

func Text(s string) Value { return Value{kind: KindText, text: s} }

func List(items ...string) Value { return Value{kind: KindList, list: slices.Clone(items)} }

func Links(links ...SocialLink) Value { return Value{kind: KindLinks, links: slices.Clone(links)} }

func Flag(b bool) Value { return Value{kind: KindFlag, flag: b} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Text() string { return v.text }

func (v Value) List() []string { return slices.Clone(v.list) }

func (v Value) Links() []SocialLink { return slices.Clone(v.links) }

func (v Value) Flag() bool { return v.flag }

func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindText:
		return v.text == ""
	case KindList:
		return len(v.list) == 0
	case KindLinks:
		return len(v.links) == 0
	case KindFlag:
		return !v.flag
	default:
		return true
	}
}

func (v Value) clone() Value {
	v.list = slices.Clone(v.list)
	v.links = slices.Clone(v.links)
	return v
}
