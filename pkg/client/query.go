package client

import (
	"net/url"
	"strings"
)

// Param is one query parameter.
type Param struct {
	Name  string
	Value string
}

// Query is an ordered list of query parameters. Unlike url.Values it is
// sent in the order it was built.
type Query []Param

// With returns a copy of q with name=value appended.
func (q Query) With(name, value string) Query {
	out := make(Query, len(q), len(q)+1)
	copy(out, q)
	return append(out, Param{Name: name, Value: value})
}

// Encode returns the URL-encoded query string in insertion order.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
