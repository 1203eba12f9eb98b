// Package report renders the tree-style account reports the bot replies with.
package report

import (
	"html"
	"strings"
)

const (
	branch   = " ├ "
	terminal = " └ "
)

// Field is a single "name: value" line of a block.
type Field struct {
	Name  string
	Value string
}

// Block is a titled group of fields rendered as a small tree. Only fields
// that are actually present should be added; the last one is drawn as the
// terminal branch.
type Block struct {
	Header string
	Fields []Field
}

// Add appends a field.
func (b *Block) Add(name, value string) {
	b.Fields = append(b.Fields, Field{Name: name, Value: value})
}

// AddOptional appends a field only when value is non-empty.
func (b *Block) AddOptional(name, value string) {
	if value != "" {
		b.Add(name, value)
	}
}

// Render returns the block as Telegram HTML. Field values are escaped.
func (b Block) Render() string {
	var sb strings.Builder
	sb.WriteString(b.Header)
	sb.WriteByte('\n')
	for i, f := range b.Fields {
		if i == len(b.Fields)-1 {
			sb.WriteString(terminal)
		} else {
			sb.WriteString(branch)
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(html.EscapeString(f.Value))
		sb.WriteByte('\n')
	}
	return sb.String()
}
