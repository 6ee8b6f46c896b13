package mdwrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrStructureChanged reports that formatting changed the block structure of
// a document.
var ErrStructureChanged = errors.New("block structure changed")

// Structure counts the block nodes that formatting must never add or remove.
type Structure struct {
	Headings     int
	FencedBlocks int
	CodeBlocks   int
	Blockquotes  int
	Lists        int
}

// StructureError describes a structural difference found by Verify.
type StructureError struct {
	Before Structure
	After  Structure
}

func (e *StructureError) Error() string {
	var diffs []string
	add := func(name string, before, after int) {
		if before != after {
			diffs = append(diffs, fmt.Sprintf("%s %d -> %d", name, before, after))
		}
	}
	add("headings", e.Before.Headings, e.After.Headings)
	add("fenced code blocks", e.Before.FencedBlocks, e.After.FencedBlocks)
	add("code blocks", e.Before.CodeBlocks, e.After.CodeBlocks)
	add("blockquotes", e.Before.Blockquotes, e.After.Blockquotes)
	add("lists", e.Before.Lists, e.After.Lists)
	return fmt.Sprintf("%s: %s", ErrStructureChanged, strings.Join(diffs, ", "))
}

func (e *StructureError) Unwrap() error {
	return ErrStructureChanged
}

var verifyParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Inspect parses src as GitHub flavored Markdown and counts its blocks.
func Inspect(src []byte) (Structure, error) {
	var s Structure
	doc := verifyParser.Parse(text.NewReader(src))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			s.Headings++
		case ast.KindFencedCodeBlock:
			s.FencedBlocks++
		case ast.KindCodeBlock:
			s.CodeBlocks++
		case ast.KindBlockquote:
			s.Blockquotes++
		case ast.KindList:
			s.Lists++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Structure{}, fmt.Errorf("inspect: %w", err)
	}
	return s, nil
}

// Verify checks that after has the same headings, code blocks, blockquotes and
// lists as before. Paragraph and table shapes are free to change.
func Verify(before, after []byte) error {
	b, err := Inspect(before)
	if err != nil {
		return err
	}
	a, err := Inspect(after)
	if err != nil {
		return err
	}
	if a != b {
		return &StructureError{Before: b, After: a}
	}
	return nil
}
