package excerpt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
)

// BlockSeparator joins context blocks.
const BlockSeparator = "\n\n---\n\n"

// Block is one numbered document excerpt of the context.
type Block struct {
	Index   int // 1-based position in the search result
	Name    string
	Snippet string
}

// String renders the block as "[index] name\nsnippet".
func (b Block) String() string {
	return fmt.Sprintf("[%d] %s\n%s", b.Index, b.Name, b.Snippet)
}

// Context is the assembled model context.
type Context struct {
	Blocks []Block
	Chars  int // snippet characters consumed, separators and headers excluded
}

// String joins the blocks with BlockSeparator.
func (c Context) String() string {
	parts := make([]string, len(c.Blocks))
	for i, b := range c.Blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, BlockSeparator)
}

// Empty reports whether no document contributed a block.
func (c Context) Empty() bool { return len(c.Blocks) == 0 }

// Assemble walks docs in order and keeps blocks while the snippet total stays
// within budget characters. Documents without a snippet are skipped for free.
// The walk stops at the first snippet that would overflow the budget, even if
// a later, shorter one would fit.
func Assemble(docs []document.Document, budget int) Context {
	var ctx Context
	for i := range docs {
		idx := i + 1
		snippet := Snippet(&docs[i])
		if snippet == "" {
			continue
		}
		n := utf8.RuneCountInString(snippet)
		if ctx.Chars+n > budget {
			break
		}
		ctx.Chars += n
		ctx.Blocks = append(ctx.Blocks, Block{
			Index:   idx,
			Name:    docs[i].DisplayName(idx),
			Snippet: snippet,
		})
	}
	return ctx
}

// Build returns the rendered context for docs under budget, or "" when nothing fits.
func Build(docs []document.Document, budget int) string {
	return Assemble(docs, budget).String()
}
