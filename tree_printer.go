package pegmatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clarete/pegmatch/ascii"
)

type FormatToken int

const (
	FormatToken_None FormatToken = iota
	FormatToken_Label
	FormatToken_Literal
	FormatToken_Range
	FormatToken_Value
)

type FormatFunc[T any] func(input string, token T) string

type treePrinter[T any] struct {
	padStr *[]string
	output *strings.Builder
	format FormatFunc[T]
}

func newTreePrinter[T any](format FormatFunc[T]) *treePrinter[T] {
	return &treePrinter[T]{
		padStr: &[]string{},
		output: &strings.Builder{},
		format: format,
	}
}

func (tp *treePrinter[T]) indent(s string) {
	*tp.padStr = append(*tp.padStr, s)
}

func (tp *treePrinter[T]) unindent() {
	index := len(*tp.padStr) - 1
	*tp.padStr = (*tp.padStr)[:index]
}

func (tp *treePrinter[T]) padding() {
	for _, item := range *tp.padStr {
		tp.write(item)
	}
}

func (tp *treePrinter[T]) writel(s string) {
	tp.write(s)
	tp.output.WriteRune('\n')
}

func (tp *treePrinter[T]) write(s string) {
	tp.output.WriteString(s)
}

func (tp *treePrinter[T]) pwrite(s string) {
	tp.padding()
	tp.write(s)
}

// Pretty renders the tree under `n` with box drawing characters.
// Leaves show the text they matched, and every node shows its span
// of the input.
func (n *Node) Pretty(input *InputBuffer) string {
	pp := newPrettyPrinter(input, func(s string, _ FormatToken) string {
		return s
	})
	pp.visit(n)
	return pp.output.String()
}

// Highlight works like Pretty but colors the output with `theme`
func (n *Node) Highlight(input *InputBuffer, theme ascii.Theme) string {
	colors := map[FormatToken]string{
		FormatToken_Label:   theme.Label,
		FormatToken_Literal: theme.Literal,
		FormatToken_Range:   theme.Span,
		FormatToken_Value:   theme.Value,
	}
	pp := newPrettyPrinter(input, func(s string, token FormatToken) string {
		return ascii.Paint(colors[token], s)
	})
	pp.visit(n)
	return pp.output.String()
}

type prettyPrinter struct {
	input *InputBuffer
	*treePrinter[FormatToken]
}

func newPrettyPrinter(input *InputBuffer, format FormatFunc[FormatToken]) *prettyPrinter {
	return &prettyPrinter{input: input, treePrinter: newTreePrinter(format)}
}

func (pp *prettyPrinter) visit(n *Node) {
	pp.write(pp.format(n.Label, FormatToken_Label))
	if len(n.Children) == 0 {
		pp.write(" ")
		pp.write(pp.format(strconv.Quote(n.Text(pp.input)), FormatToken_Literal))
	}
	pp.write(pp.format(fmt.Sprintf(" (%s)", pp.formatPosition(n.Range)), FormatToken_Range))
	if n.Value != nil {
		pp.write(pp.format(fmt.Sprintf(" => %v", n.Value), FormatToken_Value))
	}
	pp.writel("")

	for i, child := range n.Children {
		if i == len(n.Children)-1 {
			pp.pwrite("└── ")
			pp.indent("    ")
		} else {
			pp.pwrite("├── ")
			pp.indent("│   ")
		}
		pp.visit(child)
		pp.unindent()
	}
}

// formatPosition formats a Range as "startLine:startCol..endLine:endCol"
// dropping the line when everything happens on the first one
func (pp *prettyPrinter) formatPosition(r Range) string {
	start := pp.input.Position(r.Start)
	end := pp.input.Position(r.End)
	if start.Line == end.Line && start.Line == 1 {
		if start.Column == end.Column {
			return strconv.Itoa(start.Column)
		}
		return fmt.Sprintf("%d..%d", start.Column, end.Column)
	}
	if start == end {
		return start.String()
	}
	return fmt.Sprintf("%s..%s", start, end)
}
