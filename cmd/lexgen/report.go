package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/NM711/LexerRuleGenerator/pkg/generator"
)

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	fileStyle  = color.New(color.FgCyan, color.Bold)
	lineStyle  = color.New(color.FgBlue, color.Bold)
	caretStyle = color.New(color.FgYellow, color.Bold)
)

// formatLexicalError renders a lexical error with the offending source line
// and a caret under the offending character.
func formatLexicalError(source, name string, lexErr *generator.LexicalError) string {
	var b strings.Builder

	b.WriteString(errorStyle.Sprint("error: "))
	b.WriteString(fmt.Sprintf("unexpected %q\n", lexErr.Text))
	b.WriteString(lineStyle.Sprint(" --> "))
	b.WriteString(fileStyle.Sprintf("%s:%d:%d", name, lexErr.Line, lexErr.Column))
	b.WriteString("\n")

	lines := strings.Split(source, "\n")
	if lexErr.Line < 1 || lexErr.Line > len(lines) {
		return b.String()
	}
	line := strings.TrimRight(lines[lexErr.Line-1], "\r")

	number := strconv.Itoa(lexErr.Line)
	padding := strings.Repeat(" ", len(number))

	b.WriteString(lineStyle.Sprintf("%s |\n", padding))
	b.WriteString(lineStyle.Sprintf("%s | ", number))
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lineStyle.Sprintf("%s | ", padding))
	b.WriteString(caretIndent(line, lexErr.Column))
	b.WriteString(caretStyle.Sprint("^"))
	b.WriteString("\n")

	return b.String()
}

// caretIndent returns the whitespace that lines a caret up with the rune at
// the 1-based column. Tabs are kept so the caret stays aligned.
func caretIndent(line string, column int) string {
	var indent strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			indent.WriteRune('\t')
		} else {
			indent.WriteRune(' ')
		}
		i++
	}
	return indent.String()
}
