package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	infoColor = color.New(color.FgCyan).SprintfFunc()
	warnColor = color.New(color.FgYellow).SprintfFunc()
	errColor  = color.New(color.FgRed).SprintfFunc()
)

// Logger writes leveled, color-coded lines. Info goes to Out,
// warnings and errors to Err.
type Logger struct {
	Out io.Writer
	Err io.Writer
}

func NewLogger() *Logger {
	return &Logger{Out: os.Stdout, Err: os.Stderr}
}

func (l *Logger) Infof(format string, args ...any) {
	fmt.Fprintln(l.Out, infoColor(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	fmt.Fprintln(l.Err, warnColor(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintln(l.Err, errColor(format, args...))
}

// Printf writes plain, uncolored output.
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.Out, format, args...)
}

// TerminalPrompter asks yes/no questions by reading single lines from In.
// Any answer not starting with y or Y, including an empty line, is "no".
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func NewPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stdout}
}

func (p *TerminalPrompter) Confirm(prompt string) bool {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	fmt.Fprint(p.Out, prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	line = strings.TrimRight(line, "\r\n")
	return strings.HasPrefix(line, "y") || strings.HasPrefix(line, "Y")
}
