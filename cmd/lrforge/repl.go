package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/tanagra-tools/lrforge/driver"
	"github.com/tanagra-tools/lrforge/table"
	"github.com/tanagra-tools/lrforge/token"
)

// wordStream is a minimal token.Stream over whitespace-separated terminal
// names, for REPL use only; it is not a general lexer.
type wordStream struct {
	words   []string
	pos     int
	t       *table.Table
	sentEOF bool
}

func (w *wordStream) Next() (token.Token, error) {
	if w.sentEOF {
		return token.Token{}, fmt.Errorf("no tokens after EOF")
	}
	if w.pos >= len(w.words) {
		w.sentEOF = true
		return token.Token{Class: token.Class{Name: "EOF"}}, nil
	}
	name := w.words[w.pos]
	w.pos++
	for _, term := range w.t.Grammar.Terminals() {
		if term.Name() == name {
			return token.Token{Class: token.Class{Index: term.Index(), Name: name}, Text: name}, nil
		}
	}
	return token.Token{}, fmt.Errorf("unrecognized terminal %q", name)
}

// runREPL reads whitespace-separated sentences of terminal names and runs
// each through the driver, printing the Shift/Reduce/Accept event trace.
func runREPL(ctx context.Context, t *table.Table, trace func(string)) {
	rl, err := readline.New("lrforge> ")
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return
		}
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		stream := &wordStream{words: strings.Fields(line), t: t}
		err = driver.Run(ctx, t, stream, func(e driver.Event) {
			pterm.Info.Printfln("%s %v", e.Type, e)
		}, trace)
		if err != nil {
			pterm.Error.Println(err)
		} else {
			pterm.Success.Println("accepted")
		}
	}
}
