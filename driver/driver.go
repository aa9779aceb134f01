package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tanagra-tools/lrforge/internal/util"
	"github.com/tanagra-tools/lrforge/parseerr"
	"github.com/tanagra-tools/lrforge/symbol"
	"github.com/tanagra-tools/lrforge/table"
	"github.com/tanagra-tools/lrforge/token"
)

// TraceFunc receives free-text progress narration during a run. Pass nil
// for silence.
type TraceFunc func(string)

// Run drives table t against stream, calling sink for every Shift, Reduce,
// and Accept event in order. Each call gets its own trace-session ID
// attached to every emitted Event, so a caller juggling multiple runs (a
// REPL replaying several sentences) can correlate events back to the run
// that produced them. ctx is checked between tokens so a caller can cancel
// a runaway or adversarial parse.
//
// Run implements the textbook shift-reduce skeleton:
//
//	push start_state
//	a := next_token()
//	loop:
//	  s := top(stack)
//	  case ACTION[s, a]:
//	    Shift(t):  push t; a := next_token()
//	    Reduce(p): pop |body(p)| states; t := top(stack);
//	               push GOTO[t, head(p)]; emit "reduced by p"
//	    Accept:    stop (success)
//	    Error:     fail with UnexpectedToken(a)
func Run(ctx context.Context, t *table.Table, stream token.Stream, sink EventSink, trace TraceFunc) error {
	if sink == nil {
		sink = func(Event) {}
	}
	if trace == nil {
		trace = func(string) {}
	}

	traceID := uuid.New()
	emit := func(e Event) {
		e.TraceID = traceID
		sink(e)
	}

	var states util.Stack[int]
	states.Push(t.Initial)
	trace(fmt.Sprintf("run %s: push initial state %d", traceID, t.Initial))

	tok, err := stream.Next()
	if err != nil {
		return fmt.Errorf("driver: reading first token: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s := states.Peek()
		a := terminalOf(t.Grammar, tok)
		act := t.Action(s, a)

		switch act.Type {
		case table.Shift:
			states.Push(act.State)
			trace(fmt.Sprintf("run %s: shift %s -> state %d", traceID, tok, act.State))
			emit(Event{Type: EventShift, State: act.State})

			tok, err = stream.Next()
			if err != nil {
				return fmt.Errorf("driver: reading next token: %w", err)
			}

		case table.Reduce:
			prod := t.Grammar.Production(act.Production)
			for range prod.Body {
				states.Pop()
			}
			top := states.Peek()
			next, ok := t.Goto(top, prod.Head)
			if !ok {
				return &parseerr.GotoUndefined{State: top, Nonterminal: prod.Head.Name()}
			}
			states.Push(next)
			trace(fmt.Sprintf("run %s: reduce %s -> state %d", traceID, prod.String(), next))
			emit(Event{Type: EventReduce, Production: act.Production})

		case table.Accept:
			trace(fmt.Sprintf("run %s: accept", traceID))
			emit(Event{Type: EventAccept})
			return nil

		default:
			return parseerr.NewSyntaxErrorFromToken(tok, expectedTerminals(t, s))
		}
	}
}

func terminalOf(g interface {
	Terminals() []symbol.Symbol
}, tok token.Token) symbol.Symbol {
	if tok.Class.IsEof() {
		return symbol.Eof
	}
	for _, t := range g.Terminals() {
		if t.Index() == tok.Class.Index {
			return t
		}
	}
	return symbol.Eof
}

func expectedTerminals(t *table.Table, s int) []string {
	var out []string
	for _, term := range t.Grammar.Terminals() {
		if t.Action(s, term).Type != table.Error {
			out = append(out, term.Name())
		}
	}
	if t.Action(s, symbol.Eof).Type != table.Error {
		out = append(out, symbol.Eof.String())
	}
	return out
}
