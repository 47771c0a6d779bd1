// Package script parses and runs line based range set operations:
//
//	# comment
//	add [1, 5)
//	remove 10 11
//	print
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/render"
)

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionPrint  Action = "print"
)

type Op struct {
	Line   int
	Action Action
	Range  rangeset.Interval
}

func (r Op) String() string {
	if r.Action == ActionPrint {
		return string(r.Action)
	}
	return fmt.Sprintf("%s %s", r.Action, render.Interval(r.Range))
}

// ParseLine parses a single line. ok is false for blank and comment lines.
func ParseLine(line string) (op Op, ok bool, err error) {
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" {
		return Op{}, false, nil
	}
	verb, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		verb, rest = line[:i], line[i+1:]
	}
	switch strings.ToLower(verb) {
	case "add":
		op.Action = ActionAdd
	case "remove", "del", "delete":
		op.Action = ActionRemove
	case "print":
		if strings.TrimSpace(rest) != "" {
			return Op{}, false, fmt.Errorf("print takes no arguments, got %q", rest)
		}
		return Op{Action: ActionPrint}, true, nil
	default:
		return Op{}, false, fmt.Errorf("unknown operation %q", verb)
	}
	op.Range, err = rangeset.ParseInterval(rest)
	if err != nil {
		return Op{}, false, err
	}
	return op, true, nil
}

// Parse reads all operations from r. Every faulty line is reported, the
// returned error joins them.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	var errs error
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		op, ok, err := ParseLine(scanner.Text())
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("line %d: %w", n, err))
			continue
		}
		if !ok {
			continue
		}
		op.Line = n
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("reading script: %w", err))
	}
	return ops, errs
}

type Options struct {
	// EchoEach writes the rendered set after every add and remove, not only
	// on print.
	EchoEach bool
}

// Run applies ops to s in order, writing the rendered set to w on every
// print. It stops between operations when ctx is done.
func Run(ctx context.Context, s *rangeset.Set, ops []Op, w io.Writer, opts Options) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("line %d: %w", op.Line, err)
		}
		switch op.Action {
		case ActionAdd:
			s.AddRange(op.Range)
		case ActionRemove:
			s.RemoveRange(op.Range)
		case ActionPrint:
		default:
			return fmt.Errorf("line %d: unknown operation %q", op.Line, op.Action)
		}
		if op.Action == ActionPrint || opts.EchoEach {
			if err := render.Write(w, s.Ranges()); err != nil {
				return fmt.Errorf("line %d: %w", op.Line, err)
			}
		}
	}
	return nil
}
