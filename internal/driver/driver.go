// Package driver feeds input records through parsed expressions and
// writes the results.
//
// A Driver owns one evaluation context for its whole run. Each record is
// bound to _ before the first expression is evaluated; every later
// expression sees the previous result as _.
package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/funvibe/rush/internal/ast"
	"github.com/funvibe/rush/internal/builtins"
	"github.com/funvibe/rush/internal/config"
	"github.com/funvibe/rush/internal/evaluator"
	"github.com/funvibe/rush/internal/parser"
	"github.com/funvibe/rush/internal/value"
)

// Mode selects how input is cut into records.
type Mode string

const (
	ModeString Mode = "string" // whole input as one string
	ModeLines  Mode = "lines"  // all lines as one array
	ModeLine   Mode = "line"   // one record per line
	ModeWords  Mode = "words"  // one record per word, whitespace kept
	ModeChars  Mode = "chars"  // one record per character
	ModeBytes  Mode = "bytes"  // one Integer record per byte
	ModeFiles  Mode = "files"  // each line names a file whose content is the record
)

// Format selects how results are serialized. Words and bytes modes
// always write raw text.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrorPolicy decides what happens when a record fails.
type ErrorPolicy string

const (
	Abort ErrorPolicy = "abort"
	Skip  ErrorPolicy = "skip"
)

// Names bound next to _ for text records.
const (
	TextVarName  = "_s"
	IntVarName   = "_i"
	FloatVarName = "_f"
	BoolVarName  = "_b"
)

// maxLineSize bounds a single line of input.
const maxLineSize = 64 << 20

// Options configures a Driver. Zero fields take the defaults from
// package config.
type Options struct {
	Mode    Mode
	Output  Format
	OnError ErrorPolicy

	// Vars are bound in the context before the first record.
	Vars map[string]value.Value

	// Library resolves builtin names; nil means builtins.Default().
	Library evaluator.Library

	Logger *slog.Logger
}

// Driver evaluates a chain of expressions against a stream of records.
type Driver struct {
	opts  Options
	exprs []ast.Expression
	eval  *evaluator.Evaluator
	scope *evaluator.Context
	log   *slog.Logger
}

// New parses exprs and prepares a context for them.
func New(exprs []string, opts Options) (*Driver, error) {
	if len(exprs) == 0 {
		return nil, errors.New("no expression given")
	}
	opts.Mode = Mode(config.Or(string(opts.Mode), config.DefaultMode))
	opts.Output = Format(config.Or(string(opts.Output), config.DefaultOutput))
	opts.OnError = ErrorPolicy(config.Or(string(opts.OnError), config.DefaultOnError))
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Library == nil {
		opts.Library = builtins.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	d := &Driver{
		opts:  opts,
		eval:  evaluator.New(),
		scope: evaluator.NewContext(opts.Library),
		log:   opts.Logger,
	}
	for _, src := range exprs {
		node, err := parser.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", src, err)
		}
		d.exprs = append(d.exprs, node)
	}
	for name, v := range opts.Vars {
		d.scope.Set(name, v)
	}
	return d, nil
}

func (o Options) validate() error {
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"mode", string(o.Mode), config.Modes},
		{"output", string(o.Output), config.Outputs},
		{"error policy", string(o.OnError), config.ErrorPolicies},
	}
	for _, c := range checks {
		if !containsString(c.allowed, c.value) {
			return fmt.Errorf("invalid %s %q (want one of %s)", c.field, c.value, strings.Join(c.allowed, ", "))
		}
	}
	return nil
}

// Scope returns the context shared by every record.
func (d *Driver) Scope() *evaluator.Context {
	return d.scope
}

// Process evaluates the expression chain with input bound to _ and
// returns the final result. A result that is a unary function is
// applied to the current value of _.
func (d *Driver) Process(input value.Value) (value.Value, error) {
	d.scope.Set(config.CurrentVarName, input)
	for _, expr := range d.exprs {
		result, err := d.eval.Eval(expr, d.scope)
		if err != nil {
			return nil, err
		}
		if f, ok := result.(*value.Function); ok {
			if result, err = d.applyResult(f); err != nil {
				return nil, err
			}
		}
		d.scope.Set(config.CurrentVarName, result)
	}
	result, _ := d.scope.Get(config.CurrentVarName)
	return result, nil
}

func (d *Driver) applyResult(f *value.Function) (value.Value, error) {
	if f.Arity() != 1 {
		return nil, value.Errorf(value.ReasonArity,
			"result must be a value or a function of one argument, got %s taking %d", f.Inspect(), f.Arity())
	}
	input, _ := d.scope.Get(config.CurrentVarName)
	return d.eval.Invoke1(f, input)
}

// bindText binds the raw text of a record and its numeric and boolean
// readings. A reading that does not apply is nil.
func (d *Driver) bindText(text string) {
	d.scope.Set(TextVarName, value.String(text))

	trimmed := strings.TrimSpace(text)
	var i, f, b value.Value = value.Nil, value.Nil, value.Nil
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		i = value.Integer(n)
	}
	if x, err := strconv.ParseFloat(trimmed, 64); err == nil {
		f = value.Float(x)
	}
	switch trimmed {
	case config.TrueLiteral:
		b = value.Boolean(true)
	case config.FalseLiteral:
		b = value.Boolean(false)
	}
	d.scope.Set(IntVarName, i)
	d.scope.Set(FloatVarName, f)
	d.scope.Set(BoolVarName, b)
}

// Run reads records from in until EOF or until ctx is done, writing
// each result to out.
func (d *Driver) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	em := newEmitter(d.opts.Output, w)

	err := d.run(ctx, in, w, em)
	if cerr := em.Close(); err == nil {
		err = cerr
	}
	if ferr := w.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("writing output: %w", ferr)
	}
	return err
}

func (d *Driver) run(ctx context.Context, in io.Reader, w *bufio.Writer, em emitter) error {
	d.log.Debug("driver started",
		slog.String("mode", string(d.opts.Mode)),
		slog.Int("expressions", len(d.exprs)))

	switch d.opts.Mode {
	case ModeString:
		return d.runString(in, em)
	case ModeLines:
		return d.runLines(ctx, in, em)
	case ModeLine:
		return d.runLine(ctx, in, em)
	case ModeWords:
		return d.runWords(ctx, in, w)
	case ModeChars:
		return d.runChars(ctx, in, em)
	case ModeBytes:
		return d.runBytes(ctx, in, w)
	case ModeFiles:
		return d.runFiles(ctx, in, em)
	}
	return fmt.Errorf("unsupported mode %q", d.opts.Mode)
}

// record processes one input and hands the result to emit, applying the
// error policy to a failure of either step.
func (d *Driver) record(n int, input value.Value, emit func(value.Value) error) error {
	result, err := d.Process(input)
	if err == nil {
		err = emit(result)
	}
	if err == nil {
		return nil
	}
	return d.fail(n, err)
}

// fail applies the error policy to the failure of record n.
func (d *Driver) fail(n int, err error) error {
	if d.opts.OnError == Skip {
		d.log.Warn("skipping record",
			slog.Int("record", n),
			slog.String("error", err.Error()))
		return nil
	}
	return fmt.Errorf("record %d: %w", n, err)
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
