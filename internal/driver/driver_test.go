package driver

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/rush/internal/parser"
	"github.com/funvibe/rush/internal/value"
)

func run(t *testing.T, exprs []string, opts Options, input string) (string, error) {
	t.Helper()
	d, err := New(exprs, opts)
	if err != nil {
		t.Fatalf("New(%q): %v", exprs, err)
	}
	var out bytes.Buffer
	err = d.Run(context.Background(), strings.NewReader(input), &out)
	return out.String(), err
}

func TestModes(t *testing.T) {
	tests := []struct {
		name  string
		exprs []string
		opts  Options
		input string
		want  string
	}{
		{"line", []string{"_ * 2"}, Options{}, "1\n2\n3\n", "2\n4\n6\n"},
		{"line without final newline", []string{"_ + 1"}, Options{Mode: ModeLine}, "1\n2", "2\n3\n"},
		{"line keeps text", []string{"_ + \"!\""}, Options{}, "hi\n", "hi!\n"},
		{"function result", []string{"upper"}, Options{}, "abc\nde\n", "ABC\nDE\n"},
		{"curried result", []string{"(* 3)"}, Options{}, "2\n", "6\n"},
		{"chained expressions", []string{"_ + 1", "_ * 10"}, Options{}, "1\n2\n", "20\n30\n"},
		{"string", []string{"len(_)"}, Options{Mode: ModeString}, "a\nb\n", "4\n"},
		{"lines", []string{"sort(_)"}, Options{Mode: ModeLines}, "3\n1\n2\n", "1\n2\n3\n"},
		{"lines parses records", []string{"sum(_)"}, Options{Mode: ModeLines}, "3\n1.5\n", "4.5\n"},
		{"words", []string{"rev(_)"}, Options{Mode: ModeWords}, "hello big  world\n", "olleh gib  dlrow\n"},
		{"words parses records", []string{"_ * 2"}, Options{Mode: ModeWords}, "1 2\t3", "2 4\t6"},
		{"chars", []string{"upper(_)"}, Options{Mode: ModeChars}, "ab\ncd\n", "A\nB\n\n\nC\nD\n"},
		{"bytes", []string{"_ + 1"}, Options{Mode: ModeBytes}, "abc", "bcd"},
		{"json", []string{`{"a": _}`}, Options{Output: FormatJSON}, "1\nx\n", "{\"a\":1}\n{\"a\":\"x\"}\n"},
		{"json arrays", []string{"[_, _s]"}, Options{Output: FormatJSON}, "2\n", "[2,\"2\"]\n"},
		{"yaml", []string{"_"}, Options{Output: FormatYAML}, "1\ntrue\n", "1\n---\ntrue\n"},
		{"yaml keeps key order", []string{"json(_)"}, Options{Mode: ModeString, Output: FormatYAML},
			`{"b": [1, 2], "a": null}`, "b:\n  - 1\n  - 2\na: null\n"},
		{"text object", []string{`{"k": _}`}, Options{}, "v\n", "{\"k\":\"v\"}\n"},
		{"text conversions", []string{"[_i, _f, _b]"}, Options{Output: FormatJSON}, " 42 \ntrue\n", "[42,42,null]\n[null,null,true]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.exprs, tt.opts, tt.input)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextPersistsAcrossRecords(t *testing.T) {
	opts := Options{Vars: map[string]value.Value{"total": value.Integer(0)}}
	got, err := run(t, []string{"total = total + _", "total"}, opts, "1\n2\n3\n")
	if err != nil {
		t.Fatal(err)
	}
	if want := "1\n3\n6\n"; got != want {
		t.Errorf("Run() = %q, want %q", got, want)
	}
}

func TestFilesMode(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for name, content := range map[string]string{"a.txt": "one", "b.txt": "three"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	input := strings.Join(paths, "\n") + "\n\n"
	got, err := run(t, []string{"len(_)"}, Options{Mode: ModeFiles}, input)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Fields(got); len(lines) != 2 {
		t.Fatalf("Run() = %q, want two results", got)
	}
	if !(strings.Contains(got, "3\n") && strings.Contains(got, "5\n")) {
		t.Errorf("Run() = %q, want the lengths 3 and 5", got)
	}

	_, err = run(t, []string{"_"}, Options{Mode: ModeFiles}, filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want not exist", err)
	}
}

func TestAbortOnError(t *testing.T) {
	got, err := run(t, []string{"_ + 1"}, Options{}, "1\nx\n3\n")
	if err == nil {
		t.Fatal("Run() succeeded, want error")
	}
	if !errors.Is(err, value.ErrInvalidArguments) {
		t.Errorf("error = %v, want invalid arguments", err)
	}
	if !strings.HasPrefix(err.Error(), "record 2: ") {
		t.Errorf("error = %q, want it to name record 2", err)
	}
	if got != "2\n" {
		t.Errorf("output before the failure = %q, want %q", got, "2\n")
	}
}

func TestSkipOnError(t *testing.T) {
	var logs bytes.Buffer
	opts := Options{
		OnError: Skip,
		Logger:  slog.New(slog.NewTextHandler(&logs, nil)),
	}
	got, err := run(t, []string{"_ + 1"}, opts, "1\nx\n3\n")
	if err != nil {
		t.Fatal(err)
	}
	if want := "2\n4\n"; got != want {
		t.Errorf("Run() = %q, want %q", got, want)
	}
	for _, want := range []string{"level=WARN", "skipping record", "record=2"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log %q does not contain %q", logs.String(), want)
		}
	}
}

func TestResultErrors(t *testing.T) {
	tests := []struct {
		name  string
		exprs []string
		opts  Options
		input string
		want  string
	}{
		{"binary function result", []string{"split"}, Options{}, "a\n", "function of one argument"},
		{"byte out of range", []string{"_ + 200"}, Options{Mode: ModeBytes}, "a", "byte-sized integer"},
		{"byte result not an integer", []string{"str(_)"}, Options{Mode: ModeBytes}, "a", "byte-sized integer"},
		{"word result not a scalar", []string{"[_]"}, Options{Mode: ModeWords}, "a b", "scalar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.exprs, tt.opts, tt.input)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Run() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Error("New(nil) succeeded")
	}
	if _, err := New([]string{"_"}, Options{Mode: "paragraphs"}); err == nil {
		t.Error("New accepted an unknown mode")
	}
	if _, err := New([]string{"_"}, Options{Output: "xml"}); err == nil {
		t.Error("New accepted an unknown output format")
	}

	_, err := New([]string{"_", "1 +"}, Options{})
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("New error = %v, want a syntax error", err)
	}
	if !strings.Contains(err.Error(), `"1 +"`) {
		t.Errorf("error %q does not quote the failing expression", err)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	d, err := New([]string{"_"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err = d.Run(ctx, strings.NewReader("1\n2\n"), &out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("Run() wrote %q after cancellation", out.String())
	}
}

func TestEncodeYAML(t *testing.T) {
	obj := value.NewObject()
	obj.Set("z", value.Float(1))
	obj.Set("a", value.Array{value.String("1"), value.Nil})
	n := EncodeYAML(obj)
	if len(n.Content) != 4 || n.Content[0].Value != "z" || n.Content[2].Value != "a" {
		t.Fatalf("EncodeYAML keys out of order: %+v", n.Content)
	}
	if got := n.Content[1].Value; got != "1.0" {
		t.Errorf("float encoded as %q, want 1.0", got)
	}
	if got := n.Content[3].Content[0].Tag; got != "!!str" {
		t.Errorf("string element tagged %q, want !!str", got)
	}
}
