package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/funvibe/rush/internal/value"
)

func (d *Driver) runString(in io.Reader, em emitter) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	text := string(data)
	d.bindText(text)
	return d.record(1, value.String(text), em.Emit)
}

func (d *Driver) runLines(ctx context.Context, in io.Reader, em emitter) error {
	lines := value.Array{}
	err := scanLines(ctx, in, func(_ int, line string) error {
		lines = append(lines, value.Parse(line))
		return nil
	})
	if err != nil {
		return err
	}
	return d.record(1, lines, em.Emit)
}

func (d *Driver) runLine(ctx context.Context, in io.Reader, em emitter) error {
	return scanLines(ctx, in, func(n int, line string) error {
		d.bindText(line)
		return d.record(n, value.Parse(line), em.Emit)
	})
}

func (d *Driver) runFiles(ctx context.Context, in io.Reader, em emitter) error {
	return scanLines(ctx, in, func(n int, line string) error {
		path := strings.TrimSpace(line)
		if path == "" {
			return nil
		}
		content, err := readFile(path)
		if err != nil {
			return d.fail(n, err)
		}
		d.bindText(content)
		return d.record(n, value.String(content), em.Emit)
	})
}

// runWords replaces every whitespace-separated word with its result.
// Whitespace is copied through unchanged.
func (d *Driver) runWords(ctx context.Context, in io.Reader, w *bufio.Writer) error {
	r := bufio.NewReader(in)
	var word strings.Builder
	n := 0
	flush := func() error {
		if word.Len() == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		text := word.String()
		word.Reset()
		d.bindText(text)
		return d.record(n, value.Parse(text), func(v value.Value) error {
			s, err := scalarText(v)
			if err != nil {
				return err
			}
			_, err = w.WriteString(s)
			return err
		})
	}

	for {
		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return flush()
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if !unicode.IsSpace(ch) {
			word.WriteRune(ch)
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		if _, err := w.WriteRune(ch); err != nil {
			return err
		}
	}
}

// runChars processes every character as a one-character string. Line
// breaks between lines are characters too; the final one is not.
func (d *Driver) runChars(ctx context.Context, in io.Reader, em emitter) error {
	r := bufio.NewReader(in)
	n := 0
	process := func(ch rune) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		text := string(ch)
		d.bindText(text)
		return d.record(n, value.String(text), em.Emit)
	}

	pendingNewline := false
	for {
		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if pendingNewline {
			if err := process('\n'); err != nil {
				return err
			}
			pendingNewline = false
		}
		if ch == '\n' {
			pendingNewline = true
			continue
		}
		if err := process(ch); err != nil {
			return err
		}
	}
}

// runBytes maps every input byte to an output byte. Results must be
// Integers in the range 0-255.
func (d *Driver) runBytes(ctx context.Context, in io.Reader, w *bufio.Writer) error {
	r := bufio.NewReader(in)
	for n := 1; ; n++ {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err = d.record(n, value.Integer(b), func(v value.Value) error {
			i, ok := v.(value.Integer)
			if !ok || i < 0 || i > 255 {
				return fmt.Errorf("expected a byte-sized integer, got %s", v.Inspect())
			}
			return w.WriteByte(byte(i))
		})
		if err != nil {
			return err
		}
	}
}

// scanLines calls fn for every line of in, without its line terminator.
// Lines are numbered from 1.
func scanLines(ctx context.Context, in io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(n, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// scalarText renders a result that has to stand in for a word.
func scalarText(v value.Value) (string, error) {
	switch v.(type) {
	case value.Array, *value.Object, *value.Function:
		return "", fmt.Errorf("expected a scalar result, got %s", v.TypeName())
	}
	return value.Display(v), nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
