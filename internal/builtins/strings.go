package builtins

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/rush/internal/value"
)

var (
	splitSignatures  = [][]string{{tStr, tStr}, {tRegex, tStr}}
	joinSignatures   = [][]string{{tStr, tArray}}
	formatSignatures = [][]string{{tStr, tAny}}
	subSignatures    = [][]string{{tStr, tStr, tStr}, {tRegex, tStr, tStr}, {tStr, tFunc, tStr}, {tRegex, tFunc, tStr}}
)

func stringBuiltins() []*value.Function {
	return []*value.Function{
		builtin("split", splitSignatures, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return Split(args[0], args[1])
		}),
		builtin("join", joinSignatures, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return Join(args[0], args[1])
		}),
		builtin("format", formatSignatures, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return Format(args[0], args[1])
		}),
		builtin("sub", subSignatures, substitute(-1)),
		builtin("sub1", subSignatures, substitute(1)),
		builtin("before", splitSignatures, func(_ value.Caller, args []value.Value) (value.Value, error) {
			s := str(args[1])
			start, _, ok := find(args[0], s)
			if !ok {
				return value.String(""), nil
			}
			return value.String(s[:start]), nil
		}),
		builtin("after", splitSignatures, func(_ value.Caller, args []value.Value) (value.Value, error) {
			s := str(args[1])
			_, end, ok := find(args[0], s)
			if !ok {
				return value.String(""), nil
			}
			return value.String(s[end:]), nil
		}),
		builtin("startswith", [][]string{{tStr, tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.Boolean(strings.HasPrefix(str(args[1]), str(args[0]))), nil
		}),
		builtin("endswith", [][]string{{tStr, tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.Boolean(strings.HasSuffix(str(args[1]), str(args[0]))), nil
		}),
		builtin("trim", [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.String(strings.TrimSpace(str(args[0]))), nil
		}),
		builtin("ltrim", [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.String(strings.TrimLeftFunc(str(args[0]), unicode.IsSpace)), nil
		}),
		builtin("rtrim", [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.String(strings.TrimRightFunc(str(args[0]), unicode.IsSpace)), nil
		}),
		builtin("chr", [][]string{{tInt}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			code := int64(args[0].(value.Integer))
			if code < 0 || code > unicode.MaxRune || !utf8.ValidRune(rune(code)) {
				return nil, value.Errorf(value.ReasonNumericRange, "invalid character code: %d", code)
			}
			return value.String(rune(code)), nil
		}),
		builtin("ord", [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			s := str(args[0])
			if utf8.RuneCountInString(s) != 1 {
				return nil, value.Errorf(value.ReasonGeneric, "ord() expects a single character, got %s", args[0].Inspect())
			}
			r, _ := utf8.DecodeRuneInString(s)
			return value.Integer(r), nil
		}),
		builtin("rot13", [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return value.String(strings.Map(rot13, str(args[0]))), nil
		}),
	}
}

// Split cuts subject around each occurrence of delim, a string or a
// regex.
func Split(delim, subject value.Value) (value.Value, error) {
	if err := value.ArgCheck("split", splitSignatures, delim, subject); err != nil {
		return nil, err
	}
	s := str(subject)
	if re, ok := delim.(*value.Regex); ok {
		return stringArray(re.Regexp().Split(s, -1)), nil
	}
	return stringArray(strings.Split(s, str(delim))), nil
}

// Join concatenates the elements of array with sep between them.
// Elements must be scalars.
func Join(sep, array value.Value) (value.Value, error) {
	if err := value.ArgCheck("join", joinSignatures, sep, array); err != nil {
		return nil, err
	}
	elems := array.(value.Array)
	parts := make([]string, len(elems))
	for i, el := range elems {
		switch el.(type) {
		case value.Array, *value.Object, *value.Function:
			return nil, value.Invalid("join", sep, array)
		}
		parts[i] = value.Display(el)
	}
	return value.String(strings.Join(parts, str(sep))), nil
}

// Format replaces each {} in format with the next argument. An array
// argument supplies one argument per element; anything else is a single
// argument. {{ and }} stand for literal braces.
func Format(format, arg value.Value) (value.Value, error) {
	if err := value.ArgCheck("format", formatSignatures, format, arg); err != nil {
		return nil, err
	}
	args := value.Array{arg}
	if a, ok := arg.(value.Array); ok {
		args = a
	}

	s := str(format)
	var sb strings.Builder
	next := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			sb.WriteByte('{')
			i++
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			sb.WriteByte('}')
			i++
		case c == '{' && i+1 < len(s) && s[i+1] == '}':
			if next >= len(args) {
				return nil, value.Errorf(value.ReasonFormat, "not enough arguments for format string %s: got %d", format.Inspect(), len(args))
			}
			sb.WriteString(value.Display(args[next]))
			next++
			i++
		case c == '{' || c == '}':
			return nil, value.Errorf(value.ReasonFormat, "unmatched '%c' in format string %s", c, format.Inspect())
		default:
			sb.WriteByte(c)
		}
	}
	if next < len(args) {
		return nil, value.Errorf(value.ReasonFormat, "too many arguments for format string %s: %d placeholder(s), %d argument(s)", format.Inspect(), next, len(args))
	}
	return value.String(sb.String()), nil
}

// substitute replaces up to n matches (all when n < 0) of a string or
// regex. The replacement is a string, which may refer to regex groups
// as $1, or a function applied to each matched text.
func substitute(n int) value.BuiltinFunc {
	return func(c value.Caller, args []value.Value) (value.Value, error) {
		s := str(args[2])
		var re *regexp.Regexp
		literal := false
		switch from := args[0].(type) {
		case *value.Regex:
			re = from.Regexp()
		case value.String:
			re = regexp.MustCompile(regexp.QuoteMeta(string(from)))
			literal = true
		}

		var sb strings.Builder
		last := 0
		for _, m := range re.FindAllStringSubmatchIndex(s, n) {
			sb.WriteString(s[last:m[0]])
			switch to := args[1].(type) {
			case value.String:
				if literal {
					sb.WriteString(string(to))
				} else {
					sb.Write(re.ExpandString(nil, string(to), s, m))
				}
			case *value.Function:
				r, err := c.Call(to, value.String(s[m[0]:m[1]]))
				if err != nil {
					return nil, err
				}
				sb.WriteString(value.Display(r))
			}
			last = m[1]
		}
		sb.WriteString(s[last:])
		return value.String(sb.String()), nil
	}
}

// find locates the first occurrence of a string or regex in s.
func find(needle value.Value, s string) (start, end int, ok bool) {
	if re, isRegex := needle.(*value.Regex); isRegex {
		loc := re.Regexp().FindStringIndex(s)
		if loc == nil {
			return 0, 0, false
		}
		return loc[0], loc[1], true
	}
	n := str(needle)
	i := strings.Index(s, n)
	if i < 0 {
		return 0, 0, false
	}
	return i, i + len(n), true
}

func rot13(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a' + (r-'a'+13)%26
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+13)%26
	}
	return r
}
