package builtins

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/funvibe/rush/internal/value"
)

func unicodeBuiltins() []*value.Function {
	return []*value.Function{
		caser("upper", cases.Upper(language.Und)),
		caser("lower", cases.Lower(language.Und)),
		caser("title", cases.Title(language.Und)),
		normalizer("nfc", norm.NFC),
		normalizer("nfd", norm.NFD),
		normalizer("nfkc", norm.NFKC),
		normalizer("nfkd", norm.NFKD),
	}
}

// caser applies Unicode case mapping.
func caser(name string, c cases.Caser) *value.Function {
	return builtin(name, [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
		return value.String(c.String(str(args[0]))), nil
	})
}

func normalizer(name string, form norm.Form) *value.Function {
	return builtin(name, [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
		return value.String(form.String(str(args[0]))), nil
	})
}
