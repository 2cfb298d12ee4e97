package input

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
)

// Operators in recognition order. Longer forms come before their prefixes
// so that "==" wins over "=" and ":=@" wins over ":=". The trailing "@" of
// ":=@" and "=@" requests file indirection.
var operators = []string{"==", ":=@", ":=", "=@", "=", ":", "@"}

type ItemErrorKind int

const (
	// ParseFailure: no operator found, or a value transform failed.
	ParseFailure ItemErrorKind = iota
	// UnknownVariant: an operator was recognized but maps to no item type.
	UnknownVariant
	// MissingFileInput: file indirection with an empty path.
	MissingFileInput
	// FileReadFailure: the indirected file could not be opened, read, or
	// decoded as UTF-8.
	FileReadFailure
)

// ItemError reports a request item token that could not be parsed.
type ItemError struct {
	Kind     ItemErrorKind
	Fragment string
	cause    error
}

func (e *ItemError) Error() string {
	switch e.Kind {
	case UnknownVariant:
		return fmt.Sprintf("unknown request item variant %q", e.Fragment)
	case MissingFileInput:
		return fmt.Sprintf("missing file input in request item %q", e.Fragment)
	case FileReadFailure:
		return fmt.Sprintf("could not read file %q", e.Fragment)
	default:
		return fmt.Sprintf("could not parse request item %q", e.Fragment)
	}
}

func (e *ItemError) Unwrap() error { return e.cause }

// HeaderValidationError reports a header item whose name or value does not
// satisfy HTTP header syntax.
type HeaderValidationError struct {
	Name  string
	Value string
}

func (e *HeaderValidationError) Error() string {
	return fmt.Sprintf("invalid header field %q: %q", e.Name, e.Value)
}

// ParseItem parses one key<operator>value token into an Item.
//
// The token splits at the first unescaped operator occurrence; a backslash
// immediately before an operator makes that character part of the key
// instead. For the file-indirection operators (":=@", "=@") the value text
// names a file whose contents replace the value before the per-operator
// transform runs.
func ParseItem(s string) (Item, error) {
	key, op, value, ok := splitItem(s)
	if !ok {
		return nil, &ItemError{Kind: ParseFailure, Fragment: s}
	}

	if len(op) > 1 && strings.HasSuffix(op, "@") {
		if value == "" {
			return nil, &ItemError{Kind: MissingFileInput, Fragment: s}
		}
		data, err := os.ReadFile(value)
		if err != nil {
			return nil, &ItemError{Kind: FileReadFailure, Fragment: value, cause: err}
		}
		if !utf8.Valid(data) {
			return nil, &ItemError{Kind: FileReadFailure, Fragment: value}
		}
		value = string(data)
		op = strings.TrimSuffix(op, "@")
	}

	switch op {
	case "=":
		return DataItem{Name: key, Value: value}, nil
	case ":=":
		v, err := parseJSONLiteral(value)
		if err != nil {
			return nil, &ItemError{Kind: ParseFailure, Fragment: s, cause: err}
		}
		return JSONItem{Name: key, Value: v}, nil
	case ":":
		if !httpguts.ValidHeaderFieldName(key) || !httpguts.ValidHeaderFieldValue(value) {
			return nil, &HeaderValidationError{Name: key, Value: value}
		}
		return HeaderItem{Name: key, Value: value}, nil
	case "==":
		return ParamItem{Name: key, Value: value}, nil
	case "@":
		return FileItem{Name: key, Path: value}, nil
	default:
		return nil, &ItemError{Kind: UnknownVariant, Fragment: op}
	}
}

// splitItem finds the earliest operator occurrence not preceded by a
// backslash and splits the token there. The key is never empty, so the
// scan starts at index 1.
func splitItem(s string) (key, op, value string, ok bool) {
	for i := 1; i < len(s); i++ {
		if s[i-1] == '\\' {
			continue
		}
		for _, candidate := range operators {
			if strings.HasPrefix(s[i:], candidate) {
				return unescapeKey(s[:i]), candidate, s[i+len(candidate):], true
			}
		}
	}
	return "", "", "", false
}

// unescapeKey drops backslashes that escape an operator character.
func unescapeKey(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isOperatorChar(s[i+1]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOperatorChar(c byte) bool {
	return c == '=' || c == ':' || c == '@'
}

// parseJSONLiteral decodes exactly one JSON value. Numbers are kept as
// json.Number so they serialize back in their literal form.
func parseJSONLiteral(s string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected trailing data in JSON value %q", s)
	}
	return v, nil
}
