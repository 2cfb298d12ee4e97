package input

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	reMethod = regexp.MustCompile(`^[a-zA-Z]+$`)
	reScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+-.]*://`)
)

// Options carries the raw body-encoding flags. They are resolved into a
// Mode before any item is parsed.
type Options struct {
	Form bool
	JSON bool
}

// UsageError is reported when the command line itself is malformed; the
// caller prints usage in response.
type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ParseArgs parses the positional arguments: METHOD, URL, then zero or
// more request item tokens. The items keep their command-line order.
func ParseArgs(args []string, mode Mode) (*Request, error) {
	if len(args) < 1 {
		return nil, newUsageError("METHOD is required")
	}
	if len(args) < 2 {
		return nil, newUsageError("URL is required")
	}

	method, err := parseMethod(args[0])
	if err != nil {
		return nil, err
	}

	u, err := parseURL(args[1])
	if err != nil {
		return nil, err
	}

	req := Request{
		Method: method,
		URL:    u,
		Mode:   mode,
	}
	for _, arg := range args[2:] {
		item, err := ParseItem(arg)
		if err != nil {
			return nil, err
		}
		req.Items = append(req.Items, item)
	}
	return &req, nil
}

func parseMethod(s string) (Method, error) {
	if !reMethod.MatchString(s) {
		return Method(""), errors.Errorf("METHOD must consist of alphabets: %s", s)
	}
	return Method(strings.ToUpper(s)), nil
}

func parseURL(s string) (*url.URL, error) {
	defaultScheme := "http"
	defaultHost := "localhost"

	// ex) :8080/hello or /hello
	if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "/") {
		s = defaultHost + s
	}

	// ex) example.com/hello
	if !reScheme.MatchString(s) {
		s = defaultScheme + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, newUsageError("Invalid URL: " + s)
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}
