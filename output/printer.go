package output

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/ht-cli/ht/exchange"
	"github.com/ht-cli/ht/input"
)

// Printer renders request previews and responses. The start line and
// headers always render with the "http" grammar; body grammar selection
// depends on the encoding mode (request) or content type (response).
type Printer struct {
	writer      io.Writer
	highlighter *Highlighter
	enableColor bool
}

func NewPrinter(writer io.Writer, highlighter *Highlighter, enableColor bool) *Printer {
	return &Printer{
		writer:      writer,
		highlighter: highlighter,
		enableColor: enableColor,
	}
}

// FormatRequestHead renders the request line followed by headers sorted
// lexicographically by name. Duplicate header names stay on separate lines.
func FormatRequestHead(r *http.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", r.Method, r.URL.Path, r.Proto)
	for _, line := range sortedHeaderLines(r.Header) {
		b.WriteString(line)
	}
	return b.String()
}

// FormatResponseHead renders the status line (with the canonical reason
// phrase) followed by sorted headers.
func FormatResponseHead(resp *http.Response) string {
	var b strings.Builder
	statusLine := fmt.Sprintf("%s %d %s", resp.Proto, resp.StatusCode, http.StatusText(resp.StatusCode))
	b.WriteString(strings.TrimRight(statusLine, " "))
	b.WriteByte('\n')
	for _, line := range sortedHeaderLines(resp.Header) {
		b.WriteString(line)
	}
	return b.String()
}

func sortedHeaderLines(header http.Header) []string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		for _, value := range header[name] {
			lines = append(lines, fmt.Sprintf("%s: %s\n", name, value))
		}
	}
	return lines
}

// PrintRequest writes the preview of an assembled request: start line,
// sorted headers, then the body when present. JSON-mode bodies highlight
// with the "json" grammar; form-encoded bodies stay plain.
func (p *Printer) PrintRequest(assembled *exchange.Assembled, mode input.Mode) error {
	if err := p.print(FormatRequestHead(assembled.Request), "http"); err != nil {
		return err
	}
	if err := p.newline(); err != nil {
		return err
	}
	if len(assembled.Body) == 0 {
		return nil
	}

	body := string(assembled.Body)
	if err := p.print(body, requestGrammar(mode)); err != nil {
		return err
	}
	if !strings.HasSuffix(body, "\n") {
		if err := p.newline(); err != nil {
			return err
		}
	}
	return p.newline()
}

// PrintResponseHead writes the response status line and sorted headers.
func (p *Printer) PrintResponseHead(resp *http.Response) error {
	if err := p.print(FormatResponseHead(resp), "http"); err != nil {
		return err
	}
	return p.newline()
}

// PrintResponseBody writes the response body, highlighted according to
// the declared content type. A trailing newline is ensured when the body
// is non-empty.
func (p *Printer) PrintResponseBody(body []byte, contentType string) error {
	if len(body) == 0 {
		return nil
	}
	text := string(body)
	if err := p.print(text, responseGrammar(contentType)); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		return p.newline()
	}
	return nil
}

// requestGrammar picks the highlighting grammar for a request body from
// its encoding mode. Form-encoded bodies render plain.
func requestGrammar(mode input.Mode) string {
	if mode == input.FormMode {
		return ""
	}
	return "json"
}

// responseGrammar picks the highlighting grammar for a response body from
// its declared content type. Unrecognized types render plain.
func responseGrammar(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "text/html":
		return "html"
	case "application/json":
		return "json"
	default:
		return ""
	}
}

func (p *Printer) print(text, grammar string) error {
	if !p.enableColor {
		_, err := io.WriteString(p.writer, text)
		return err
	}
	return p.highlighter.Highlight(p.writer, text, grammar)
}

func (p *Printer) newline() error {
	_, err := io.WriteString(p.writer, "\n")
	return err
}
