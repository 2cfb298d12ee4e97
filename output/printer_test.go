package output

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/ht-cli/ht/exchange"
	"github.com/ht-cli/ht/input"
)

func newTestRequest() *http.Request {
	return &http.Request{
		Method: "POST",
		URL:    &url.URL{Path: "/hello"},
		Proto:  "HTTP/1.1",
		Header: http.Header{
			"Content-Type": {"application/json"},
			"Accept":       {"*/*"},
			"X-Foo":        {"one", "two"},
		},
	}
}

func TestFormatRequestHead(t *testing.T) {
	expected := "POST /hello HTTP/1.1\n" +
		"Accept: */*\n" +
		"Content-Type: application/json\n" +
		"X-Foo: one\n" +
		"X-Foo: two\n"
	actual := FormatRequestHead(newTestRequest())
	if actual != expected {
		t.Errorf("unexpected head: expected=%q, actual=%q", expected, actual)
	}
}

func TestFormatResponseHead(t *testing.T) {
	resp := &http.Response{
		Proto:      "HTTP/1.1",
		StatusCode: 200,
		Header: http.Header{
			"Date":         {"Tue, 12 Feb 2019 16:01:54 GMT"},
			"Content-Type": {"text/plain"},
		},
	}
	expected := "HTTP/1.1 200 OK\n" +
		"Content-Type: text/plain\n" +
		"Date: Tue, 12 Feb 2019 16:01:54 GMT\n"
	actual := FormatResponseHead(resp)
	if actual != expected {
		t.Errorf("unexpected head: expected=%q, actual=%q", expected, actual)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	r := newTestRequest()
	first := FormatRequestHead(r)
	second := FormatRequestHead(r)
	if first != second {
		t.Errorf("rendering is not idempotent: first=%q, second=%q", first, second)
	}
}

func TestPrintRequest(t *testing.T) {
	testCases := []struct {
		title    string
		mode     input.Mode
		body     string
		expected string
	}{
		{
			title: "JSON body",
			mode:  input.JSONMode,
			body:  `{"a":1}`,
			expected: "POST /hello HTTP/1.1\n" +
				"Accept: */*\n" +
				"Content-Type: application/json\n" +
				"X-Foo: one\n" +
				"X-Foo: two\n" +
				"\n" +
				"{\"a\":1}\n" +
				"\n",
		},
		{
			title: "Form body renders plain",
			mode:  input.FormMode,
			body:  "a=1&b=2",
			expected: "POST /hello HTTP/1.1\n" +
				"Accept: */*\n" +
				"Content-Type: application/json\n" +
				"X-Foo: one\n" +
				"X-Foo: two\n" +
				"\n" +
				"a=1&b=2\n" +
				"\n",
		},
		{
			title: "Empty body prints head only",
			mode:  input.JSONMode,
			body:  "",
			expected: "POST /hello HTTP/1.1\n" +
				"Accept: */*\n" +
				"Content-Type: application/json\n" +
				"X-Foo: one\n" +
				"X-Foo: two\n" +
				"\n",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			var buffer strings.Builder
			printer := NewPrinter(&buffer, NewHighlighter(), false)
			assembled := &exchange.Assembled{
				Request: newTestRequest(),
				Body:    []byte(tt.body),
			}
			if err := printer.PrintRequest(assembled, tt.mode); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buffer.String() != tt.expected {
				t.Errorf("unexpected output: expected=%q, actual=%q", tt.expected, buffer.String())
			}
		})
	}
}

func TestPrintResponseBody(t *testing.T) {
	testCases := []struct {
		title       string
		body        string
		contentType string
		expected    string
	}{
		{
			title:       "Trailing newline is ensured",
			body:        "hello",
			contentType: "text/plain",
			expected:    "hello\n",
		},
		{
			title:       "Existing trailing newline is kept",
			body:        "hello\n",
			contentType: "text/plain",
			expected:    "hello\n",
		},
		{
			title:       "Empty body prints nothing",
			body:        "",
			contentType: "text/plain",
			expected:    "",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			var buffer strings.Builder
			printer := NewPrinter(&buffer, NewHighlighter(), false)
			if err := printer.PrintResponseBody([]byte(tt.body), tt.contentType); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buffer.String() != tt.expected {
				t.Errorf("unexpected output: expected=%q, actual=%q", tt.expected, buffer.String())
			}
		})
	}
}

func TestRequestGrammar(t *testing.T) {
	testCases := []struct {
		mode     input.Mode
		expected string
	}{
		{input.JSONMode, "json"},
		{input.FormMode, ""},
	}
	for _, tt := range testCases {
		actual := requestGrammar(tt.mode)
		if actual != tt.expected {
			t.Errorf("unexpected grammar for mode %v: expected=%q, actual=%q", tt.mode, tt.expected, actual)
		}
	}
}

func TestResponseGrammar(t *testing.T) {
	testCases := []struct {
		contentType string
		expected    string
	}{
		{"application/json", "json"},
		{"application/json; charset=utf-8", "json"},
		{"text/html", "html"},
		{"text/html; charset=utf-8", "html"},
		{"text/plain", ""},
		{"application/octet-stream", ""},
		{"", ""},
	}
	for _, tt := range testCases {
		actual := responseGrammar(tt.contentType)
		if actual != tt.expected {
			t.Errorf("unexpected grammar for %q: expected=%q, actual=%q", tt.contentType, tt.expected, actual)
		}
	}
}
