package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ht-cli/ht/input"
	"github.com/ht-cli/ht/version"
	"github.com/pkg/errors"
)

// Assembled is a ready-to-send request plus the serialized body, retained
// so the preview can render it without draining the request body.
type Assembled struct {
	Request *http.Request
	Body    []byte
}

// Assemble folds the ordered request items into headers, query parameters
// and a body serialized according to the request's mode.
func Assemble(in *input.Request, options *Options) (*Assembled, error) {
	for _, item := range in.Items {
		if f, ok := item.(input.FileItem); ok {
			return nil, errors.Errorf(
				"form file field '%s@%s' requires a multipart body, which is not supported yet",
				f.Name, f.Path)
		}
	}

	u, err := buildURL(in)
	if err != nil {
		return nil, err
	}

	header, err := buildHeader(in)
	if err != nil {
		return nil, err
	}

	body, contentType, err := buildBody(in)
	if err != nil {
		return nil, err
	}

	if len(body) > 0 {
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", contentType)
		}
		header.Set("Content-Length", strconv.Itoa(len(body)))
	}
	if header.Get("Accept") == "" {
		header.Set("Accept", "*/*")
	}
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", fmt.Sprintf("ht/%s", version.Current()))
	}

	r := http.Request{
		Method:        string(in.Method),
		URL:           u,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Host:          header.Get("Host"),
		ContentLength: int64(len(body)),
	}
	if len(body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(body))
	}
	if options.Auth.Enabled {
		r.SetBasicAuth(options.Auth.UserName, options.Auth.Password)
	}

	return &Assembled{Request: &r, Body: body}, nil
}

// buildURL appends query parameter items to the URL query string. The
// query is passed through untouched when no parameter items exist.
func buildURL(in *input.Request) (*url.URL, error) {
	u := *in.URL

	var params []input.ParamItem
	for _, item := range in.Items {
		if p, ok := item.(input.ParamItem); ok {
			params = append(params, p)
		}
	}
	if len(params) == 0 {
		return &u, nil
	}

	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, errors.Wrap(err, "parsing query string")
	}
	for _, p := range params {
		q.Add(p.Name, p.Value)
	}
	u.RawQuery = q.Encode()
	return &u, nil
}

func buildHeader(in *input.Request) (http.Header, error) {
	header := make(http.Header)
	for _, item := range in.Items {
		if h, ok := item.(input.HeaderItem); ok {
			header.Add(h.Name, h.Value)
		}
	}
	return header, nil
}

func buildBody(in *input.Request) ([]byte, string, error) {
	switch in.Mode {
	case input.JSONMode:
		return buildJSONBody(in)
	case input.FormMode:
		return buildFormBody(in)
	default:
		return nil, "", errors.Errorf("unknown mode: %v", in.Mode)
	}
}

// buildJSONBody serializes Data and JSON items into one compact JSON
// object. Keys keep their first-insertion position; a later item with the
// same key overwrites the earlier value.
func buildJSONBody(in *input.Request) ([]byte, string, error) {
	var keys []string
	values := map[string]interface{}{}

	record := func(name string, value interface{}) {
		if _, seen := values[name]; !seen {
			keys = append(keys, name)
		}
		values[name] = value
	}

	for _, item := range in.Items {
		switch f := item.(type) {
		case input.DataItem:
			record(f.Name, f.Value)
		case input.JSONItem:
			record(f.Name, f.Value)
		}
	}
	if len(keys) == 0 {
		return nil, "", nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeJSON(key)
		if err != nil {
			return nil, "", errors.Wrapf(err, "marshaling JSON key '%s'", key)
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := encodeJSON(values[key])
		if err != nil {
			return nil, "", errors.Wrapf(err, "marshaling JSON value of '%s'", key)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')

	return buf.Bytes(), "application/json", nil
}

// buildFormBody serializes Data and JSON items as key=value pairs joined
// by '&'. JSON item values serialize to compact JSON before escaping.
func buildFormBody(in *input.Request) ([]byte, string, error) {
	var pairs []string
	for _, item := range in.Items {
		switch f := item.(type) {
		case input.DataItem:
			pairs = append(pairs, formEscape(f.Name)+"="+formEscape(f.Value))
		case input.JSONItem:
			v, err := encodeJSON(f.Value)
			if err != nil {
				return nil, "", errors.Wrapf(err, "marshaling JSON value of '%s'", f.Name)
			}
			pairs = append(pairs, formEscape(f.Name)+"="+formEscape(string(v)))
		}
	}
	if len(pairs) == 0 {
		return nil, "", nil
	}
	body := strings.Join(pairs, "&")
	return []byte(body), "application/x-www-form-urlencoded", nil
}

// encodeJSON marshals a single value compactly without HTML escaping.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// formEscape percent-encodes a form component. Spaces encode as %20, not
// as '+'.
func formEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
