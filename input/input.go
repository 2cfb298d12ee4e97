package input

import "net/url"

// Request is the parsed command line: everything the assembler needs to
// build one HTTP exchange.
type Request struct {
	Method Method
	URL    *url.URL
	Mode   Mode
	Items  []Item
}

type Method string

// Item is one parsed key<operator>value token. The five variants form a
// closed set; the assembler switches over them exhaustively.
type Item interface {
	item()
}

// DataItem is a plain body field (key=value).
type DataItem struct {
	Name  string
	Value string
}

// JSONItem is a body field whose value is a parsed JSON literal (key:=value).
type JSONItem struct {
	Name  string
	Value interface{}
}

// HeaderItem is a request header (key:value).
type HeaderItem struct {
	Name  string
	Value string
}

// FileItem is a file reference intended for multipart upload (key@path).
type FileItem struct {
	Name string
	Path string
}

// ParamItem is a URL query parameter (key==value).
type ParamItem struct {
	Name  string
	Value string
}

func (DataItem) item()   {}
func (JSONItem) item()   {}
func (HeaderItem) item() {}
func (FileItem) item()   {}
func (ParamItem) item()  {}
