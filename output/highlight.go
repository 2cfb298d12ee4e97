package output

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"
)

// Highlighter colorizes text for a named grammar. Lexer state is shared
// process-wide, so the pipeline constructs a single instance per
// invocation and hands it to every printer.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

func NewHighlighter() *Highlighter {
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: formatter,
	}
}

// Highlight writes text to w with ANSI escapes for the named grammar.
// An empty or unknown grammar name writes the text unmodified.
func (h *Highlighter) Highlight(w io.Writer, text, grammar string) error {
	if grammar == "" {
		_, err := io.WriteString(w, text)
		return err
	}
	lexer := lexers.Get(grammar)
	if lexer == nil {
		_, err := io.WriteString(w, text)
		return err
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return errors.Wrapf(err, "tokenizing text as %q", grammar)
	}
	if err := h.formatter.Format(w, h.style, iterator); err != nil {
		return errors.Wrap(err, "formatting highlighted text")
	}
	return nil
}
