package ht

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/ht-cli/ht/exchange"
	"github.com/ht-cli/ht/flags"
	"github.com/ht-cli/ht/input"
	"github.com/ht-cli/ht/output"
	"github.com/ht-cli/ht/version"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Main runs the whole pipeline: flags, mode resolution, item parsing,
// assembly, preview, the single exchange, and response rendering. The
// request preview and response status/headers go to stderr; only the
// response body reaches stdout.
func Main() error {
	flagSet, optionSet, args, err := flags.Parse(os.Args)
	if err != nil {
		return err
	}

	if optionSet.PrintVersion {
		fmt.Printf("ht %s\n", version.Current())
		return nil
	}
	if optionSet.PrintLicenses {
		version.PrintLicenses(os.Stdout)
		return nil
	}

	// Mode conflicts are reported before any request item is parsed.
	mode, err := input.ResolveMode(optionSet.InputOptions.Form, optionSet.InputOptions.JSON)
	if err != nil {
		return err
	}

	in, err := input.ParseArgs(args, mode)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}

	assembled, err := exchange.Assemble(in, &optionSet.ExchangeOptions)
	if err != nil {
		return err
	}

	highlighter := output.NewHighlighter()

	errWriter := bufio.NewWriter(os.Stderr)
	preview := output.NewPrinter(errWriter, highlighter, isatty.IsTerminal(os.Stderr.Fd()))
	if err := preview.PrintRequest(assembled, in.Mode); err != nil {
		return err
	}
	errWriter.Flush()

	resp, err := exchange.Send(assembled, &optionSet.ExchangeOptions)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := preview.PrintResponseHead(resp); err != nil {
		return err
	}
	errWriter.Flush()

	if optionSet.OutputOptions.Download {
		writer := output.NewFileWriter(assembled.Request.URL, &optionSet.OutputOptions)
		return writer.Download(resp.Body)
	}

	body, err := readBody(resp)
	if err != nil {
		return err
	}

	outWriter := bufio.NewWriter(os.Stdout)
	defer outWriter.Flush()
	printer := output.NewPrinter(outWriter, highlighter, optionSet.OutputOptions.EnableColor)
	return printer.PrintResponseBody(body, resp.Header.Get("Content-Type"))
}

// readBody accumulates the whole response body. Bodies that do not
// decode as UTF-8 are fatal; binary responses go through --download.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	if !utf8.Valid(body) {
		return nil, errors.New("response body is not valid UTF-8 (use --download to save it to a file)")
	}
	return body, nil
}
