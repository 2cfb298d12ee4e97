package flags

import (
	"io"
	"os"
	"strings"

	"github.com/ht-cli/ht/exchange"
	"github.com/ht-cli/ht/input"
	"github.com/ht-cli/ht/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	PrintVersion  bool
	PrintLicenses bool
}

type terminalInfo struct {
	stdoutIsTerminal bool
}

func Parse(args []string) (FlagSet, *OptionSet, []string, error) {
	return parse(args, terminalInfo{
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminalInfo terminalInfo) (FlagSet, *OptionSet, []string, error) {
	inputOptions := input.Options{}
	exchangeOptions := exchange.Options{}
	outputOptions := output.Options{}
	var authFlag string
	verifyFlag := "yes"
	var printVersion, printLicenses bool

	flagSet := getopt.New()
	flagSet.SetParameters("METHOD URL [REQUEST_ITEM [REQUEST_ITEM ...]]")
	flagSet.BoolVarLong(&inputOptions.Form, "form", 'f', "serialize body in application/x-www-form-urlencoded")
	flagSet.BoolVarLong(&inputOptions.JSON, "json", 'j', "serialize body as a JSON object (default)")
	flagSet.StringVarLong(&authFlag, "auth", 'a', "basic auth (USER[:PASS], prompts for PASS when omitted)")
	flagSet.StringVarLong(&verifyFlag, "verify", 0, "verify TLS certificates (yes or no)")
	flagSet.BoolVarLong(&outputOptions.Download, "download", 'd', "save response body into a file instead of stdout")
	flagSet.StringVarLong(&outputOptions.OutputFile, "output", 'o', "download target path")
	flagSet.BoolVarLong(&outputOptions.Overwrite, "overwrite", 0, "overwrite the download target if it exists")
	flagSet.BoolVarLong(&printVersion, "version", 'v', "print version and exit")
	flagSet.BoolVarLong(&printLicenses, "license", 0, "print license information and exit")
	flagSet.Parse(args)

	if err := parseAuthFlag(authFlag, &exchangeOptions); err != nil {
		return nil, nil, nil, err
	}
	if err := parseVerifyFlag(verifyFlag, &exchangeOptions); err != nil {
		return nil, nil, nil, err
	}

	outputOptions.EnableColor = terminalInfo.stdoutIsTerminal

	optionSet := &OptionSet{
		InputOptions:    inputOptions,
		ExchangeOptions: exchangeOptions,
		OutputOptions:   outputOptions,
		PrintVersion:    printVersion,
		PrintLicenses:   printLicenses,
	}
	return flagSet, optionSet, flagSet.Args(), nil
}

func parseAuthFlag(authFlag string, exchangeOptions *exchange.Options) error {
	if authFlag == "" {
		return nil
	}
	userName, password, found := strings.Cut(authFlag, ":")
	if !found {
		var err error
		password, err = askPassword()
		if err != nil {
			return err
		}
	}
	exchangeOptions.Auth = exchange.AuthOptions{
		Enabled:  true,
		UserName: userName,
		Password: password,
	}
	return nil
}

func parseVerifyFlag(verifyFlag string, exchangeOptions *exchange.Options) error {
	switch verifyFlag {
	case "yes":
		return nil
	case "no":
		exchangeOptions.SkipVerify = true
		return nil
	default:
		return errors.Errorf("Value of --verify must be yes or no: %s", verifyFlag)
	}
}
