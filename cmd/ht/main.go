package main

import (
	"fmt"
	"os"

	ht "github.com/ht-cli/ht"
	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := ht.Main(); err != nil {
		au := aurora.NewAurora(isatty.IsTerminal(os.Stderr.Fd()))
		fmt.Fprintf(os.Stderr, "%s %v\n", au.Colorize("error:", aurora.RedFg|aurora.BoldFm), err)
		os.Exit(1)
	}
}
