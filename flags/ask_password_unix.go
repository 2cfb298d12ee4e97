//go:build !windows

package flags

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
)

func askPassword() (string, error) {
	fd := syscall.Stdin
	if !terminal.IsTerminal(fd) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return "", errors.Wrap(err, "allocating a terminal to read the password")
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := terminal.ReadPassword(fd)
	if err != nil {
		return "", errors.Wrap(err, "reading password from terminal")
	}
	fmt.Fprintln(os.Stderr)
	return string(password), nil
}
