//go:build windows

package flags

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
)

func askPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := terminal.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", errors.Wrap(err, "reading password from terminal")
	}
	fmt.Fprintln(os.Stderr)
	return string(password), nil
}
