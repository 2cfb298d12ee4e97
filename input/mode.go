package input

import "github.com/pkg/errors"

// Mode selects how body fields are serialized.
type Mode int

const (
	JSONMode Mode = iota
	FormMode
)

func (m Mode) String() string {
	switch m {
	case JSONMode:
		return "json"
	case FormMode:
		return "form"
	default:
		return "unknown"
	}
}

// ResolveMode picks the body-encoding mode from the --form/--json flags.
// It must be called before any request item is parsed so that a flag
// conflict is reported first.
func ResolveMode(form, json bool) (Mode, error) {
	if form && json {
		return JSONMode, errors.New("you cannot specify both of --json and --form")
	}
	if form {
		return FormMode, nil
	}
	return JSONMode, nil
}
