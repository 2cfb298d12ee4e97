package output

type Options struct {
	EnableColor bool

	Download   bool
	OutputFile string
	Overwrite  bool
}
