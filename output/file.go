package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/pkg/errors"
)

var reIndexSuffix = regexp.MustCompile(`\.(\d+)$`)

// FileWriter streams a response body to a file instead of stdout. The
// default filename derives from the URL path.
type FileWriter struct {
	fullPath string
}

func NewFileWriter(u *url.URL, options *Options) *FileWriter {
	fullPath := options.OutputFile
	if fullPath == "" {
		name := filepath.Base(u.Path)
		if name == "/" || name == "." {
			name = "index.html"
		}
		fullPath = "./" + name
	}
	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}
	return &FileWriter{fullPath: fullPath}
}

// makeNonOverlappingFilename appends or bumps a numeric suffix until the
// path names no existing file.
func makeNonOverlappingFilename(path string) string {
	for {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		m := reIndexSuffix.FindStringSubmatch(path)
		if m == nil {
			path += ".1"
			continue
		}
		i, err := strconv.Atoi(m[1])
		if err != nil {
			path += ".1"
			continue
		}
		path = strings.TrimSuffix(path, m[0]) + fmt.Sprintf(".%d", i+1)
	}
}

// Download copies the body to the target file and reports the written
// size on stderr.
func (f *FileWriter) Download(body io.Reader) error {
	file, err := os.Create(f.fullPath)
	if err != nil {
		return errors.Wrapf(err, "creating %q", f.fullPath)
	}
	defer file.Close()

	n, err := io.Copy(file, body)
	if err != nil {
		return errors.Wrapf(err, "writing response body to %q", f.fullPath)
	}

	fmt.Fprintf(os.Stderr, "Downloaded %s to %q\n", bytefmt.ByteSize(uint64(n)), f.fullPath)
	return nil
}

// Filename returns the base name of the target file.
func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}
