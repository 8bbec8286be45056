package cmdjen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// File is a single file produced by a Jenny.
type File struct {
	// The relative path to which the generated file should be written.
	RelativePath string

	// Contents of the generated file.
	Data []byte

	// From is the stack of jennies responsible for producing this File.
	// The first element is the outermost jenny.
	From []NamedJenny
}

// Exists reports whether the File has both a path and contents. A File that
// does not exist is treated as a no-op by [JennyList].
func (f File) Exists() bool {
	return f.RelativePath != "" && len(f.Data) > 0
}

// Files is a set of File objects.
//
// A Files is [Files.Validate] if all of its File members have relative paths
// and no two members share a path.
type Files []File

// Validate checks that all contained files have relative paths and that no
// path is declared more than once.
func (fl Files) Validate() error {
	var result *multierror.Error
	seen := make(map[string]File, len(fl))
	for _, f := range fl {
		if filepath.IsAbs(f.RelativePath) {
			result = multierror.Append(result, fmt.Errorf("%s: files must have relative paths, got absolute path from %s", f.RelativePath, jennystack(f.From)))
		}
		if prev, has := seen[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("%s: path produced by both %s and %s", f.RelativePath, jennystack(prev.From), jennystack(f.From)))
			continue
		}
		seen[f.RelativePath] = f
	}
	return result.ErrorOrNil()
}

// FileMapper takes a File and transforms it into a new File.
//
// cmdjen generally assumes that FileMappers will reuse an unmodified byte
// slice.
type FileMapper func(File) (File, error)

func jennystack(s []NamedJenny) string {
	if len(s) == 0 {
		return "<unknown>"
	}
	names := make([]string, len(s))
	for i, j := range s {
		names[i] = j.JennyName()
	}
	return strings.Join(names, ":")
}
