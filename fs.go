package cmdjen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// FS is a pseudo-filesystem that supports batch-writing its contents to the
// real filesystem, or batch-comparing its contents to the real filesystem. Its
// intended use is for idiomatic `go generate`-style code generators, where the
// results of codegen are committed to version control.
//
// The normal behavior of a generator is to write files to disk, but in CI
// that behavior should change to verify that what is already on disk is
// identical to the results of code generation. FS supports these related
// behaviors through its Write and Verify methods, respectively.
//
// Files may not be removed once added. If a path conflict occurs when adding
// a new file or merging another FS, an error is returned.
type FS struct {
	mu    sync.Mutex
	files map[string]fsEntry
}

type fsEntry struct {
	data  []byte
	from  []NamedJenny
	owner string
}

// NewFS creates a new FS, ready for use.
func NewFS() *FS {
	return &FS{
		files: make(map[string]fsEntry),
	}
}

// Len returns the number of files in the FS.
func (wd *FS) Len() int {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	return len(wd.files)
}

// AsFiles returns the contents of the FS as Files, sorted by path.
func (wd *FS) AsFiles() Files {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	return wd.toSlice()
}

func (wd *FS) toSlice() Files {
	fl := make(Files, 0, len(wd.files))
	for k, v := range wd.files {
		fl = append(fl, File{
			RelativePath: k,
			Data:         v.data,
			From:         v.from,
		})
	}

	sort.Slice(fl, func(i, j int) bool {
		return fl[i].RelativePath < fl[j].RelativePath
	})
	return fl
}

// Add adds one or more files to the FS. An error is returned if any of the
// provided files would conflict with a file already added to the FS, or if
// any has an absolute path.
func (wd *FS) Add(owner string, flist ...File) error {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	if err := Files(flist).Validate(); err != nil {
		return err
	}
	return wd.addValidated(owner, flist...)
}

func (wd *FS) addValidated(owner string, flist ...File) error {
	var result *multierror.Error
	for _, f := range flist {
		if rf, has := wd.files[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("FS cannot create %s for %q, already created for %q", f.RelativePath, owner, rf.owner))
		}
	}
	if result.ErrorOrNil() != nil {
		return result
	}

	for _, f := range flist {
		wd.files[f.RelativePath] = fsEntry{data: f.Data, from: f.From, owner: owner}
	}
	return nil
}

// Merge combines all the entries from the provided FS into the callee FS.
// Duplicate paths result in an error.
func (wd *FS) Merge(wd2 *FS) error {
	if wd2 == nil {
		return nil
	}
	wd2.mu.Lock()
	others := make(map[string]fsEntry, len(wd2.files))
	for k, v := range wd2.files {
		others[k] = v
	}
	wd2.mu.Unlock()

	wd.mu.Lock()
	defer wd.mu.Unlock()
	var result *multierror.Error
	for k, e := range others {
		if err := wd.addValidated(e.owner, File{RelativePath: k, Data: e.data, From: e.from}); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Write writes all of the files to their indicated paths.
//
// If the provided prefix path is non-empty, it will be prepended to all file
// entries for writing. prefix may be an absolute path. An empty FS writes
// nothing and creates no directories.
//
// Failures are reported as *IOError. Files already written when a failure
// occurs are not removed.
func (wd *FS) Write(ctx context.Context, prefix string) error {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(12)

	for _, item := range wd.toSlice() {
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(prefix, item.RelativePath)
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
			}

			if err := os.WriteFile(path, item.Data, 0o644); err != nil {
				return &IOError{Op: "write", Path: path, Err: err}
			}
			return nil
		})
	}

	return g.Wait()
}

// Verify checks the contents of each file against the filesystem. It returns
// an error if any of its contained files are missing or differ.
//
// If the provided prefix path is non-empty, it will be prepended to all file
// entries. prefix may be an absolute path.
func (wd *FS) Verify(ctx context.Context, prefix string) error {
	wd.mu.Lock()
	defer wd.mu.Unlock()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(12)

	var (
		resmu  sync.Mutex
		result *multierror.Error
	)
	report := func(err error) {
		resmu.Lock()
		result = multierror.Append(result, err)
		resmu.Unlock()
	}

	for _, item := range wd.toSlice() {
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ipath := filepath.Join(prefix, item.RelativePath)
			ob, err := os.ReadFile(ipath) //nolint:gosec
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					report(fmt.Errorf("%s: generated file should exist, but does not", ipath))
					return nil
				}
				return &IOError{Op: "read", Path: ipath, Err: err}
			}

			if dstr := cmp.Diff(string(ob), string(item.Data)); dstr != "" {
				report(fmt.Errorf("%s would have changed:\n\n%s", ipath, dstr))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("io error while verifying tree: %w", err)
	}

	return result.ErrorOrNil()
}
