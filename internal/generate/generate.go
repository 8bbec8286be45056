// Package generate runs one descriptor generation: discovery, aggregation,
// rendering, and writing or verifying the result.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/grafana/cmdjen"
	"github.com/grafana/cmdjen/commands"
)

// Discoverer finds command declarations and delivers them to a sink. Discover
// returning signals that discovery is complete.
type Discoverer interface {
	Discover(ctx context.Context, sink commands.Sink) error
}

// Options configures Run.
type Options struct {
	Discoverer Discoverer

	// OutDir is the directory the descriptor is written to or verified in.
	OutDir string
	// FileName is the descriptor path relative to OutDir. Defaults to
	// commands.DefaultFileName.
	FileName string

	Quoting commands.Quoting
	Order   commands.Order

	// Check verifies the descriptor on disk instead of writing it.
	Check bool

	Logger *log.Logger
}

// Result summarizes a run.
type Result struct {
	// Commands is the number of distinct commands discovered.
	Commands int
	// Path is the descriptor location, empty if nothing was generated.
	Path string
	// Data is the rendered descriptor.
	Data []byte
}

// Run performs one generation. When no commands are discovered it returns a
// zero Result and touches nothing on disk.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Discoverer == nil {
		return Result{}, errors.New("no discoverer configured")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	name := opts.FileName
	if name == "" {
		name = commands.DefaultFileName
	}

	reg := commands.NewRegistry(commands.WithOrder(opts.Order), commands.WithQuoting(opts.Quoting))
	if err := opts.Discoverer.Discover(ctx, &loggingSink{reg: reg, logger: logger}); err != nil {
		return Result{}, fmt.Errorf("discover commands: %w", err)
	}
	if reg.IsEmpty() {
		if opts.Check {
			return Result{}, checkAbsent(filepath.Join(opts.OutDir, name))
		}
		logger.Info("no commands found, nothing to generate")
		return Result{}, nil
	}

	jl := cmdjen.JennyListWithNamer(func(d commands.Declaration) string {
		return d.Owner
	})
	jl.AppendManyToOne(commands.ForDeclarations(commands.YAMLJenny{Path: name, Quoting: opts.Quoting}))
	jl.AddPostprocessors(commands.LintYAML(opts.Quoting == commands.QuotingStrict, logger))

	jfs, err := jl.GenerateFS(reg.Declarations()...)
	if err != nil {
		return Result{}, fmt.Errorf("generate %s: %w", name, err)
	}

	res := Result{
		Commands: reg.Len(),
		Path:     filepath.Join(opts.OutDir, name),
	}
	for _, f := range jfs.AsFiles() {
		if f.RelativePath == name {
			res.Data = f.Data
		}
	}

	if opts.Check {
		if err := jfs.Verify(ctx, opts.OutDir); err != nil {
			return res, err
		}
		logger.Info("descriptor is up to date", "path", res.Path, "commands", res.Commands)
		return res, nil
	}

	if err := jfs.Write(ctx, opts.OutDir); err != nil {
		return res, fmt.Errorf("failed to generate %s: %w", name, err)
	}
	logger.Info("generated descriptor", "path", res.Path, "commands", res.Commands)
	return res, nil
}

type loggingSink struct {
	reg    *commands.Registry
	logger *log.Logger
}

func (s *loggingSink) Deliver(d commands.Declaration) {
	if prev, ok := s.reg.Lookup(d.Command.Name); ok {
		s.logger.Warn("command declared more than once, last declaration wins",
			"name", d.Command.Name, "previous", prev.Owner, "owner", d.Owner)
	}
	s.logger.Info("found command", "name", d.Command.Name, "owner", d.Owner)
	s.reg.Deliver(d)
}

// checkAbsent fails if a descriptor exists at path although no commands are
// declared any more.
func checkAbsent(path string) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%s: no commands found, descriptor is stale and should be removed", path)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return &cmdjen.IOError{Op: "stat", Path: path, Err: err}
	}
}
