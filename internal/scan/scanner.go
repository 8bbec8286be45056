// Package scan discovers command declarations in Go source.
//
// A command declaration is a type declaration whose doc comment carries one
// or more lines starting with [MarkerPrefix]:
//
//	// TeleportCommand moves a player.
//	//
//	// +commands:name=teleport permission=myserver.teleport
//	// +commands:description="Teleport to another player or location"
//	// +commands:usage="/teleport <player> [destination]" aliases=tp,tele
//	type TeleportCommand struct{}
//
// Attribute values are split with POSIX shell quoting, so values containing
// spaces must be quoted.
package scan

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"

	"github.com/grafana/cmdjen/commands"
)

// Scanner finds command declarations in the Go packages matched by its
// patterns. A pattern is a directory; a trailing "/..." also matches every
// directory below it.
type Scanner struct {
	patterns []string
	logger   *log.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for per-package progress messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Scanner) {
		s.logger = l
	}
}

// New returns a Scanner for the given patterns. With no patterns, the
// current directory is scanned.
func New(patterns []string, opts ...Option) *Scanner {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	s := &Scanner{
		patterns: patterns,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover parses every matched package and delivers each command
// declaration to sink, in directory, file and source order. Declarations that
// fail validation are not delivered; their errors, and Go parse errors, are
// aggregated and returned once all packages have been scanned.
func (s *Scanner) Discover(ctx context.Context, sink commands.Sink) error {
	dirs, err := s.packageDirs()
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.logger.Debug("scanning package", "dir", dir)
		decls, err := scanDir(dir)
		if err != nil {
			result = multierror.Append(result, err)
		}
		for _, d := range decls {
			sink.Deliver(d)
		}
	}
	return result.ErrorOrNil()
}

func (s *Scanner) packageDirs() ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, pattern := range s.patterns {
		root, recursive := splitPattern(pattern)
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pattern %q: %s is not a directory", pattern, root)
		}
		if !recursive {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			ok, err := hasSourceFiles(path)
			if err != nil {
				return err
			}
			if ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
	}
	return dirs, nil
}

func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if root, ok := strings.CutSuffix(pattern, "/..."); ok {
		if root == "" {
			root = "/"
		}
		return root, true
	}
	return pattern, false
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func hasSourceFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if !e.IsDir() && isSourceFile(e.Name()) {
			return true, nil
		}
	}
	return false, nil
}

// isSourceFile checks if a file should be considered for parsing.
func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}

// scanDir parses the Go files of a single directory and returns the command
// declarations found in them. Valid declarations are returned even when
// others fail validation.
func scanDir(dir string) ([]commands.Declaration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	var (
		decls  []commands.Declaration
		result *multierror.Error
	)
	for _, e := range entries {
		if e.IsDir() || !isSourceFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("parse %s: %w", path, err))
			continue
		}
		fdecls, err := scanFile(fset, file)
		decls = append(decls, fdecls...)
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return decls, result.ErrorOrNil()
}

func scanFile(fset *token.FileSet, file *ast.File) ([]commands.Declaration, error) {
	var (
		decls  []commands.Declaration
		result *multierror.Error
	)
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			docs := []*ast.CommentGroup{typeSpec.Doc}
			if !genDecl.Lparen.IsValid() {
				docs = append(docs, genDecl.Doc)
			}
			lines := markerLines(docs...)
			if len(lines) == 0 {
				continue
			}

			d := commands.Declaration{
				Owner: file.Name.Name + "." + typeSpec.Name.Name,
				Pos:   fset.Position(typeSpec.Name.Pos()),
			}
			cmd, err := parseMarkers(lines)
			if err == nil {
				err = cmd.Validate()
			}
			if err != nil {
				result = multierror.Append(result, asValidationError(d, err))
				continue
			}
			d.Command = cmd
			decls = append(decls, d)
		}
	}
	return decls, result.ErrorOrNil()
}

func asValidationError(d commands.Declaration, err error) *commands.ValidationError {
	var verr *commands.ValidationError
	if errors.As(err, &verr) {
		out := *verr
		out.Pos, out.Owner = d.Pos, d.Owner
		return &out
	}
	return &commands.ValidationError{Pos: d.Pos, Owner: d.Owner, Msg: err.Error()}
}
