// Package filter compiles optional entry filter expressions used to restrict
// which regular files take part in a fingerprint.
package filter

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"ffp/internal/fingerprint"
)

// ErrEmptyExpression is returned by Compile for a blank expression.
var ErrEmptyExpression = errors.New("filter expression is empty")

// Env is the evaluation environment exposed to filter expressions.
type Env struct {
	Path string `expr:"path"`
	Name string `expr:"name"`
	Ext  string `expr:"ext"`
	Dir  string `expr:"dir"`
	Size int64  `expr:"size"`
}

// Filter is a compiled boolean expression. A Filter is safe for concurrent use.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks source. The expression must evaluate to a bool.
func Compile(source string) (*Filter, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptyExpression
	}
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", source, err)
	}
	return &Filter{source: source, program: program}, nil
}

// CompileOptional returns nil when source is blank.
func CompileOptional(source string) (*Filter, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	return Compile(source)
}

// String returns the trimmed expression source.
func (f *Filter) String() string {
	return f.source
}

// Match evaluates the expression against entry.
func (f *Filter) Match(entry fingerprint.FileEntry) (bool, error) {
	out, err := expr.Run(f.program, EnvFor(entry))
	if err != nil {
		return false, fmt.Errorf("evaluate filter for %s: %w", entry.RelPath, err)
	}
	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", out)
	}
	return keep, nil
}

// EnvFor builds the expression environment for entry. Paths use forward
// slashes; ext is lowercased and keeps its leading dot.
func EnvFor(entry fingerprint.FileEntry) Env {
	rel := strings.ReplaceAll(entry.RelPath, "\\", "/")
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	return Env{
		Path: rel,
		Name: path.Base(rel),
		Ext:  strings.ToLower(path.Ext(rel)),
		Dir:  dir,
		Size: entry.Size,
	}
}
