// Package resolver implements the import-file lookup contract of spec
// §4.I/§6: given the file an import statement appears in (or none, at
// the top level) and a requested file name, produce its absolute path
// and parsed statement list.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/lexer"
	"github.com/evil-lang/evil/internal/parser"
)

// Result is the resolver's success value: the canonical path the file
// was read from, plus its already-parsed top-level statements.
type Result struct {
	AbsolutePath string
	Statements   []ast.Statement
}

// Resolver is the contract the evaluator's Import statement consumes.
// currentFile is empty when there is no enclosing file (a top-level
// `import` run directly from source text).
type Resolver interface {
	Resolve(currentFile, fileName string) (Result, error)
}

// FileResolver is the default, filesystem-backed implementation: it
// canonicalizes fileName against the directory of currentFile when one
// is given, else against the process working directory, then reads
// and parses the result.
type FileResolver struct{}

// NewFileResolver returns the default resolver.
func NewFileResolver() *FileResolver { return &FileResolver{} }

func (r *FileResolver) Resolve(currentFile, fileName string) (Result, error) {
	if fileName == "" {
		return Result{}, fmt.Errorf("resolver: empty file name")
	}
	var base string
	if currentFile != "" {
		base = filepath.Dir(currentFile)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return Result{}, err
		}
		base = wd
	}
	abs, err := filepath.Abs(filepath.Join(base, fileName))
	if err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return Result{}, err
	}

	l := lexer.New(string(data))
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return Result{}, fmt.Errorf("resolver: parse errors in %s: %v", abs, errs)
	}
	prog.File = abs
	return Result{AbsolutePath: abs, Statements: prog.Statements}, nil
}
