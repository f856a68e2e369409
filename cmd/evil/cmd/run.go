package cmd

import (
	"fmt"
	"log"
	"os"

	stderrors "errors"

	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp"
	"github.com/evil-lang/evil/internal/lexer"
	"github.com/evil-lang/evil/internal/parser"
	"github.com/evil-lang/evil/internal/token"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an evil script",
	Long: `Execute an evil program from a file or inline expression.

Examples:
  # Run a script file
  evil run script.evil

  # Evaluate inline code
  evil run -e "push_res_stack(1 + 2);"

  # Run with AST dump (for debugging)
  evil run --dump-ast script.evil

  # Run with execution trace
  evil run --trace script.evil`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace statement execution to stderr")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(errs, input, filename, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if filename != "<eval>" {
		prog.File = filename
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(prog.String())
		fmt.Println()
	}

	it := interp.New(os.Stdout)
	if trace {
		tracer := log.New(os.Stderr, "", 0)
		it.Trace = func(pos token.Position, source string) {
			tracer.Printf("[trace] %s: %s", pos, source)
		}
	}

	if err := it.Run(prog); err != nil {
		var rt *errors.RuntimeError
		var st *errors.StructuralError
		switch {
		case stderrors.As(err, &rt):
			fmt.Fprintln(os.Stderr, rt.FormatWithTrace(input, filename, true))
		case stderrors.As(err, &st):
			fmt.Fprintln(os.Stderr, errors.Format(st, input, filename, true))
		default:
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return fmt.Errorf("execution failed")
	}

	return nil
}

// readSource resolves the program text and a display name for it from
// either -e/--eval inline source or a single file argument.
func readSource(eval string, args []string) (input, filename string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
	}
}
