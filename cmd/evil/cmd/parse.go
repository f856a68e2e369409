package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/lexer"
	"github.com/evil-lang/evil/internal/parser"
	"github.com/spf13/cobra"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse evil source and display the AST",
	Long: `Parse evil source code and print the Abstract Syntax Tree.

If no file is provided, reads from stdin.
Use -e to parse source text given on the command line; it is parsed
as a whole program, so statements need their terminating semicolon.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse program source given on the command line")
}

func runParse(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input, filename = args[0], "<eval>"
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input, filename = string(data), args[0]
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input, filename = string(data), "<stdin>"
	}

	l := lexer.New(input)
	p := parser.New(l)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(errs, input, filename, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	fmt.Println(prog.String())
	return nil
}
