package cmd

import (
	"fmt"
	"os"

	"github.com/evil-lang/evil/internal/lexer"
	"github.com/evil-lang/evil/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEval    string
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an evil file or expression",
	Long: `Tokenize (lex) an evil program and print the resulting tokens.

Examples:
  # Tokenize a script file
  evil lex script.evil

  # Tokenize inline code
  evil lex -e "let x = 42;"

  # Show token types and positions
  evil lex --show-type --show-pos script.evil`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)

	tokenCount := 0
	errorCount := 0

	for {
		tok := l.NextToken()

		if onlyErrors && tok.Type != token.ILLEGAL {
			if tok.Type == token.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Type == token.ILLEGAL {
			errorCount++
		}

		printToken(tok)

		if tok.Type == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}

	return nil
}

func printToken(tok token.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}

	switch {
	case tok.Type == token.EOF:
		output += " EOF"
	case tok.Type == token.ILLEGAL:
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Lexeme)
	case tok.Lexeme == "":
		output += fmt.Sprintf(" %s", tok.Type)
	default:
		output += fmt.Sprintf(" %q", tok.Lexeme)
	}

	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}

	_, _ = os.Stdout.WriteString(output + "\n")
}
