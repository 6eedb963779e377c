package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sq/searchfile"
)

const version = "0.3.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sq",
		Short: "Parse, lint and translate bibliographic search queries",
	}
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newTranslateCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newPlatformsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readQuery resolves the query text for a command: an explicit argument, a
// search file given with --file, or stdin when neither is present. The
// returned platform is non-empty only when the search file names one.
func readQuery(args []string, file string) (text, platform, field string, err error) {
	if file != "" {
		sf, err := searchfile.Load(file)
		if err != nil {
			return "", "", "", err
		}
		return sf.SearchString, sf.Platform, sf.Field, nil
	}
	if len(args) > 0 && args[0] != "-" {
		return strings.Join(args, " "), "", "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", "", fmt.Errorf("read stdin: %w", err)
	}
	text = strings.TrimRight(string(data), "\n")
	if text == "" {
		return "", "", "", fmt.Errorf("no query given")
	}
	return text, "", "", nil
}
