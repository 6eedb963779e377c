package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sq/lint"
)

func newLintCmd() *cobra.Command {
	var (
		platformName string
		mode         string
		field        string
		file         string
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "lint [query]",
		Short: "Check a query and report every problem",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, input, msgs, err := runParse(args, file, configPath, platformName, mode, field)
			renderMessages(os.Stdout, input, msgs)
			if err != nil {
				return err
			}
			problems := 0
			for _, m := range msgs {
				if m.Severity >= lint.Error {
					problems++
				}
			}
			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			if len(msgs) == 0 {
				fmt.Println("no problems found")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "query platform (wos, pubmed, ebsco, generic)")
	cmd.Flags().StringVar(&mode, "mode", "", "strict or non-strict")
	cmd.Flags().StringVar(&field, "field", "", "search field applied to the whole query")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the query from a search file")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default .sq.toml)")

	return cmd
}
