package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/platform"
	"github.com/dhamidi/sq/searchfile"
	"github.com/dhamidi/sq/translate"
)

func newTranslateCmd() *cobra.Command {
	var (
		from       string
		to         string
		mode       string
		field      string
		file       string
		configPath string
		savePath   string
	)

	cmd := &cobra.Command{
		Use:   "translate [query]",
		Short: "Translate a query to another platform's syntax",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, input, msgs, err := runParse(args, file, configPath, from, mode, field)
			renderMessages(os.Stderr, input, msgs)
			if err != nil {
				return err
			}

			source, err := platform.Lookup(node.Platform)
			if err != nil {
				return err
			}
			target, err := platform.Lookup(to)
			if err != nil {
				return err
			}

			translated, err := translate.Translate(node, source, target)
			if err != nil {
				return err
			}
			rendered, err := parser.Serialize(translated, target)
			if err != nil {
				return err
			}

			if savePath != "" {
				sf := &searchfile.File{
					Platform:     target.Name,
					SearchString: rendered,
				}
				if err := sf.Save(savePath); err != nil {
					return err
				}
			}
			fmt.Println(rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source platform (default from config or search file)")
	cmd.Flags().StringVar(&to, "to", "generic", "target platform")
	cmd.Flags().StringVar(&mode, "mode", "", "strict or non-strict")
	cmd.Flags().StringVar(&field, "field", "", "search field applied to the whole query")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the query from a search file")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default .sq.toml)")
	cmd.Flags().StringVar(&savePath, "save", "", "write the result to a search file")

	return cmd
}

func newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the supported platforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range platform.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
