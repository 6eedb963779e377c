package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/parser"
	"github.com/dhamidi/sq/platform"
	"github.com/dhamidi/sq/query"
)

func newParseCmd() *cobra.Command {
	var (
		platformName string
		mode         string
		field        string
		file         string
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse a query and print its tree",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, input, msgs, err := runParse(args, file, configPath, platformName, mode, field)
			renderMessages(os.Stderr, input, msgs)
			if err != nil {
				return err
			}

			switch outputFormat {
			case "tree":
				fmt.Print(node.StringStructured())
			case "inline":
				fmt.Println(node.StringInline())
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "query platform (wos, pubmed, ebsco, generic)")
	cmd.Flags().StringVar(&mode, "mode", "", "strict or non-strict")
	cmd.Flags().StringVar(&field, "field", "", "search field applied to the whole query")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the query from a search file")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default .sq.toml)")
	cmd.Flags().StringVarP(&outputFormat, "format", "o", "tree", "output format: tree, inline or json")

	return cmd
}

// runParse is the shared front half of parse and lint: resolve input and
// configuration, pick the grammar, parse in string or list form.
func runParse(args []string, file, configPath, platformName, mode, field string) (*query.Node, string, []lint.Message, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, "", nil, err
	}
	input, filePlatform, fileField, err := readQuery(args, file)
	if err != nil {
		return nil, "", nil, err
	}
	if filePlatform != "" && platformName == "" {
		platformName = filePlatform
	}
	if fileField != "" && field == "" {
		field = fileField
	}
	cfg = cfg.merge(platformName, mode, field)

	g, err := platform.Lookup(cfg.Platform)
	if err != nil {
		return nil, input, nil, err
	}

	var (
		node *query.Node
		msgs []lint.Message
	)
	if parser.LooksLikeList(input) {
		node, msgs, err = parser.ParseList(input, g, cfg.options())
	} else {
		node, msgs, err = parser.Parse(input, g, cfg.options())
	}
	return node, input, msgs, err
}
