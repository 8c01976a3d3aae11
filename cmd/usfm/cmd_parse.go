package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/usfm/format"
	"github.com/dhamidi/usfm/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a USFM file and dump the element tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			p := parser.NewParser(data)
			doc := p.Document()

			switch outputFormat {
			case "json":
				if err := format.NewJSONEncoder(os.Stdout).Encode(doc); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				fmt.Print(doc.Root.String())
			case "html":
				if err := format.NewHTMLEncoder(os.Stdout).Encode(doc); err != nil {
					return fmt.Errorf("encode html: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			p.Errors().Format(os.Stderr, data, filename)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree, html)")

	return cmd
}
