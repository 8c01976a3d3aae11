package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/usfm/parser"
	"github.com/dhamidi/usfm/scanner"
)

func newCheckCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Parse USFM files and report structural problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no USFM files found")
			}

			results := scanner.ScanFiles(files, workers)

			problems := 0
			failed := 0
			for _, r := range results {
				if r.Err != "" {
					fmt.Fprintf(os.Stderr, "error: %s\n", r.Err)
					failed++
					continue
				}
				list := parser.NewErrorList()
				for _, d := range r.Diagnostics {
					list.Record(d)
				}
				list.Format(os.Stderr, r.Source, r.Path)
				problems += len(r.Diagnostics)
			}

			if problems > 0 || failed > 0 {
				return fmt.Errorf("%d problems in %d files", problems+failed, len(files))
			}
			fmt.Printf("%d files OK\n", len(files))
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of parser workers")

	return cmd
}

// collectFiles expands directory arguments into the USFM files they contain.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := scanner.Discover(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, arg)
	}
	return files, nil
}
