package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/usfm/format"
	"github.com/dhamidi/usfm/scanner"
)

func newConvertCmd() *cobra.Command {
	var outputDir string
	var splitChapters bool
	var workers int

	cmd := &cobra.Command{
		Use:   "convert <path>...",
		Short: "Convert USFM files to HTML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no USFM files found")
			}

			// single file, no output directory: write to stdout
			if outputDir == "" {
				if len(files) > 1 || splitChapters {
					return fmt.Errorf("writing multiple files requires --output")
				}
				result := scanner.ScanFile(files[0])
				if result.Err != "" {
					return fmt.Errorf("%s", result.Err)
				}
				reportDiagnostics(result)
				return format.NewHTMLEncoder(os.Stdout).Encode(result.Document)
			}

			results := scanner.ScanFiles(files, workers)
			for _, result := range results {
				if result.Err != "" {
					return fmt.Errorf("%s", result.Err)
				}
				reportDiagnostics(result)
				if err := writeConverted(result, outputDir, splitChapters); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	cmd.Flags().BoolVar(&splitChapters, "split-chapters", false, "write one HTML file per chapter")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of parser workers")

	return cmd
}

func reportDiagnostics(result scanner.FileResult) {
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s\n", result.Path, d.Message(result.Source))
	}
}

func writeConverted(result scanner.FileResult, outputDir string, splitChapters bool) error {
	base := strings.TrimSuffix(filepath.Base(result.Path), filepath.Ext(result.Path))

	if !splitChapters {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return err
		}
		out, err := os.Create(filepath.Join(outputDir, base+".html"))
		if err != nil {
			return err
		}
		defer out.Close()
		return format.NewHTMLEncoder(out).Encode(result.Document)
	}

	// one directory per book, one file per chapter
	bookDir := filepath.Join(outputDir, base)
	if err := os.MkdirAll(bookDir, 0o755); err != nil {
		return err
	}
	for _, chapter := range format.SplitChapters(result.Document) {
		out, err := os.Create(filepath.Join(bookDir, chapter.Filename()))
		if err != nil {
			return err
		}
		if err := format.RenderElements(out, chapter.Elements); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}
