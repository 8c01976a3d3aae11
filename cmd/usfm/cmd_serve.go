package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/usfm/ui"
	"github.com/dhamidi/usfm/workspace"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve a browser preview of a directory of USFM files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			ws := workspace.New(root)
			if err := ws.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			watcher := workspace.NewFileWatcher(ws)
			watcher.Start()
			defer watcher.Stop()

			server, err := ui.NewServer(ws)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Serving %d files at http://%s\n", len(ws.Files()), displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	return cmd
}
