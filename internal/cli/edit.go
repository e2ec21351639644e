package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wallsandholes/internal/editor"
	"github.com/samdwyer/wallsandholes/internal/logging"
	"github.com/samdwyer/wallsandholes/internal/ui"
)

func (c *CLI) editCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "edit [map.json]",
		Short: "Open a map in the terminal editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := editor.ConfigFromEnv()
			if len(args) == 1 {
				cfg.MapPath = args[0]
			}
			if width > 0 {
				cfg.Width = width
			}
			if height > 0 {
				cfg.Height = height
			}

			// The editor owns the terminal, so logs go to a file.
			logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()

			logger := logging.New(logFile, logging.ParseLevel(cfg.LogLevel))
			ctx := logging.WithLogger(cmd.Context(), logger)

			screen, err := ui.NewScreen()
			if err != nil {
				return fmt.Errorf("init screen: %w", err)
			}

			ed, err := editor.New(ctx, cfg, screen)
			if err != nil {
				screen.Close()
				return err
			}
			return ed.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "width of a new map")
	cmd.Flags().IntVar(&height, "height", 0, "height of a new map")
	return cmd
}
