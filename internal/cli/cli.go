// Package cli implements the wallsandholes command-line interface.
//
// The commands are:
//   - edit: open a map in the terminal editor
//   - prune: drop template set dependencies a map no longer uses
//   - info: print a map's size and dependencies
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/samdwyer/wallsandholes/internal/logging"
)

const appName = "wallsandholes"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: logging.New(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Terminal tile map editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(logging.WithLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.AddCommand(c.editCommand())
	root.AddCommand(c.pruneCommand())
	root.AddCommand(c.infoCommand())
	return root
}
