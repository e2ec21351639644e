package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/wallsandholes/internal/logging"
	"github.com/samdwyer/wallsandholes/internal/mapfile"
)

func (c *CLI) pruneCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune <map.json>",
		Short: "Remove template set dependencies the map no longer uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := logging.FromContext(ctx)
			path := args[0]

			m, err := mapfile.Load(ctx, path, mapfile.NewLibrary())
			if err != nil {
				return err
			}

			removed := m.PruneDependencies(ctx)
			for _, s := range removed {
				logger.Info("unused template set", "set", s.Name(), "path", s.SavePath())
			}
			if len(removed) == 0 || dryRun {
				logger.Info("nothing written", "removed", len(removed), "dry_run", dryRun)
				return nil
			}

			if err := mapfile.Save(ctx, path, m); err != nil {
				return err
			}
			logger.Info("pruned map", "path", path, "removed", len(removed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report unused sets without rewriting the map")
	return cmd
}

func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <map.json>",
		Short: "Print a map's size and template set dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := mapfile.Load(ctx, args[0], mapfile.NewLibrary())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "size: %dx%d\n", m.Width(), m.Height())
			for _, s := range m.Dependencies() {
				used := 0
				for _, t := range s.Templates() {
					if m.TemplateUsed(t) {
						used++
					}
				}
				fmt.Fprintf(w, "set %q (%s): %d/%d templates used\n", s.Name(), s.SavePath(), used, s.Len())
			}
			return nil
		},
	}
}
