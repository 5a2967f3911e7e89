package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"griddeck/internal/config"
)

// newLayoutsCmd groups the layout management subcommands.
func newLayoutsCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Manage persisted layouts",
	}
	cmd.AddCommand(newLayoutsListCmd(cfgFile))
	cmd.AddCommand(newLayoutsExportCmd(cfgFile))
	cmd.AddCommand(newLayoutsDeleteCmd(cfgFile))
	return cmd
}

func newLayoutsListCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted layouts for the owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			backend, closeBackend, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeBackend() //nolint:errcheck

			layouts, err := backend.List(cmd.Context(), cfg.Owner)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tWIDGETS\tACTIVE\tUPDATED")
			for _, l := range layouts {
				active := ""
				if l.Active {
					active = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					l.ID, l.Name, len(l.Widgets), active,
					l.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newLayoutsExportCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export <layout-id>",
		Short: "Print a layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			backend, closeBackend, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeBackend() //nolint:errcheck

			layout, err := backend.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(layout, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newLayoutsDeleteCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <layout-id>",
		Short: "Delete a persisted layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			backend, closeBackend, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeBackend() //nolint:errcheck

			if err := backend.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("deleted layout", "id", args[0])
			return nil
		},
	}
}
