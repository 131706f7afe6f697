package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var deselectAll bool

var deselectCmd = &cobra.Command{
	Use:   "deselect [id|title]...",
	Short: "Deselect addons",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if deselectAll {
			flipped, err := manager.ClearSelection(ctx)
			if err != nil {
				return err
			}
			fmt.Println(styles.FormatSuccess(fmt.Sprintf("Deselected %d addon(s)", flipped)))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("name at least one addon or pass --all")
		}

		for _, arg := range args {
			addon, err := resolveAddon(ctx, manager, arg)
			if err != nil {
				return err
			}
			if err := manager.SetSelection(ctx, addon.ID(), false); err != nil {
				return err
			}
			fmt.Println(styles.FormatSuccess("Deselected " + addon.Metadata().Title()))
		}
		return nil
	},
}

func init() {
	deselectCmd.Flags().BoolVarP(&deselectAll, "all", "a", false, "Deselect every addon in the catalog")
	rootCmd.AddCommand(deselectCmd)
}
