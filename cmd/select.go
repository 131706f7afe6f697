package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var selectAll bool

var selectCmd = &cobra.Command{
	Use:   "select [id|title]...",
	Short: "Select addons for publishing",
	Long: `Mark one or more addons as selected. Addons can be named by catalog id,
an id prefix, or title. The selection persists across runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if selectAll {
			flipped, err := manager.SelectAll(ctx)
			if err != nil {
				return err
			}
			fmt.Println(styles.FormatSuccess(fmt.Sprintf("Selected %d addon(s)", flipped)))
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
			if err := manager.SetSelection(ctx, addon.ID(), true); err != nil {
				return err
			}
			fmt.Println(styles.FormatSuccess("Selected " + addon.Metadata().Title()))
		}
		return nil
	},
}

func init() {
	selectCmd.Flags().BoolVarP(&selectAll, "all", "a", false, "Select every addon in the catalog")
	rootCmd.AddCommand(selectCmd)
}
