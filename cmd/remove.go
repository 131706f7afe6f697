package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var removePurge bool

var removeCmd = &cobra.Command{
	Use:   "remove <id|title>",
	Short: "Remove an addon from the catalog",
	Long: `Drop an addon's record from the catalog. The package folder stays in
the community folder unless --purge is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		addon, err := resolveAddon(ctx, manager, args[0])
		if err != nil {
			return err
		}

		if err := manager.Remove(ctx, addon.ID(), removePurge); err != nil {
			return err
		}

		msg := "Removed " + addon.Metadata().Title() + " from the catalog"
		if removePurge {
			msg += " and deleted " + addon.InstallPath()
		}
		fmt.Println(styles.FormatSuccess(msg))
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVar(&removePurge, "purge", false, "Also delete the package folder")
	rootCmd.AddCommand(removeCmd)
}
