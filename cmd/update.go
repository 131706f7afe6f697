package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/fetch"
	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var updateCmd = &cobra.Command{
	Use:   "update <package-name>",
	Short: "Update an installed git package",
	Long: `Fast-forward a git-installed package to its remote and refresh its
catalog record. Packages with local changes are left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}

		var progress io.Writer
		if verbose {
			progress = os.Stderr
		}

		addon, err := manager.UpdatePackage(cmd.Context(), args[0], progress)
		if errors.Is(err, fetch.ErrAlreadyUpToDate) {
			fmt.Println(styles.MutedText.Render(args[0] + " is already up to date"))
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println(styles.FormatSuccess(fmt.Sprintf("Updated %s to v%s",
			addon.Metadata().Title(), addon.Metadata().Version())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
