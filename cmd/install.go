package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var installCmd = &cobra.Command{
	Use:   "install <git-url>",
	Short: "Install a package from a git repository",
	Long: `Clone a package repository into the community folder and add it to the
catalog. The repository must carry a manifest.json.

Examples:
  hangarctl install https://github.com/flybywiresim/a32nx
  hangarctl install git@github.com:user/livery-pack.git`,
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

		addon, err := manager.Install(cmd.Context(), args[0], progress)
		if err != nil {
			return fmt.Errorf("install failed: %w", err)
		}

		fmt.Println(styles.FormatSuccess(fmt.Sprintf("Installed %s v%s",
			addon.Metadata().Title(), addon.Metadata().Version())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
