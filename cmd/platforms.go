package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/config"
	"github.com/hangarhub/hangarctl/internal/publish"
	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var platformsCheck bool

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List available publishing platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		for _, name := range publish.Names() {
			line := styles.Bullet.String() + " " + name

			if platformsCheck {
				platform, err := publish.New(name, cfg, getLogger())
				if err != nil {
					line += "  " + styles.FormatWarning("not configured: "+err.Error())
				} else if platform.ValidateCredentials(cmd.Context()) {
					line += "  " + styles.SuccessText.Render("reachable")
				} else {
					line += "  " + styles.ErrorText.Render("unreachable")
				}
			}

			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	platformsCmd.Flags().BoolVarP(&platformsCheck, "check", "c", false, "Probe each configured platform endpoint")
	rootCmd.AddCommand(platformsCmd)
}
