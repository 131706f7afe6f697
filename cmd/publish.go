package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var publishPlatform string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the selected addons to a platform",
	Long: `Send the currently selected addons to a publishing platform as a
formatted message. Remote failures are reported without aborting; check the
exit status for the outcome.

Configure webhooks via environment variables or a .env file, for example:
  HANGARCTL_DISCORD_WEBHOOK_URL=https://discord.com/api/webhooks/...
  HANGARCTL_SLACK_WEBHOOK_URL=https://hooks.slack.com/services/...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}

		result, err := manager.Publish(cmd.Context(), publishPlatform)
		if err != nil {
			return fmt.Errorf("cannot publish to %s: %w", publishPlatform, err)
		}

		if !result.Success() {
			fmt.Println(styles.FormatError(result.Message()))
			for _, e := range result.Errors() {
				fmt.Println("  " + styles.MutedText.Render(e))
			}
			return fmt.Errorf("publish to %s did not complete", publishPlatform)
		}

		fmt.Println(styles.FormatSuccess(result.Message()))
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVarP(&publishPlatform, "platform", "p", "discord", "Target platform (see 'hangarctl platforms')")
	rootCmd.AddCommand(publishCmd)
}
