package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var infoCmd = &cobra.Command{
	Use:   "info <id|title>",
	Short: "Show addon details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}

		addon, err := resolveAddon(cmd.Context(), manager, args[0])
		if err != nil {
			return err
		}
		md := addon.Metadata()

		fmt.Println(styles.AddonTitle.Render(md.Title()))
		fmt.Println()
		fmt.Printf("ID:            %s\n", addon.ID())
		fmt.Printf("Creator:       %s\n", md.Creator())
		fmt.Printf("Version:       %s\n", md.Version())
		fmt.Printf("Type:          %s\n", md.ContentType())
		fmt.Printf("Package:       %s\n", md.PackageVersion())
		fmt.Printf("Min. game:     %s\n", md.MinimumGameVersion())
		fmt.Printf("Selected:      %s\n", styles.FormatSelection(addon.IsSelected()))
		fmt.Printf("Discovered:    %s\n", addon.DiscoveredAt().Format("2006-01-02 15:04"))
		fmt.Printf("Path:          %s\n", addon.InstallPath())

		if notes := md.ReleaseNotes(); len(notes) > 0 {
			fmt.Println("\nRelease notes:")
			for section, text := range notes {
				fmt.Printf("  %s: %s\n", section, text)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
