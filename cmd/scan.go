package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the community folder into the catalog",
	Long: `Walk the community folder, parse each package's manifest and reconcile
the catalog: new packages are added, changed packages are refreshed (your
selection survives) and records for deleted packages are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}

		report, err := manager.Rescan(cmd.Context())
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		fmt.Println(styles.FormatSuccess(fmt.Sprintf("Scanned %d package(s)", report.Discovered)))
		fmt.Printf("  added:   %d\n", report.Added)
		fmt.Printf("  updated: %d\n", report.Updated)
		fmt.Printf("  removed: %d\n", report.Removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
