package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

var listSelectedOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged addons",
	Long:  `List the addons in the catalog with their selection state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getManager()
		if err != nil {
			return err
		}

		cat, err := manager.Catalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		addons := cat.AllAddons()
		if listSelectedOnly {
			addons = cat.SelectedAddons()
		}

		if len(addons) == 0 {
			fmt.Println("Catalog is empty")
			fmt.Println("\nScan your community folder with: hangarctl scan")
			return nil
		}

		// Use tabwriter for aligned output
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			styles.Title.Render("ID"),
			styles.Title.Render("TITLE"),
			styles.Title.Render("TYPE"),
			styles.Title.Render("VERSION"),
			styles.Title.Render("CREATOR"),
			styles.Title.Render("STATUS"),
		)

		for _, addon := range addons {
			md := addon.Metadata()
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				addon.ID()[:12],
				md.Title(),
				md.ContentType(),
				md.Version(),
				md.Creator(),
				styles.FormatSelection(addon.IsSelected()),
			)
		}

		_ = w.Flush()

		fmt.Printf("\n%s\n", styles.FormatCount(len(cat.SelectedAddons()), cat.Len()))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listSelectedOnly, "selected", "s", false, "Only show selected addons")
	rootCmd.AddCommand(listCmd)
}
