package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Manage alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored alerts without re-evaluating rules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := initStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		alerts, err := store.ListAlerts(cmd.Context())
		if err != nil {
			return err
		}

		if len(alerts) == 0 {
			fmt.Println("No alerts.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CUSTOMER\tTOTAL AMOUNT\tSTATUS\tUPDATED")
		for _, a := range alerts {
			fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n",
				a.CustomerName, a.TotalAmount, a.Status, a.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var alertsSetStatusCmd = &cobra.Command{
	Use:   "set-status <customer> <status>",
	Short: "Set the review status of a customer's alert",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, store, err := initMonitor(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := m.UpdateStatus(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Alert status for %s set to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsSetStatusCmd)
	rootCmd.AddCommand(alertsCmd)
}
