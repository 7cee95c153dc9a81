package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Evaluate threshold rules and reconcile alerts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, store, err := initMonitor(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		alerts, err := m.EvaluateAndReconcile(cmd.Context())
		if err != nil {
			return err
		}

		if len(alerts) == 0 {
			fmt.Println("No alerts.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CUSTOMER\tTOTAL AMOUNT\tSTATUS\tRULES BROKEN")
		for _, a := range alerts {
			rules := make([]string, len(a.RulesBroken))
			for i, r := range a.RulesBroken {
				rules[i] = string(r)
			}
			fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n",
				a.CustomerName, a.TotalAmount, a.Status, strings.Join(rules, "; "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
