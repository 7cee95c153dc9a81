package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a transaction file (.csv or .xlsx)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		txs, err := ingest.ReadFile(args[0])
		if err != nil {
			return err
		}

		m, store, err := initMonitor(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := m.IngestTransactions(cmd.Context(), txs); err != nil {
			return err
		}

		fmt.Printf("Ingested %d transactions from %s\n", len(txs), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
