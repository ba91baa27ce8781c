// Command tallyup settles a ledger file offline.
//
// Usage:
//
//	tallyup balances trip.yaml
//	tallyup export trip.yaml --kind expenses > expenses.csv
//	tallyup split 100 Ana Ben Cy --mode shares --weight Ana=2
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tallyup",
		Short:         "Split shared expenses and work out who pays whom",
		SilenceUsage: true,
	}
	root.AddCommand(newBalancesCmd(), newExportCmd(), newSplitCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
