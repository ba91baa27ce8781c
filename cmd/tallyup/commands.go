package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/tallyup/internal/export"
	"github.com/mmynk/tallyup/internal/settlement"
)

func newBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <ledger.yaml>",
		Short: "Print net balances and the transfers that settle them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBook(args[0])
			if err != nil {
				return err
			}
			s, err := b.summary()
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), b, s)
		},
	}
}

func newExportCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "export <ledger.yaml>",
		Short: "Write transfers or expenses as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBook(args[0])
			if err != nil {
				return err
			}
			switch kind {
			case "transfers":
				s, err := b.summary()
				if err != nil {
					return err
				}
				return export.WriteTransfers(cmd.OutOrStdout(), b.currency, s.Transfers)
			case "expenses":
				return export.WriteExpenses(cmd.OutOrStdout(), b.currency, b.expenses)
			default:
				return fmt.Errorf("unknown export kind %q (want transfers or expenses)", kind)
			}
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "transfers", "what to export: transfers or expenses")
	return cmd
}

func newSplitCmd() *cobra.Command {
	var (
		mode    string
		weights []string
	)
	cmd := &cobra.Command{
		Use:   "split <amount> <participant>...",
		Short: "Preview how an amount divides between participants",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			parsed, err := parseWeights(weights)
			if err != nil {
				return err
			}
			participants := settlement.NormalizeParticipants(args[1:])
			if len(participants) == 0 {
				return fmt.Errorf("no participants")
			}
			e, err := settlement.NewExpense("", total, participants[0], participants, settlement.SplitMode(mode), parsed)
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "Participant", "Share")
			for _, s := range e.Shares {
				table.Append([]string{s.Participant, s.Amount.StringFixed(settlement.Places)})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "equal", "split mode: equal, percent, shares or exact")
	cmd.Flags().StringArrayVar(&weights, "weight", nil, "participant weight as name=value (repeatable)")
	return cmd
}

func parseWeights(pairs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("weight %q: want name=value", pair)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = d
	}
	return out, nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func printSummary(w io.Writer, b *book, s settlement.Summary) error {
	title := b.name
	if title == "" {
		title = "Ledger"
	}
	if b.currency != "" {
		title += " (" + b.currency + ")"
	}
	fmt.Fprintf(w, "%s: %d expenses, %d payments\n\n", title, len(b.expenses), len(b.payments))

	balances := newTable(w, "Participant", "Paid", "Owed", "Net")
	for _, bal := range s.Balances {
		balances.Append([]string{
			bal.Participant,
			bal.Paid.StringFixed(settlement.Places),
			bal.Owed.StringFixed(settlement.Places),
			bal.Net.StringFixed(settlement.Places),
		})
	}
	balances.Render()
	fmt.Fprintln(w)

	if s.Settled() {
		fmt.Fprintln(w, "All settled. Nobody owes anything.")
		return nil
	}
	transfers := newTable(w, "From", "To", "Amount")
	for _, t := range s.Transfers {
		transfers.Append([]string{t.From, t.To, t.Amount.StringFixed(settlement.Places)})
	}
	transfers.Render()
	return nil
}
