package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/tallyup/internal/models"
	"github.com/mmynk/tallyup/internal/settlement"
)

// amount reads a YAML scalar such as 12.5 or "12.50" as an exact decimal.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a number", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q", node.Line, node.Value)
	}
	a.Decimal = d
	return nil
}

// ledgerFile is the on-disk ledger format read by the CLI.
type ledgerFile struct {
	Name         string        `yaml:"name"`
	Currency     string        `yaml:"currency"`
	Participants []string      `yaml:"participants"`
	Expenses     []expenseFile `yaml:"expenses"`
	Payments     []paymentFile `yaml:"payments"`
}

type expenseFile struct {
	Description string            `yaml:"description"`
	Amount      amount            `yaml:"amount"`
	PaidBy      string            `yaml:"paid_by"`
	Split       string            `yaml:"split"`
	Weights     map[string]amount `yaml:"weights"`
}

type paymentFile struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Amount amount `yaml:"amount"`
}

// book is a ledger file with every entry validated.
type book struct {
	name         string
	currency     string
	participants []string
	expenses     []settlement.Expense
	payments     []settlement.Payment
}

func readBook(path string) (*book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeBook(f)
}

func decodeBook(r io.Reader) (*book, error) {
	var lf ledgerFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&lf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse ledger: %w", err)
	}

	b := &book{
		name:         lf.Name,
		currency:     lf.Currency,
		participants: settlement.NormalizeParticipants(lf.Participants),
	}
	if b.currency != "" && !models.IsCurrency(b.currency) {
		return nil, fmt.Errorf("unsupported currency %q", b.currency)
	}
	if len(b.participants) == 0 {
		return nil, fmt.Errorf("ledger has no participants")
	}

	for i, ef := range lf.Expenses {
		weights := make(map[string]decimal.Decimal, len(ef.Weights))
		for name, w := range ef.Weights {
			weights[name] = w.Decimal
		}
		e, err := settlement.NewExpense(ef.Description, ef.Amount.Decimal, ef.PaidBy, b.participants, settlement.SplitMode(ef.Split), weights)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i+1, err)
		}
		b.expenses = append(b.expenses, e)
	}
	for i, pf := range lf.Payments {
		p, err := settlement.NewPayment(pf.From, pf.To, pf.Amount.Decimal, b.participants)
		if err != nil {
			return nil, fmt.Errorf("payment %d: %w", i+1, err)
		}
		b.payments = append(b.payments, p)
	}
	return b, nil
}

func (b *book) summary() (settlement.Summary, error) {
	return settlement.Summarize(b.participants, b.expenses, b.payments)
}
