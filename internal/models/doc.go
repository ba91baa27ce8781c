// Package models defines the persisted domain models for Tallyup.
//
// # Models
//
//   - User: a registered account; owns ledgers.
//   - Ledger: a shared-expense session with its participants, an append-only
//     expense log and a payment log.
//   - Expense: one logged expense, wrapping the settlement engine's Expense
//     with storage identity.
//   - Payment: money actually handed over between participants.
//
// Participants are identified by display name within a ledger. Names are
// unique case-insensitively.
//
// Balances and transfers are never stored; they are recomputed from the logs
// with Ledger.Summary.
package models
