// Package settlement turns a log of shared expenses into net balances and a
// short list of transfers that settles them.
//
// The pipeline has three steps, each a pure function over its inputs:
//
//   - Split distributes an expense total over participants from weights
//     (percentages, share counts or exact amounts) so the shares sum exactly
//     to the total at currency precision.
//   - ComputeBalances reduces an expense log to one signed balance per
//     participant. Positive means the participant is owed money.
//   - Settle matches debtors with creditors greedily, largest first.
//
// Settle is a heuristic. It produces at most debtors+creditors-1 transfers
// but does not search for the minimum transfer count, which is NP-hard in
// general.
//
// Amounts are decimal.Decimal values rounded to two places. Differences up to
// Tolerance are treated as zero.
package settlement
