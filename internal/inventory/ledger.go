package inventory

import (
	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
)

// DefaultTolerance absorbs floating-point noise from quantity arithmetic when
// comparing server-reported stock against the ledger-derived value.
const DefaultTolerance = 0.01

// ExpectedStock computes the ledger-derived stock for an item:
// the sum of receipt line quantities referencing the item minus the sum of
// issue line quantities referencing it. Pure function; lines for other items
// contribute nothing, and no lines at all yields zero.
func ExpectedStock(itemID uuid.UUID, receiptLines []entity.ReceiptDetail, issueLines []entity.IssueDetail) float64 {
	var total float64
	for _, line := range receiptLines {
		if line.ItemID == itemID {
			total += line.Quantity
		}
	}
	for _, line := range issueLines {
		if line.ItemID == itemID {
			total -= line.Quantity
		}
	}
	return total
}

// TotalReceived sums receipt line quantities for an item.
func TotalReceived(itemID uuid.UUID, receiptLines []entity.ReceiptDetail) float64 {
	var total float64
	for _, line := range receiptLines {
		if line.ItemID == itemID {
			total += line.Quantity
		}
	}
	return total
}

// TotalIssued sums issue line quantities for an item.
func TotalIssued(itemID uuid.UUID, issueLines []entity.IssueDetail) float64 {
	var total float64
	for _, line := range issueLines {
		if line.ItemID == itemID {
			total += line.Quantity
		}
	}
	return total
}

// LedgerPolicy decides which issue statuses count against the ledger.
//
// Upstream behavior treats every issue as stock-affecting regardless of status,
// even though only confirmed issues have actually decremented stock. That
// mapping is kept as the default here, but it is an explicit, injectable policy
// rather than an assumption buried in the arithmetic.
type LedgerPolicy struct {
	// StockAffectingStatuses lists the issue statuses whose lines feed the
	// ledger. Empty means all statuses.
	StockAffectingStatuses []enum.IssueStatus
}

// DefaultLedgerPolicy counts issues of every status, matching the behavior the
// reconciliation screen has always shown.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{}
}

// ConfirmedOnlyLedgerPolicy counts only issues that have actually moved stock.
func ConfirmedOnlyLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{
		StockAffectingStatuses: []enum.IssueStatus{
			enum.IssueStatusConfirmed,
			enum.IssueStatusDelivered,
		},
	}
}

// Affects reports whether an issue with the given status counts against stock.
func (p LedgerPolicy) Affects(status enum.IssueStatus) bool {
	if len(p.StockAffectingStatuses) == 0 {
		return true
	}
	for _, s := range p.StockAffectingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// SelectIssueLines flattens the lines of all issues the policy considers
// stock-affecting.
func (p LedgerPolicy) SelectIssueLines(issues []entity.Issue) []entity.IssueDetail {
	var lines []entity.IssueDetail
	for _, issue := range issues {
		if p.Affects(issue.Status) {
			lines = append(lines, issue.Details...)
		}
	}
	return lines
}

// FlattenReceiptLines collects the lines of all receipts. Receipts have no
// lifecycle; every line counts.
func FlattenReceiptLines(receipts []entity.Receipt) []entity.ReceiptDetail {
	var lines []entity.ReceiptDetail
	for _, receipt := range receipts {
		lines = append(lines, receipt.Details...)
	}
	return lines
}
