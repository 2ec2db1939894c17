package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ndtduy/agency-api/internal/domain/entity"
	"github.com/ndtduy/agency-api/internal/domain/enum"
	"github.com/stretchr/testify/require"
)

func receiptLine(itemID uuid.UUID, qty float64) entity.ReceiptDetail {
	return entity.ReceiptDetail{ItemID: itemID, Quantity: qty}
}

func issueLine(itemID uuid.UUID, qty float64) entity.IssueDetail {
	return entity.IssueDetail{ItemID: itemID, Quantity: qty}
}

func TestExpectedStockReceivedMinusIssued(t *testing.T) {
	itemID := uuid.New()

	receipts := []entity.ReceiptDetail{
		receiptLine(itemID, 100),
		receiptLine(itemID, 50.5),
	}
	issues := []entity.IssueDetail{
		issueLine(itemID, 30),
		issueLine(itemID, 20.5),
	}

	require.InDelta(t, 100.0, ExpectedStock(itemID, receipts, issues), 1e-9)
}

func TestExpectedStockIgnoresOtherItems(t *testing.T) {
	itemID := uuid.New()
	otherID := uuid.New()

	receipts := []entity.ReceiptDetail{
		receiptLine(itemID, 10),
		receiptLine(otherID, 999),
	}
	issues := []entity.IssueDetail{
		issueLine(otherID, 500),
		issueLine(itemID, 4),
	}

	require.InDelta(t, 6.0, ExpectedStock(itemID, receipts, issues), 1e-9)
}

func TestExpectedStockNoDocuments(t *testing.T) {
	require.Zero(t, ExpectedStock(uuid.New(), nil, nil))
}

func TestExpectedStockCanGoNegative(t *testing.T) {
	// More issued than received is a data problem, but the ledger arithmetic
	// itself must not clamp; reconciliation is what surfaces it.
	itemID := uuid.New()
	issues := []entity.IssueDetail{issueLine(itemID, 5)}

	require.InDelta(t, -5.0, ExpectedStock(itemID, nil, issues), 1e-9)
}

func TestTotalReceivedAndIssued(t *testing.T) {
	itemID := uuid.New()

	receipts := []entity.ReceiptDetail{
		receiptLine(itemID, 1.5),
		receiptLine(uuid.New(), 7),
		receiptLine(itemID, 2.5),
	}
	issues := []entity.IssueDetail{
		issueLine(itemID, 3),
	}

	require.InDelta(t, 4.0, TotalReceived(itemID, receipts), 1e-9)
	require.InDelta(t, 3.0, TotalIssued(itemID, issues), 1e-9)
}

func TestDefaultLedgerPolicyCountsEveryStatus(t *testing.T) {
	policy := DefaultLedgerPolicy()

	for _, status := range []enum.IssueStatus{
		enum.IssueStatusProcessing,
		enum.IssueStatusConfirmed,
		enum.IssueStatusDelivered,
		enum.IssueStatusPostponed,
	} {
		require.True(t, policy.Affects(status), "status %s should count", status)
	}
}

func TestConfirmedOnlyLedgerPolicy(t *testing.T) {
	policy := ConfirmedOnlyLedgerPolicy()

	require.False(t, policy.Affects(enum.IssueStatusProcessing))
	require.True(t, policy.Affects(enum.IssueStatusConfirmed))
	require.True(t, policy.Affects(enum.IssueStatusDelivered))
	require.False(t, policy.Affects(enum.IssueStatusPostponed))
}

func TestSelectIssueLinesFiltersByPolicy(t *testing.T) {
	itemID := uuid.New()

	issues := []entity.Issue{
		{Status: enum.IssueStatusProcessing, Details: []entity.IssueDetail{issueLine(itemID, 1)}},
		{Status: enum.IssueStatusConfirmed, Details: []entity.IssueDetail{issueLine(itemID, 2)}},
		{Status: enum.IssueStatusPostponed, Details: []entity.IssueDetail{issueLine(itemID, 4)}},
	}

	all := DefaultLedgerPolicy().SelectIssueLines(issues)
	require.Len(t, all, 3)
	require.InDelta(t, 7.0, TotalIssued(itemID, all), 1e-9)

	confirmed := ConfirmedOnlyLedgerPolicy().SelectIssueLines(issues)
	require.Len(t, confirmed, 1)
	require.InDelta(t, 2.0, TotalIssued(itemID, confirmed), 1e-9)
}

func TestFlattenReceiptLines(t *testing.T) {
	itemID := uuid.New()

	receipts := []entity.Receipt{
		{Details: []entity.ReceiptDetail{receiptLine(itemID, 1), receiptLine(itemID, 2)}},
		{Details: []entity.ReceiptDetail{receiptLine(itemID, 3)}},
	}

	lines := FlattenReceiptLines(receipts)
	require.Len(t, lines, 3)
	require.InDelta(t, 6.0, TotalReceived(itemID, lines), 1e-9)
}
