package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{ReportStatusPending, ReportStatusInProgress, true},
		{ReportStatusInProgress, ReportStatusCompleted, true},
		{ReportStatusInProgress, ReportStatusVerified, true},
		{ReportStatusCompleted, ReportStatusVerified, true},
		{ReportStatusPending, ReportStatusVerified, false},
		{ReportStatusPending, ReportStatusCompleted, false},
		{ReportStatusVerified, ReportStatusInProgress, false},
		{ReportStatusPending, ReportStatusCancelled, true},
		{ReportStatusInProgress, ReportStatusCancelled, true},
		{ReportStatusCompleted, ReportStatusCancelled, true},
		{ReportStatusCancelled, ReportStatusCancelled, false},
		{ReportStatusVerified, ReportStatusCancelled, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestValidReportStatus(t *testing.T) {
	assert.True(t, ValidReportStatus(ReportStatusPending))
	assert.True(t, ValidReportStatus(ReportStatusCancelled))
	assert.False(t, ValidReportStatus("lost"))
	assert.False(t, ValidReportStatus(""))
}

func TestTransactionSigned(t *testing.T) {
	earned := Transaction{Type: TransactionEarnedReport, Amount: 10}
	collected := Transaction{Type: TransactionEarnedCollect, Amount: 20}
	redeemed := Transaction{Type: TransactionRedeemed, Amount: 5}

	assert.Equal(t, 10, earned.Signed())
	assert.Equal(t, 20, collected.Signed())
	assert.Equal(t, -5, redeemed.Signed())
}

func TestTransactionViewDate(t *testing.T) {
	tx := Transaction{
		Type:   TransactionEarnedReport,
		Amount: 10,
		Date:   time.Date(2025, 6, 3, 15, 4, 5, 0, time.UTC),
	}
	assert.Equal(t, "2025-06-03", tx.ToView().Date)
}
