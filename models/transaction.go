package models

import (
	"strings"
	"time"
)

// Ledger entry types. Earned types add to the balance, redeemed subtracts.
const (
	TransactionEarnedReport  = "earned_report"
	TransactionEarnedCollect = "earned_collect"
	TransactionRedeemed      = "redeemed"
)

// Transaction is an append-only ledger entry. The ledger is the source of
// truth for a user's balance; Reward.Points is only a cache of its sum.
type Transaction struct {
	Model
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Type        string    `json:"type" gorm:"type:varchar(20);not null"`
	Amount      int       `json:"amount" gorm:"not null"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	Date        time.Time `json:"date" gorm:"index"`
}

// ValidTransactionType reports whether t names a known ledger entry type.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionEarnedReport, TransactionEarnedCollect, TransactionRedeemed:
		return true
	}
	return false
}

// Signed returns the amount with the sign the ledger reduction applies:
// positive for earned entries, negative for redemptions.
func (t *Transaction) Signed() int {
	if strings.HasPrefix(t.Type, "earned") {
		return t.Amount
	}
	return -t.Amount
}

// TransactionView is a ledger entry at the service boundary, with the date
// serialized as YYYY-MM-DD.
type TransactionView struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (t *Transaction) ToView() TransactionView {
	return TransactionView{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
	}
}
