package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of transaction
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the supported values.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindIncome || k == TransactionKindExpense
}

// Transaction represents a single income or expense entry. Amount is stored
// as numeric(12,2); it never passes through binary floating point on the way
// to or from the database. A transaction always belongs to exactly one user
// and is only ever visible to that user.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Description string          `gorm:"size:200;not null;index" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Kind        TransactionKind `gorm:"size:10;not null;index" json:"kind"`
	Category    string          `gorm:"size:100;index" json:"category"`
	OccurredOn  time.Time       `gorm:"type:date;not null;index" json:"occurred_on"`
	Note        string          `gorm:"type:text" json:"note"`
}
