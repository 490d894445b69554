package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// TransactionFilter holds optional filter parameters for listing
// transactions. All supplied predicates are combined with logical AND.
//
// Search matches case-insensitively against description or note. MinAmount
// and MaxAmount are inclusive bounds; the HTTP layer treats a value of zero
// as "not provided", so "amount >= 0" cannot be requested explicitly.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Kind      *models.TransactionKind
	Category  *string
	Search    *string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// TransactionChanges holds the fields of a partial update. Nil fields are
// left untouched.
type TransactionChanges struct {
	Description *string
	Amount      *decimal.Decimal
	Kind        *models.TransactionKind
	Category    *string
	OccurredOn  *time.Time
	Note        *string
}

// TransactionServicer defines the contract for transaction-related business
// logic. Every method takes the owning user's ID as its first argument and
// never exposes another user's records.
type TransactionServicer interface {
	CreateTransaction(userID uint, description string, amount decimal.Decimal, kind models.TransactionKind, category string, occurredOn time.Time, note string) (*models.Transaction, error)
	ListTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.ListResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, changes TransactionChanges) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}
