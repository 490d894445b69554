package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles transaction-related business logic. All reads
// and writes are scoped to the owning user; the owner predicate is applied
// before any optional filter.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new income or expense entry owned by userID.
func (s *transactionService) CreateTransaction(
	userID uint,
	description string,
	amount decimal.Decimal,
	kind models.TransactionKind,
	category string,
	occurredOn time.Time,
	note string,
) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		OccurredOn:  occurredOn,
		Note:        note,
	}

	if err := validateTransaction(transaction); err != nil {
		return nil, err
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// ListTransactions retrieves a bounded, paginated window of the user's
// transactions matching the filter, newest first, along with the total count
// of matching rows ignoring limit and offset.
func (s *transactionService) ListTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.ListResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("occurred_on DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewListResponse(transactions, page, total)
	return &result, nil
}

// applyTransactionFilters adds the optional predicates, AND-combined. The
// end-date bound is inclusive; the system this replaces compared end_date
// with >= like start_date, which made it useless as an upper bound.
func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("occurred_on >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("occurred_on <= ?", *f.EndDate)
	}
	if f.Kind != nil {
		q = q.Where("kind = ?", *f.Kind)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Search != nil {
		// LOWER + LIKE rather than ILIKE so the predicate behaves the same
		// on postgres and on the sqlite databases used in tests.
		like := "%" + *f.Search + "%"
		q = q.Where("(LOWER(description) LIKE LOWER(?) OR LOWER(note) LIKE LOWER(?))", like, like)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user. A
// record owned by someone else is indistinguishable from a missing one.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update to the user's transaction. Only
// non-nil fields of changes are touched; the result is re-validated against
// the same invariants as creation. The read-then-write runs in one database
// transaction so it cannot interleave with a concurrent delete of the row.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, changes TransactionChanges) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if changes.Description != nil {
			transaction.Description = *changes.Description
		}
		if changes.Amount != nil {
			transaction.Amount = *changes.Amount
		}
		if changes.Kind != nil {
			transaction.Kind = *changes.Kind
		}
		if changes.Category != nil {
			transaction.Category = *changes.Category
		}
		if changes.OccurredOn != nil {
			transaction.OccurredOn = *changes.OccurredOn
		}
		if changes.Note != nil {
			transaction.Note = *changes.Note
		}

		if err := validateTransaction(&transaction); err != nil {
			return err
		}

		// Save refreshes updated_at even when only one field changed.
		if err := tx.Save(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes the user's transaction immediately. There is no
// soft delete or undo.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrTransactionNotFound
		}
		return nil
	})
}

// validateTransaction enforces the field invariants shared by create and
// update.
func validateTransaction(t *models.Transaction) error {
	if t.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if len(t.Description) > 200 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 200 characters")
	}
	if !t.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !t.Kind.Valid() {
		return apperrors.ErrInvalidKind
	}
	if len(t.Category) > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be at most 100 characters")
	}
	if len(t.Note) > 1000 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "note must be at most 1000 characters")
	}
	if t.OccurredOn.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "occurred_on is required")
	}
	if isFutureDate(t.OccurredOn) {
		return apperrors.ErrFutureDate
	}
	return nil
}

// isFutureDate reports whether the calendar date of d falls after today, in
// UTC. Times within the current day are not future dates.
func isFutureDate(d time.Time) bool {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := d.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return day.After(today)
}
