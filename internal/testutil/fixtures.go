package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fintrack/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates an active user with the given email. The
// password is always "password123".
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateInactiveTestUser creates a deactivated user.
func CreateInactiveTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate test user: %v", err)
	}
	user.IsActive = false
	return user
}

// CreateTestTransaction creates a transaction owned by userID. The amount is
// given as a decimal string such as "123.45".
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, description, amount string, kind models.TransactionKind, category string, occurredOn time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		UserID:      userID,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		Category:    category,
		OccurredOn:  occurredOn,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// Date builds a midnight-UTC calendar date for fixtures and filters.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
