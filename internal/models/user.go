package models

// User represents the user model in the database. Email is stored and
// matched exactly as given. Deactivating a user disables authentication
// without deleting the record.
type User struct {
	Base
	Email        string        `gorm:"size:320;uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"size:200;not null" json:"-"`
	IsActive     bool          `gorm:"default:true;not null" json:"is_active"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
