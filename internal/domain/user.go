package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                       // Primary key
	Email    string `gorm:"uniqueIndex;size:191;not null" json:"email"` // Unique email, case-sensitive as stored
	Password string `gorm:"not null" json:"-"`                          // Bcrypt hash, never serialized
	Name     string `gorm:"size:191" json:"name"`                       // Optional display name
}
