package domain

// Roles a user account can hold
const (
	RoleUser  = "user"  // Regular player
	RoleAdmin = "admin" // Operator allowed to grant chips
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`              // Primary key
	Username string `gorm:"unique;not null" json:"username"`   // Unique username
	Password string `gorm:"not null" json:"-"`                 // Hashed password
	Role     string `gorm:"not null;default:user" json:"role"` // Role: user or admin
}
