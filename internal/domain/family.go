package domain

import (
	"strings" // Name trimming
	"time"    // Timestamps
)

// Membership roles inside a family
const (
	MemberOwner  = "owner"  // Creator of the family
	MemberMember = "member" // Invited member
)

// Family Model
type Family struct {
	ID        uint      `gorm:"primaryKey" json:"id"`           // Primary key
	Name      string    `gorm:"size:128;not null" json:"name"`  // Display name
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"` // User that created the family
	CreatedAt time.Time `json:"created_at"`                     // Creation time
}

// NewFamily validates and builds a family owned by ownerID
func NewFamily(ownerID uint, name string) (Family, error) {
	name = strings.TrimSpace(name)
	if ownerID == 0 {
		return Family{}, ErrInvalidUser
	}
	if name == "" {
		return Family{}, ErrInvalidName
	}
	return Family{Name: name, OwnerID: ownerID}, nil
}

// FamilyMember links a user to a family; the composite key keeps one row per pair
type FamilyMember struct {
	FamilyID uint      `gorm:"primaryKey;autoIncrement:false" json:"family_id"` // Family reference
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`   // User reference
	Role     string    `gorm:"size:16;not null" json:"role"`                    // owner or member
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`                 // Join time
}

// NewMembership validates and builds a membership record
func NewMembership(familyID, userID uint, role string) (FamilyMember, error) {
	if familyID == 0 {
		return FamilyMember{}, ErrInvalidFamily
	}
	if userID == 0 {
		return FamilyMember{}, ErrInvalidUser
	}
	if role != MemberOwner {
		role = MemberMember
	}
	return FamilyMember{FamilyID: familyID, UserID: userID, Role: role}, nil
}
