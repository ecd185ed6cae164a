package service

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"strings" // Username normalization
	"time"    // Membership timestamps

	"tetconnect/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // ON CONFLICT support
)

// MembershipChecker answers whether a user belongs to a family
type MembershipChecker interface {
	IsMember(ctx context.Context, familyID, userID uint) (bool, error)
}

// FamilyService manages families and their membership records
type FamilyService struct {
	db *gorm.DB
}

// NewFamilyService creates a FamilyService
func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

// Create makes a family owned by ownerID and enrolls the owner as a member
func (s *FamilyService) Create(ctx context.Context, ownerID uint, name string) (domain.Family, error) {
	family, err := domain.NewFamily(ownerID, name)
	if err != nil {
		return domain.Family{}, &Error{Kind: KindBadRequest, Msg: "invalid family", Err: err}
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		owner, err := domain.NewMembership(family.ID, ownerID, domain.MemberOwner)
		if err != nil {
			return err
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		return domain.Family{}, unexpected("create family", err)
	}
	logrus.WithFields(logrus.Fields{
		"family_id": family.ID,
		"owner_id":  ownerID,
	}).Info("Family created")
	return family, nil
}

// AddMember enrolls the user called username. Only the owner may add members;
// adding someone twice returns the existing membership.
func (s *FamilyService) AddMember(ctx context.Context, familyID, actorID uint, username string) (domain.FamilyMember, error) {
	if familyID == 0 {
		return domain.FamilyMember{}, ErrMissingFamily
	}
	db := s.db.WithContext(ctx)
	var family domain.Family
	if err := db.First(&family, familyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FamilyMember{}, ErrFamilyNotFound
		}
		return domain.FamilyMember{}, unexpected("load family", err)
	}
	if family.OwnerID != actorID {
		return domain.FamilyMember{}, ErrNotOwner
	}
	var user domain.User
	if err := db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FamilyMember{}, ErrUserNotFound
		}
		return domain.FamilyMember{}, unexpected("load user", err)
	}
	member, err := domain.NewMembership(familyID, user.ID, domain.MemberMember)
	if err != nil {
		return domain.FamilyMember{}, &Error{Kind: KindBadRequest, Msg: "invalid membership", Err: err}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
		return domain.FamilyMember{}, unexpected("create membership", err)
	}
	if err := db.Where("family_id = ? AND user_id = ?", familyID, user.ID).First(&member).Error; err != nil {
		return domain.FamilyMember{}, unexpected("load membership", err)
	}
	logrus.WithFields(logrus.Fields{
		"family_id": familyID,
		"user_id":   user.ID,
		"actor_id":  actorID,
	}).Info("Family member added")
	return member, nil
}

// MemberView is a membership joined with the member's username
type MemberView struct {
	UserID   uint      `json:"user_id"`   // Member
	Username string    `json:"username"`  // Member name
	Role     string    `json:"role"`      // owner or member
	JoinedAt time.Time `json:"joined_at"` // Join time
}

// Members lists the family's members; only members may look
func (s *FamilyService) Members(ctx context.Context, familyID, actorID uint) ([]MemberView, error) {
	if familyID == 0 {
		return nil, ErrMissingFamily
	}
	ok, err := s.IsMember(ctx, familyID, actorID)
	if err != nil {
		return nil, unexpected("check membership", err)
	}
	if !ok {
		return nil, ErrNotMember
	}
	members := []MemberView{}
	err = s.db.WithContext(ctx).
		Table("family_members").
		Select("family_members.user_id, users.username, family_members.role, family_members.joined_at").
		Joins("JOIN users ON users.id = family_members.user_id").
		Where("family_members.family_id = ?", familyID).
		Order("family_members.joined_at asc, family_members.user_id asc").
		Scan(&members).Error
	if err != nil {
		return nil, unexpected("list members", err)
	}
	return members, nil
}

// IsMember reports whether userID holds a membership in familyID
func (s *FamilyService) IsMember(ctx context.Context, familyID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.FamilyMember{}).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
