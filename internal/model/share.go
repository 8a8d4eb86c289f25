package model

import "time"

// Permission is the access level a caller holds on a category.
type Permission string

const (
	PermissionNone  Permission = "none"
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// CategoryShare is a directed grant: the owner lets SharedWithUserID access
// the category at the given level. At most one grant exists per
// (category, recipient) pair.
type CategoryShare struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CategoryID       uint       `gorm:"index;uniqueIndex:idx_category_recipient" json:"categoryId"`
	OwnerID          uint       `gorm:"index" json:"ownerId"`
	SharedWithUserID uint       `gorm:"uniqueIndex:idx_category_recipient" json:"sharedWithUserId"`
	Permission       Permission `json:"permission"`
	CreatedAt        time.Time  `json:"createdAt"`

	Category       *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SharedWithUser *User     `gorm:"foreignKey:SharedWithUserID" json:"sharedWithUser,omitempty"`
}
