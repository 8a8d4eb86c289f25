package model

import "time"

// Category groups todos under one owner. UserID is nullable: categories
// created before accounts existed have no owner and stay readable by
// anonymous visitors.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"userId"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`
	SortOrder   int       `gorm:"default:0" json:"order"`
	IsCollapsed bool      `gorm:"default:false" json:"isCollapsed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner     *User           `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Todos     []Todo          `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"todos,omitempty"`
	Assignees []Assignee      `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"assignees,omitempty"`
	Shares    []CategoryShare `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"shares,omitempty"`
}

// OwnedBy reports whether the category belongs to the given user id.
func (c Category) OwnedBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID
}
