package model

import "time"

// Todo is a single item. CategoryID is nullable: a todo without a category
// lives in the owner's inbox. IsCompleted and CompletedAt are always written
// together by the toggle path.
type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index" json:"userId"`
	CategoryID  *uint      `gorm:"index" json:"categoryId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
	SortOrder   int        `gorm:"default:0" json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Assignees []Assignee `gorm:"many2many:todo_assignees" json:"assignees,omitempty"`
}
