package model

import "time"

// Assignee is a named, colored label scoped to one category. Assignees are
// collaborator tags, not accounts.
type Assignee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"index" json:"categoryId"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TodoAssignee joins todos to assignees within a category.
type TodoAssignee struct {
	TodoID     uint      `gorm:"primaryKey" json:"todoId"`
	AssigneeID uint      `gorm:"primaryKey" json:"assigneeId"`
	CreatedAt  time.Time `json:"createdAt"`
}
