package domain

import "time"

// Category groups products. At least one category always exists.
type Category struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product optionally belongs to a Category. CategoryTitle is filled on reads
// that join the category.
type Product struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CategoryID    *int64    `json:"category_id"`
	CategoryTitle *string   `json:"category_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// CategoryOption is the (id, title) pair used by category pickers.
type CategoryOption struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// AuditAction names a catalog mutation.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditEntry records who changed which catalog row and when.
type AuditEntry struct {
	Resource   string
	Action     AuditAction
	ResourceID int64
	ActorID    int64
	At         time.Time
}
