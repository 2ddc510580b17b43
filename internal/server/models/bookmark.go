package models

import "time"

// Bookmark is a saved link owned by a user. Ownership is a single
// directional relation: the bookmark holds the owning user id and the
// "user's bookmarks" view is computed by query, not stored on the user.
type Bookmark struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Link        string    `json:"link"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
