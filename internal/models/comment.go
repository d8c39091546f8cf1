package models

import "time"

// Comment belongs to exactly one post and is append-only.
type Comment struct {
	ID             int       `db:"id" json:"id"`
	PostID         int       `db:"post_id" json:"post_id"`
	AuthorID       int       `db:"author_id" json:"author_id"`
	AuthorUsername string    `db:"author_username" json:"author_username"`
	Text           string    `db:"text" json:"text"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
