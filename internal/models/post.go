package models

import (
	"database/sql"
	"time"
)

// Post is a single published entry. Ordering on every timeline is
// created_at descending with id descending as the tiebreak.
type Post struct {
	ID             int            `db:"id" json:"id"`
	Text           string         `db:"text" json:"text"`
	AuthorID       int            `db:"author_id" json:"author_id"`
	AuthorUsername string         `db:"author_username" json:"author_username"`
	GroupID        sql.NullInt64  `db:"group_id" json:"-"`
	GroupSlug      sql.NullString `db:"group_slug" json:"-"`
	ImagePath      sql.NullString `db:"image_path" json:"-"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// PostView is the API-facing shape of a post with optional fields flattened.
type PostView struct {
	ID             int       `json:"id"`
	Text           string    `json:"text"`
	AuthorID       int       `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	GroupSlug      string    `json:"group_slug,omitempty"`
	ImagePath      string    `json:"image_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// View converts a Post row into its API shape.
func (p Post) View() PostView {
	view := PostView{
		ID:             p.ID,
		Text:           p.Text,
		AuthorID:       p.AuthorID,
		AuthorUsername: p.AuthorUsername,
		CreatedAt:      p.CreatedAt,
	}
	if p.GroupSlug.Valid {
		view.GroupSlug = p.GroupSlug.String
	}
	if p.ImagePath.Valid {
		view.ImagePath = p.ImagePath.String
	}
	return view
}

// PostViews converts a slice of rows.
func PostViews(posts []Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, p.View())
	}
	return views
}

// PostEvent is emitted over timeline websocket connections.
type PostEvent struct {
	Type string    `json:"type"`
	Post *PostView `json:"post,omitempty"`
}
