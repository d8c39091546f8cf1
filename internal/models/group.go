package models

// Group is a named collection posts can be published into.
type Group struct {
	ID          int    `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}
