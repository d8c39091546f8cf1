package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"tribune/internal/models"
)

// CommentRepository abstracts comment persistence. Comments are append-only.
type CommentRepository interface {
	CreateComment(ctx context.Context, postID, authorID int, text string) (models.Comment, error)
	ListComments(ctx context.Context, postID int) ([]models.Comment, error)
}

// CommentRepo is a sqlx implementation of CommentRepository.
type CommentRepo struct {
	db *sqlx.DB
}

// NewCommentRepo constructs a CommentRepo.
func NewCommentRepo(db *sqlx.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// CreateComment stores a comment in a single insert.
func (r *CommentRepo) CreateComment(ctx context.Context, postID, authorID int, text string) (models.Comment, error) {
	var comment models.Comment
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO comments (post_id, author_id, text) VALUES ($1, $2, $3)
         RETURNING id, post_id, author_id, text, created_at`,
		postID, authorID, text).
		Scan(&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Text, &comment.CreatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	err = r.db.GetContext(ctx, &comment.AuthorUsername, `SELECT username FROM users WHERE id=$1`, authorID)
	return comment, err
}

// ListComments returns a post's comments in display order, oldest first.
func (r *CommentRepo) ListComments(ctx context.Context, postID int) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments,
		`SELECT c.id, c.post_id, c.author_id, u.username AS author_username, c.text, c.created_at
         FROM comments c
         JOIN users u ON u.id = c.author_id
         WHERE c.post_id=$1
         ORDER BY c.created_at ASC, c.id ASC`, postID)
	return comments, err
}
