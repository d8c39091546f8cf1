package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"tribune/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

// PostFilter selects which timeline a listing serves. Zero values mean
// "no restriction"; at most one of the narrowing fields is set per call.
type PostFilter struct {
	AuthorID   int // only posts by this author
	GroupID    int // only posts in this group
	FollowedBy int // only posts by authors this user follows
}

// PostRepository abstracts post persistence.
type PostRepository interface {
	CreatePost(ctx context.Context, authorID int, text string, groupID *int, imagePath string) (models.Post, error)
	UpdatePost(ctx context.Context, postID int, text string, groupID *int) (models.Post, error)
	GetPost(ctx context.Context, postID int) (models.Post, error)
	CountPosts(ctx context.Context, filter PostFilter) (int, error)
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error)
}

// PostRepo is a sqlx implementation of PostRepository.
type PostRepo struct {
	db *sqlx.DB
}

// NewPostRepo constructs a PostRepo.
func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db: db}
}

const postColumns = `p.id, p.text, p.author_id, u.username AS author_username,
    p.group_id, g.slug AS group_slug, p.image_path, p.created_at`

const postFrom = `FROM posts p
    JOIN users u ON u.id = p.author_id
    LEFT JOIN groups g ON g.id = p.group_id`

// CreatePost stores a new post. created_at is assigned by the store and
// never changes afterwards.
func (r *PostRepo) CreatePost(ctx context.Context, authorID int, text string, groupID *int, imagePath string) (models.Post, error) {
	var id int
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO posts (text, author_id, group_id, image_path) VALUES ($1, $2, $3, $4) RETURNING id`,
		text, authorID, nullableInt(groupID), nullableString(imagePath)).Scan(&id)
	if err != nil {
		return models.Post{}, err
	}
	return r.GetPost(ctx, id)
}

// UpdatePost replaces the text and group of an existing post. Authorization
// is the caller's concern; created_at and author are left untouched.
func (r *PostRepo) UpdatePost(ctx context.Context, postID int, text string, groupID *int) (models.Post, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET text=$1, group_id=$2 WHERE id=$3`,
		text, nullableInt(groupID), postID)
	if err != nil {
		return models.Post{}, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return models.Post{}, err
	}
	if count == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return r.GetPost(ctx, postID)
}

// GetPost retrieves a single post with its author and group resolved.
func (r *PostRepo) GetPost(ctx context.Context, postID int) (models.Post, error) {
	var post models.Post
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id=$1`, postColumns, postFrom)
	err := r.db.GetContext(ctx, &post, query, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	return post, err
}

// CountPosts returns the number of posts matching the filter.
func (r *PostRepo) CountPosts(ctx context.Context, filter PostFilter) (int, error) {
	where, args := buildPostWhere(filter)
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts p`+where, args...)
	return total, err
}

// ListPosts returns one window of the filtered timeline under the shared
// total order: created_at descending, id descending.
func (r *PostRepo) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error) {
	where, args := buildPostWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s %s%s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		postColumns, postFrom, where, len(args)-1, len(args))

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, args...)
	return posts, err
}

func buildPostWhere(filter PostFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	if filter.AuthorID > 0 {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id=$%d", len(args)))
	}
	if filter.GroupID > 0 {
		args = append(args, filter.GroupID)
		conditions = append(conditions, fmt.Sprintf("p.group_id=$%d", len(args)))
	}
	if filter.FollowedBy > 0 {
		args = append(args, filter.FollowedBy)
		conditions = append(conditions, fmt.Sprintf("p.author_id IN (SELECT author_id FROM follows WHERE user_id=$%d)", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
