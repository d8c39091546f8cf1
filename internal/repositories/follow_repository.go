package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// FollowRepository abstracts the directed follow relation.
type FollowRepository interface {
	Follow(ctx context.Context, userID, authorID int) error
	Unfollow(ctx context.Context, userID, authorID int) error
	IsFollowing(ctx context.Context, userID, authorID int) (bool, error)
	FollowedAuthorIDs(ctx context.Context, userID int) ([]int, error)
}

// FollowRepo is a sqlx implementation of FollowRepository.
type FollowRepo struct {
	db *sqlx.DB
}

// NewFollowRepo constructs a FollowRepo.
func NewFollowRepo(db *sqlx.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Follow records the relation. The insert is an atomic get-or-create:
// concurrent identical calls leave exactly one row and none of them error.
func (r *FollowRepo) Follow(ctx context.Context, userID, authorID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (user_id, author_id) VALUES ($1, $2) ON CONFLICT (user_id, author_id) DO NOTHING`,
		userID, authorID)
	return err
}

// Unfollow removes the relation. Removing a relation that does not exist
// is a no-op.
func (r *FollowRepo) Unfollow(ctx context.Context, userID, authorID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id=$1 AND author_id=$2`, userID, authorID)
	return err
}

// IsFollowing reports whether userID follows authorID.
func (r *FollowRepo) IsFollowing(ctx context.Context, userID, authorID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE user_id=$1 AND author_id=$2)`, userID, authorID)
	return exists, err
}

// FollowedAuthorIDs returns the ids of every author userID follows.
func (r *FollowRepo) FollowedAuthorIDs(ctx context.Context, userID int) ([]int, error) {
	ids := []int{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT author_id FROM follows WHERE user_id=$1 ORDER BY author_id`, userID)
	return ids, err
}
