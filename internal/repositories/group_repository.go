package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tribune/internal/models"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrSlugTaken     = errors.New("group slug already taken")
)

// GroupRepository abstracts group persistence.
type GroupRepository interface {
	CreateGroup(ctx context.Context, title, slug, description string) (models.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
}

// GroupRepo is a sqlx implementation of GroupRepository.
type GroupRepo struct {
	db *sqlx.DB
}

// NewGroupRepo constructs a GroupRepo.
func NewGroupRepo(db *sqlx.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// CreateGroup stores a new group. Slugs are unique.
func (r *GroupRepo) CreateGroup(ctx context.Context, title, slug, description string) (models.Group, error) {
	var group models.Group
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO groups (title, slug, description) VALUES ($1, $2, $3) RETURNING id, title, slug, description`,
		title, slug, description).
		Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return models.Group{}, ErrSlugTaken
	}
	if err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// GetGroupBySlug fetches a single group by its URL slug.
func (r *GroupRepo) GetGroupBySlug(ctx context.Context, slug string) (models.Group, error) {
	var group models.Group
	err := r.db.GetContext(ctx, &group, `SELECT id, title, slug, description FROM groups WHERE slug=$1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, ErrGroupNotFound
	}
	return group, err
}

// ListGroups returns all groups ordered by title.
func (r *GroupRepo) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	err := r.db.SelectContext(ctx, &groups, `SELECT id, title, slug, description FROM groups ORDER BY title ASC`)
	return groups, err
}
