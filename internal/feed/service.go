// Package feed composes the four timeline kinds: global, group, author and
// following. Every kind shares the same total order and pagination rules,
// so a page of any timeline is built the same way: resolve the filter,
// count, clamp the page number, fetch one window.
package feed

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"tribune/internal/models"
	"tribune/internal/pagination"
	"tribune/internal/repositories"
)

var tracer = otel.Tracer("tribune/feed")

// PostPage is one page of a timeline.
type PostPage = pagination.Page[models.PostView]

// Service builds ordered, paginated post listings.
type Service struct {
	posts    repositories.PostRepository
	groups   repositories.GroupRepository
	users    repositories.UserRepository
	pageSize int
}

// NewService constructs a feed Service. pageSize is the process-wide page
// length shared by all timelines.
func NewService(posts repositories.PostRepository, groups repositories.GroupRepository, users repositories.UserRepository, pageSize int) *Service {
	return &Service{posts: posts, groups: groups, users: users, pageSize: pageSize}
}

// Global returns one page of the site-wide timeline.
func (s *Service) Global(ctx context.Context, page int) (PostPage, error) {
	ctx, span := tracer.Start(ctx, "feed.global")
	defer span.End()

	return s.timeline(ctx, repositories.PostFilter{}, page)
}

// Group returns the group identified by slug and one page of its timeline.
func (s *Service) Group(ctx context.Context, slug string, page int) (models.Group, PostPage, error) {
	ctx, span := tracer.Start(ctx, "feed.group")
	span.SetAttributes(attribute.String("group.slug", slug))
	defer span.End()

	group, err := s.groups.GetGroupBySlug(ctx, slug)
	if err != nil {
		return models.Group{}, PostPage{}, err
	}
	posts, err := s.timeline(ctx, repositories.PostFilter{GroupID: group.ID}, page)
	return group, posts, err
}

// Author returns the author identified by handle and one page of their
// timeline.
func (s *Service) Author(ctx context.Context, handle string, page int) (models.User, PostPage, error) {
	ctx, span := tracer.Start(ctx, "feed.author")
	span.SetAttributes(attribute.String("author.handle", handle))
	defer span.End()

	author, err := s.users.GetUserByUsername(ctx, handle)
	if err != nil {
		return models.User{}, PostPage{}, err
	}
	posts, err := s.timeline(ctx, repositories.PostFilter{AuthorID: author.ID}, page)
	return author, posts, err
}

// Following returns one page of posts by authors the given user follows.
// Callers guarantee userID belongs to an authenticated identity.
func (s *Service) Following(ctx context.Context, userID, page int) (PostPage, error) {
	ctx, span := tracer.Start(ctx, "feed.following")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer span.End()

	return s.timeline(ctx, repositories.PostFilter{FollowedBy: userID}, page)
}

func (s *Service) timeline(ctx context.Context, filter repositories.PostFilter, page int) (PostPage, error) {
	total, err := s.posts.CountPosts(ctx, filter)
	if err != nil {
		return PostPage{}, err
	}

	window := pagination.Clamp(total, page, s.pageSize)
	posts, err := s.posts.ListPosts(ctx, filter, window.Limit, window.Offset)
	if err != nil {
		return PostPage{}, err
	}

	return pagination.NewPage(models.PostViews(posts), total, window, s.pageSize), nil
}
