package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tribune/internal/mocks"
	"tribune/internal/models"
	"tribune/internal/repositories"
)

func fixturePosts(n int) []models.Post {
	posts := make([]models.Post, 0, n)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		posts = append(posts, models.Post{
			ID:             n - i,
			Text:           "post",
			AuthorID:       1,
			AuthorUsername: "alice",
			CreatedAt:      base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return posts
}

func TestGlobalTimelineFirstPage(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	svc := NewService(postRepo, nil, nil, 10)

	postRepo.On("CountPosts", mock.Anything, repositories.PostFilter{}).Return(13, nil).Once()
	postRepo.On("ListPosts", mock.Anything, repositories.PostFilter{}, 10, 0).Return(fixturePosts(10), nil).Once()

	page, err := svc.Global(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	require.Equal(t, 1, page.Number)
	require.Equal(t, 2, page.TotalPages)
	require.True(t, page.HasNext)
	require.False(t, page.HasPrev)
	postRepo.AssertExpectations(t)
}

func TestGlobalTimelineClampsPastLastPage(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	svc := NewService(postRepo, nil, nil, 10)

	postRepo.On("CountPosts", mock.Anything, repositories.PostFilter{}).Return(13, nil).Once()
	postRepo.On("ListPosts", mock.Anything, repositories.PostFilter{}, 10, 10).Return(fixturePosts(3), nil).Once()

	page, err := svc.Global(context.Background(), 99)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.Equal(t, 2, page.Number)
	require.False(t, page.HasNext)
	require.True(t, page.HasPrev)
	postRepo.AssertExpectations(t)
}

func TestGroupTimelineResolvesSlug(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	groupRepo := new(mocks.GroupRepositoryMock)
	svc := NewService(postRepo, groupRepo, nil, 10)

	groupRepo.On("GetGroupBySlug", mock.Anything, "cats").Return(models.Group{ID: 7, Title: "Cats", Slug: "cats"}, nil).Once()
	postRepo.On("CountPosts", mock.Anything, repositories.PostFilter{GroupID: 7}).Return(1, nil).Once()
	postRepo.On("ListPosts", mock.Anything, repositories.PostFilter{GroupID: 7}, 10, 0).Return(fixturePosts(1), nil).Once()

	group, page, err := svc.Group(context.Background(), "cats", 1)
	require.NoError(t, err)
	require.Equal(t, "cats", group.Slug)
	require.Len(t, page.Items, 1)
	groupRepo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestGroupTimelineUnknownSlug(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	svc := NewService(new(mocks.PostRepositoryMock), groupRepo, nil, 10)

	groupRepo.On("GetGroupBySlug", mock.Anything, "nope").Return(nil, repositories.ErrGroupNotFound).Once()

	_, _, err := svc.Group(context.Background(), "nope", 1)
	require.ErrorIs(t, err, repositories.ErrGroupNotFound)
}

func TestAuthorTimelineUnknownHandle(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	svc := NewService(new(mocks.PostRepositoryMock), nil, userRepo, 10)

	userRepo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrUserNotFound).Once()

	_, _, err := svc.Author(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestFollowingTimelineScopedToFollower(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	svc := NewService(postRepo, nil, nil, 10)

	followed := []models.Post{{ID: 3, Text: "from Y", AuthorID: 2, AuthorUsername: "y"}}
	postRepo.On("CountPosts", mock.Anything, repositories.PostFilter{FollowedBy: 10}).Return(1, nil).Once()
	postRepo.On("ListPosts", mock.Anything, repositories.PostFilter{FollowedBy: 10}, 10, 0).Return(followed, nil).Once()
	postRepo.On("CountPosts", mock.Anything, repositories.PostFilter{FollowedBy: 20}).Return(0, nil).Once()
	postRepo.On("ListPosts", mock.Anything, repositories.PostFilter{FollowedBy: 20}, 10, 0).Return([]models.Post{}, nil).Once()

	// user X follows Y and sees the post
	pageX, err := svc.Following(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Len(t, pageX.Items, 1)
	require.Equal(t, "from Y", pageX.Items[0].Text)

	// unrelated user Z sees nothing
	pageZ, err := svc.Following(context.Background(), 20, 1)
	require.NoError(t, err)
	require.Empty(t, pageZ.Items)
	postRepo.AssertExpectations(t)
}
