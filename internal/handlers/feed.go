package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tribune/internal/feed"
	"tribune/internal/pagination"
	"tribune/internal/repositories"
)

// FeedHandler serves the four timeline kinds.
type FeedHandler struct {
	feeds   *feed.Service
	follows repositories.FollowRepository
}

// NewFeedHandler constructs a FeedHandler.
func NewFeedHandler(feeds *feed.Service, follows repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{feeds: feeds, follows: follows}
}

// Index handles GET /, the global timeline.
func (h *FeedHandler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	posts, err := h.feeds.Global(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GroupTimeline handles GET /group/:slug.
func (h *FeedHandler) GroupTimeline(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	group, posts, err := h.feeds.Group(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "posts": posts})
}

// Profile handles GET /profile/:handle, the author timeline. When the
// viewer is authenticated the response carries whether they follow the
// author.
func (h *FeedHandler) Profile(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	author, posts, err := h.feeds.Author(c.Request.Context(), c.Param("handle"), page)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}

	following := false
	if viewerID := c.GetInt("userID"); viewerID != 0 && viewerID != author.ID {
		following, err = h.follows.IsFollowing(c.Request.Context(), viewerID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"author":    gin.H{"id": author.ID, "username": author.Username},
		"following": following,
		"posts":     posts,
	})
}

// FollowingTimeline handles GET /follow, the personalized timeline of
// posts by authors the caller follows. The auth middleware guarantees an
// authenticated caller.
func (h *FeedHandler) FollowingTimeline(c *gin.Context) {
	userID := c.GetInt("userID")
	page := pagination.ParsePage(c.Query("page"))
	posts, err := h.feeds.Following(c.Request.Context(), userID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}

	authorIDs, err := h.follows.FollowedAuthorIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "followed_author_ids": authorIDs})
}
