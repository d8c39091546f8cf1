package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tribune/internal/models"
	"tribune/internal/observability"
	"tribune/internal/repositories"
	"tribune/internal/telemetry"
)

// FollowHandler manages the follow/unfollow toggle. Both directions are
// idempotent: repeating a request leaves the graph unchanged and is not
// an error.
type FollowHandler struct {
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
	audit      *telemetry.AuditEmitter
}

// NewFollowHandler constructs a FollowHandler.
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, audit *telemetry.AuditEmitter) *FollowHandler {
	return &FollowHandler{followRepo: followRepo, userRepo: userRepo, audit: audit}
}

// Follow handles POST /profile/:handle/follow. Following yourself is
// silently skipped; the redirect happens either way.
func (h *FollowHandler) Follow(c *gin.Context) {
	author, ok := h.lookupAuthor(c)
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	if userID != author.ID {
		if err := h.followRepo.Follow(c.Request.Context(), userID, author.ID); err != nil {
			h.emitAudit(c, "ERROR", "internal error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not follow"})
			return
		}
		observability.IncFollowAction("follow")
		h.emitAudit(c, "INFO", "Followed author")
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username)
}

// Unfollow handles POST /profile/:handle/unfollow.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	author, ok := h.lookupAuthor(c)
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	if err := h.followRepo.Unfollow(c.Request.Context(), userID, author.ID); err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not unfollow"})
		return
	}
	observability.IncFollowAction("unfollow")
	h.emitAudit(c, "INFO", "Unfollowed author")

	c.Redirect(http.StatusFound, "/profile/"+author.Username)
}

func (h *FollowHandler) lookupAuthor(c *gin.Context) (models.User, bool) {
	author, err := h.userRepo.GetUserByUsername(c.Request.Context(), c.Param("handle"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return models.User{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve author"})
		return models.User{}, false
	}
	return author, true
}

func (h *FollowHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), telemetry.Event{
		Level:     level,
		Text:      text,
		RequestID: requestIDFromContext(c),
		UserID:    userIDFromContext(c),
	})
}
