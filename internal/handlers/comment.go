package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tribune/internal/observability"
	"tribune/internal/repositories"
	"tribune/internal/telemetry"
)

// CommentHandler manages comment submission. Comments never show up on
// timelines, so adding one does not touch the page cache.
type CommentHandler struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	audit       *telemetry.AuditEmitter
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, audit *telemetry.AuditEmitter) *CommentHandler {
	return &CommentHandler{commentRepo: commentRepo, postRepo: postRepo, audit: audit}
}

// Create handles POST /posts/:id/comment and redirects back to the post
// detail.
func (h *CommentHandler) Create(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postRepo.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	var form struct {
		Text string `form:"text" json:"text" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		h.emitAudit(c, "ERROR", "invalid comment payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "submitted": gin.H{"text": form.Text}})
		return
	}

	userID := c.GetInt("userID")
	if _, err := h.commentRepo.CreateComment(c.Request.Context(), post.ID, userID, form.Text); err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store comment"})
		return
	}

	observability.IncCommentCreated()
	h.emitAudit(c, "INFO", "Comment added")
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (h *CommentHandler) emitAudit(c *gin.Context, level, text string) {
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
