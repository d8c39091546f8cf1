package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"tribune/internal/repositories"
	"tribune/internal/telemetry"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// GroupHandler manages group listing and creation.
type GroupHandler struct {
	groupRepo repositories.GroupRepository
	audit     *telemetry.AuditEmitter
}

// NewGroupHandler constructs a GroupHandler.
func NewGroupHandler(groupRepo repositories.GroupRepository, audit *telemetry.AuditEmitter) *GroupHandler {
	return &GroupHandler{groupRepo: groupRepo, audit: audit}
}

// List handles GET /groups.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groupRepo.ListGroups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Create handles POST /groups.
func (h *GroupHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `form:"title" json:"title" binding:"required"`
		Slug        string `form:"slug" json:"slug" binding:"required"`
		Description string `form:"description" json:"description"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.emitAudit(c, "ERROR", "invalid group payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "submitted": gin.H{"title": req.Title, "slug": req.Slug}})
		return
	}
	if !slugPattern.MatchString(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug must be lowercase letters, digits and hyphens", "submitted": gin.H{"title": req.Title, "slug": req.Slug}})
		return
	}

	group, err := h.groupRepo.CreateGroup(c.Request.Context(), req.Title, req.Slug, req.Description)
	if err != nil {
		if errors.Is(err, repositories.ErrSlugTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "group slug already taken"})
			return
		}
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create group"})
		return
	}

	h.emitAudit(c, "INFO", "Group created")
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

func (h *GroupHandler) emitAudit(c *gin.Context, level, text string) {
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
