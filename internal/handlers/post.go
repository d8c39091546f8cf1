package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tribune/internal/cache"
	"tribune/internal/media"
	"tribune/internal/models"
	"tribune/internal/observability"
	"tribune/internal/repositories"
	"tribune/internal/telemetry"
	"tribune/internal/ws"
)

// PostHandler manages post creation, detail and editing.
type PostHandler struct {
	postRepo    repositories.PostRepository
	groupRepo   repositories.GroupRepository
	commentRepo repositories.CommentRepository
	mediaStore  *media.Store
	pages       cache.PageCache
	hub         *ws.Hub
	audit       *telemetry.AuditEmitter
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository, commentRepo repositories.CommentRepository, mediaStore *media.Store, pages cache.PageCache, hub *ws.Hub, audit *telemetry.AuditEmitter) *PostHandler {
	return &PostHandler{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		mediaStore:  mediaStore,
		pages:       pages,
		hub:         hub,
		audit:       audit,
	}
}

type postForm struct {
	Text  string `form:"text" json:"text" binding:"required"`
	Group string `form:"group" json:"group"`
}

// CreateForm handles GET /create: the data the creation form offers,
// namely the group choices.
func (h *PostHandler) CreateForm(c *gin.Context) {
	groups, err := h.groupRepo.ListGroups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Create handles POST /create. On success the caller is redirected to
// their profile, mirroring where the created post now appears.
func (h *PostHandler) Create(c *gin.Context) {
	userID := c.GetInt("userID")

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.emitAudit(c, "ERROR", "invalid post payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "submitted": gin.H{"text": form.Text, "group": form.Group}})
		return
	}

	groupID, ok := h.resolveGroup(c, form.Group)
	if !ok {
		return
	}

	imagePath, ok := h.saveImage(c, form)
	if !ok {
		return
	}

	post, err := h.postRepo.CreatePost(c.Request.Context(), userID, form.Text, groupID, imagePath)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create post"})
		return
	}

	h.invalidatePages(c)
	observability.IncPostCreated()
	if h.hub != nil {
		gid := 0
		if groupID != nil {
			gid = *groupID
		}
		h.hub.BroadcastPost(post.View(), gid)
	}
	h.emitAudit(c, "INFO", "Post created")
	c.Redirect(http.StatusFound, "/profile/"+post.AuthorUsername)
}

// Detail handles GET /posts/:id: the post plus its comments in creation
// order.
func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.lookupPost(c)
	if !ok {
		return
	}

	comments, err := h.commentRepo.ListComments(c.Request.Context(), post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post.View(), "comments": comments})
}

// EditForm handles GET /posts/:id/edit. Non-authors never see the form;
// they are sent back to the post detail instead.
func (h *PostHandler) EditForm(c *gin.Context) {
	post, ok := h.lookupPost(c)
	if !ok {
		return
	}
	if !h.requireAuthor(c, post) {
		return
	}

	groups, err := h.groupRepo.ListGroups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post.View(), "groups": groups})
}

// Edit handles POST /posts/:id/edit.
func (h *PostHandler) Edit(c *gin.Context) {
	post, ok := h.lookupPost(c)
	if !ok {
		return
	}
	if !h.requireAuthor(c, post) {
		return
	}

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.emitAudit(c, "ERROR", "invalid post payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "submitted": gin.H{"text": form.Text, "group": form.Group}})
		return
	}

	groupID, ok := h.resolveGroup(c, form.Group)
	if !ok {
		return
	}

	if _, err := h.postRepo.UpdatePost(c.Request.Context(), post.ID, form.Text, groupID); err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update post"})
		return
	}

	h.invalidatePages(c)
	h.emitAudit(c, "INFO", "Post edited")
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (h *PostHandler) lookupPost(c *gin.Context) (models.Post, bool) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return models.Post{}, false
	}

	post, err := h.postRepo.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return models.Post{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return models.Post{}, false
	}
	return post, true
}

// requireAuthor redirects non-authors to the post detail. Being signed in
// but not the author is not an error page, just a bounce.
func (h *PostHandler) requireAuthor(c *gin.Context, post models.Post) bool {
	if c.GetInt("userID") != post.AuthorID {
		h.emitAudit(c, "ERROR", "edit denied: not the author")
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		c.Abort()
		return false
	}
	return true
}

func (h *PostHandler) resolveGroup(c *gin.Context, slug string) (*int, bool) {
	if slug == "" {
		return nil, true
	}
	group, err := h.groupRepo.GetGroupBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown group", "submitted": gin.H{"group": slug}})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve group"})
		return nil, false
	}
	return &group.ID, true
}

func (h *PostHandler) saveImage(c *gin.Context, form postForm) (string, bool) {
	if h.mediaStore == nil {
		return "", true
	}
	file, err := c.FormFile("image")
	if err != nil {
		// no upload present
		return "", true
	}

	path, err := h.mediaStore.Save(file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type", "submitted": gin.H{"text": form.Text, "group": form.Group}})
			return "", false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
		return "", false
	}
	return path, true
}

func (h *PostHandler) invalidatePages(c *gin.Context) {
	if h.pages == nil {
		return
	}
	if err := h.pages.InvalidateAll(c.Request.Context()); err != nil {
		h.emitAudit(c, "ERROR", "page cache invalidation failed")
	}
}

func (h *PostHandler) emitAudit(c *gin.Context, level, text string) {
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
