// Package users serves the caller-facing creation listings and the
// community feed, plus the publish/like toggles.
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftly-ai/craftly-backend/internal/ai/domain"
	"github.com/craftly-ai/craftly-backend/internal/auth"
)

// CreationStore is the slice of the creation repository these endpoints
// need.
type CreationStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Creation, error)
	ListPublished(ctx context.Context) ([]domain.Creation, error)
	ToggleLike(ctx context.Context, id, userID string) (*domain.Creation, bool, error)
	TogglePublish(ctx context.Context, id, userID string) (*domain.Creation, error)
}

type Handler struct {
	creations CreationStore
}

func NewHandler(creations CreationStore) *Handler {
	return &Handler{creations: creations}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/get-user-creations", h.getUserCreations)
	r.GET("/get-published-creations", h.getPublishedCreations)
	r.POST("/toggle-like-creation", h.toggleLike)
	r.POST("/toggle-publish-creation", h.togglePublish)
}

func (h *Handler) getUserCreations(c *gin.Context) {
	items, err := h.creations.ListByOwner(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load creations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "creations": items})
}

// communityCreation is a feed card: the creation plus its like count.
type communityCreation struct {
	domain.Creation
	LikeCount int `json:"like_count"`
}

func (h *Handler) getPublishedCreations(c *gin.Context) {
	items, err := h.creations.ListPublished(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load community feed"})
		return
	}

	feed := make([]communityCreation, 0, len(items))
	for _, it := range items {
		feed = append(feed, communityCreation{Creation: it, LikeCount: len(it.Likes)})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "creations": feed})
}

type toggleReq struct {
	ID string `json:"id"`
}

func (h *Handler) toggleLike(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "creation id is required"})
		return
	}

	creation, liked, err := h.creations.ToggleLike(c.Request.Context(), req.ID, auth.UserID(c))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "creation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update likes"})
		return
	}

	msg := "Creation unliked"
	if liked {
		msg = "Creation liked"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "creation": creation})
}

func (h *Handler) togglePublish(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "creation id is required"})
		return
	}

	creation, err := h.creations.TogglePublish(c.Request.Context(), req.ID, auth.UserID(c))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "creation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update creation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "creation": creation})
}
