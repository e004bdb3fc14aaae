package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craftly-ai/craftly-backend/internal/ai/domain"
	"github.com/craftly-ai/craftly-backend/internal/ai/service"
	"github.com/craftly-ai/craftly-backend/internal/auth"
	"github.com/craftly-ai/craftly-backend/internal/uploads"
)

type Handler struct {
	svc     *service.Service
	uploads *uploads.Manager
}

func NewHandler(svc *service.Service, up *uploads.Manager) *Handler {
	return &Handler{svc: svc, uploads: up}
}

func (h *Handler) generateArticle(c *gin.Context) {
	var req generateArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	content, err := h.svc.GenerateArticle(c.Request.Context(), auth.UserID(c), req.Prompt, req.Length)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

func (h *Handler) generateBlogTitles(c *gin.Context) {
	var req generateTitlesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	content, err := h.svc.GenerateBlogTitles(c.Request.Context(), auth.UserID(c), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

func (h *Handler) generateImage(c *gin.Context) {
	var req generateImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	url, err := h.svc.GenerateImage(c.Request.Context(), auth.UserID(c), req.Prompt, req.Publish)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

func (h *Handler) removeImageObject(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "image file is required"})
		return
	}

	objectName := strings.TrimSpace(c.PostForm("object"))

	path, err := h.uploads.Save(fh, uploads.KindImage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer h.uploads.Remove(path)

	url, err := h.svc.RemoveImageObject(c.Request.Context(), auth.UserID(c), path, objectName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

func (h *Handler) resumeReview(c *gin.Context) {
	fh, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "resume file is required"})
		return
	}

	path, err := h.uploads.Save(fh, uploads.KindPDF)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer h.uploads.Remove(path)

	review, err := h.svc.ReviewResume(c.Request.Context(), auth.UserID(c), path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": review})
}

func (h *Handler) generateBanner(c *gin.Context) {
	var req generateBannerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	url, err := h.svc.GenerateBanner(c.Request.Context(), auth.UserID(c), req.Topic, req.Platform, req.Style)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

func (h *Handler) generateCampaign(c *gin.Context) {
	topic := strings.TrimSpace(c.PostForm("topic"))
	videoStyle := strings.TrimSpace(c.PostForm("videoStyle"))

	in := service.CampaignInput{Topic: topic, VideoStyle: videoStyle}

	if fh, err := c.FormFile("voice"); err == nil {
		path, err := h.uploads.Save(fh, uploads.KindAudio)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		defer h.uploads.Remove(path)
		in.VoicePath = path
	}

	if form, err := c.MultipartForm(); err == nil {
		files := form.File["images"]
		if len(files) > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "at most 5 reference images are allowed"})
			return
		}
		for _, fh := range files {
			path, err := h.uploads.Save(fh, uploads.KindImage)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			defer h.uploads.Remove(path)
			in.ImagePaths = append(in.ImagePaths, path)
		}
	}

	campaign, _, err := h.svc.GenerateCampaign(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content": campaign})
}

func (h *Handler) campaignHistory(c *gin.Context) {
	items, err := h.svc.CampaignHistory(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	history := make([]historyItem, 0, len(items))
	for _, it := range items {
		history = append(history, historyItem{
			ID:        it.ID,
			Type:      "agcr",
			Prompt:    it.Prompt,
			CreatedAt: it.CreatedAt.Format(time.RFC3339),
			Content:   it.Content,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), req.Message, req.History)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}

// respondError maps service errors onto the response envelope: validation
// failures are the caller's fault, provider failures are upstream, anything
// else is internal.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": userMessage(err)})
	case errors.Is(err, domain.ErrProvider):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": userMessage(err)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "something went wrong"})
	}
}

// userMessage strips the sentinel prefix ("validation failed: ...") so the
// client sees only the human-readable part.
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{domain.ErrValidation.Error(), domain.ErrProvider.Error()} {
		msg = strings.TrimPrefix(msg, sentinel+": ")
	}
	return msg
}
