package http

import "github.com/gin-gonic/gin"

// Register mounts the tool endpoints on an authenticated group.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/generate-article", h.generateArticle)
	r.POST("/generate-blog-titles", h.generateBlogTitles)
	r.POST("/generate-image", h.generateImage)
	r.POST("/remove-image-object", h.removeImageObject)
	r.POST("/resume-review", h.resumeReview)
	r.POST("/generate-agcr", h.generateCampaign)
	r.GET("/history/agcr", h.campaignHistory)
	r.POST("/generate-banner", h.generateBanner)
	r.POST("/chat", h.chat)
}
