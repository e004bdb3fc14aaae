package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrProvider   = errors.New("provider failed")
)

// Tool types recorded on creations.
const (
	ToolArticle      = "article"
	ToolBlogTitle    = "blog-title"
	ToolImage        = "image"
	ToolResumeReview = "resume-review"
	ToolBanner       = "banner"
)

// Creation is one persisted generation result. Published creations are
// visible in the community feed; likes hold the user IDs that liked it.
type Creation struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ToolType  string    `json:"tool_type"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// CampaignResult is one persisted campaign generation. Content holds the
// serialized campaign JSON and is never mutated after insert.
type CampaignResult struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleLengths maps accepted word-count targets to the label used in the
// article prompt.
var ArticleLengths = map[int]string{
	800:  "Short (500-800 words)",
	1200: "Medium (800-1200 words)",
	2000: "Long (1200+ words)",
}

var ImageStyles = []string{
	"Realistic Style",
	"Ghibli Style",
	"3D Style",
	"Anime Style",
	"Cartoon Style",
	"Fantasy Style",
	"Portrait Style",
}

var BannerPlatforms = []string{
	"LinkedIn Post",
	"LinkedIn Banner",
	"Instagram Post",
	"Twitter Post",
	"Twitter Banner",
}

var BannerStyles = []string{
	"Professional",
	"Minimalist",
	"Creative",
	"Corporate",
	"Modern",
	"Abstract",
	"Geometric",
	"Aesthetic",
	"Bold",
}

func ValidImageStyle(s string) bool    { return contains(ImageStyles, s) }
func ValidBannerPlatform(s string) bool { return contains(BannerPlatforms, s) }
func ValidBannerStyle(s string) bool   { return contains(BannerStyles, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
