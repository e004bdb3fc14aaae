package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Campaign is the structured reply of a campaign generation. The provider
// is asked for strict JSON; anything that does not satisfy this schema is
// rejected at the boundary rather than passed through partially.
type Campaign struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Keywords     []string     `json:"keywords"`
	Hashtags     []string     `json:"hashtags"`
	VideoScript  VideoScript  `json:"video_script"`
	ImagePrompts ImagePrompts `json:"image_prompts"`
	AdCopy       AdCopy       `json:"ad_copy"`
}

type VideoScript struct {
	Scenes        []Scene `json:"scenes"`
	TotalDuration string  `json:"total_duration,omitempty"`
	Style         string  `json:"style,omitempty"`
}

type Scene struct {
	Scene        int    `json:"scene"`
	Duration     string `json:"duration"`
	VisualPrompt string `json:"visual_prompt"`
	Voiceover    string `json:"voiceover"`
}

type ImagePrompts struct {
	Thumbnails []string `json:"thumbnails"`
	Banners    []string `json:"banners"`
	Ads        []string `json:"ads"`
}

type AdCopy struct {
	Headlines   []string `json:"headlines"`
	PrimaryText []string `json:"primary_text"`
}

// ParseCampaign decodes a provider reply into a Campaign, stripping any
// markdown code fence the model wrapped around the JSON, and validates the
// four-section schema.
func ParseCampaign(raw string) (*Campaign, error) {
	cleaned := stripCodeFence(raw)

	var c Campaign
	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode campaign: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Campaign) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("campaign missing title")
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("campaign missing description")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("campaign missing keywords")
	}
	if len(c.Hashtags) == 0 {
		return fmt.Errorf("campaign missing hashtags")
	}
	if len(c.VideoScript.Scenes) == 0 {
		return fmt.Errorf("video script has no scenes")
	}
	for i, s := range c.VideoScript.Scenes {
		if strings.TrimSpace(s.VisualPrompt) == "" || strings.TrimSpace(s.Voiceover) == "" {
			return fmt.Errorf("scene %d incomplete", i+1)
		}
	}
	if len(c.ImagePrompts.Thumbnails) == 0 && len(c.ImagePrompts.Banners) == 0 && len(c.ImagePrompts.Ads) == 0 {
		return fmt.Errorf("campaign missing image prompts")
	}
	if len(c.AdCopy.Headlines) == 0 {
		return fmt.Errorf("campaign missing ad headlines")
	}
	return nil
}

// stripCodeFence removes a leading ```json / ``` fence pair if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
