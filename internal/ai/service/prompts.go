package service

import (
	"fmt"
	"strings"
	"text/template"
)

// Prompt templates sent to the text provider. The campaign template demands
// strict JSON so the reply can be schema-validated at the boundary.

var bannerPrompt = template.Must(template.New("banner").Parse(
	`Create a professional {{.Platform}} banner image about "{{.Topic}}" in a {{.Style}} visual style. ` +
		`The design should be {{.Aspect}}, with clean typography, strong contrast and no watermarks.`))

var resumePrompt = template.Must(template.New("resume").Parse(
	`Review the following resume and provide constructive feedback on its strengths, weaknesses, ` +
		`and areas for improvement. Format the review in markdown with clear sections.

Resume content:

{{.Text}}`))

var campaignPrompt = template.Must(template.New("campaign").Parse(
	`You are an expert ad-campaign strategist. Create a complete campaign for the topic "{{.Topic}}"{{if .VideoStyle}} with a {{.VideoStyle}} video style{{end}}.
{{- if .VoiceNote}}
A voiceover sample was provided; match its tone.{{end}}
{{- if gt .ImageCount 0}}
{{.ImageCount}} reference image(s) were provided; keep visual prompts consistent with them.{{end}}

Respond with ONLY valid JSON, no markdown fences, matching exactly this structure:
{
  "title": "campaign title",
  "description": "one-paragraph campaign description",
  "keywords": ["..."],
  "hashtags": ["#..."],
  "video_script": {
    "scenes": [
      {"scene": 1, "duration": "5s", "visual_prompt": "...", "voiceover": "..."}
    ],
    "total_duration": "30s",
    "style": "{{if .VideoStyle}}{{.VideoStyle}}{{else}}Professional{{end}}"
  },
  "image_prompts": {
    "thumbnails": ["..."],
    "banners": ["..."],
    "ads": ["..."]
  },
  "ad_copy": {
    "headlines": ["..."],
    "primary_text": ["..."]
  }
}`))

const chatSystemPrompt = `You are a helpful AI assistant for a content creation platform. ` +
	`Answer concisely and format responses in markdown.`

type bannerPromptData struct {
	Topic    string
	Platform string
	Style    string
	Aspect   string
}

type campaignPromptData struct {
	Topic      string
	VideoStyle string
	VoiceNote  bool
	ImageCount int
}

// bannerAspect maps a platform to the aspect-ratio guidance baked into the
// prompt (banners are wide strips, posts square or 16:9).
func bannerAspect(platform string) string {
	switch {
	case strings.Contains(platform, "LinkedIn Banner"):
		return "a wide 4:1 banner"
	case strings.Contains(platform, "Banner"):
		return "a wide 3:1 banner"
	case strings.Contains(platform, "Twitter Post"):
		return "a 16:9 landscape image"
	default:
		return "a square image"
	}
}

func renderTemplate(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return sb.String(), nil
}
