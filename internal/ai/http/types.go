package http

import "github.com/craftly-ai/craftly-backend/internal/llm"

type generateArticleReq struct {
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

type generateTitlesReq struct {
	Prompt string `json:"prompt"`
}

type generateImageReq struct {
	Prompt  string `json:"prompt"`
	Publish bool   `json:"publish"`
}

type generateBannerReq struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Style    string `json:"style"`
}

type chatReq struct {
	Message string        `json:"message"`
	History []llm.Message `json:"history"`
}

// historyItem is one entry of the campaign history drawer. The client
// re-hydrates its panels by parsing Content.
type historyItem struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Prompt    string `json:"prompt"`
	CreatedAt string `json:"created_at"`
	Content   string `json:"content"`
}
