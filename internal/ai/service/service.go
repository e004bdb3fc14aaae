// Package service implements the request/validate/call/persist cycle shared
// by every tool endpoint. A request either fully succeeds (record persisted,
// content returned) or fully fails with nothing written.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/craftly-ai/craftly-backend/internal/ai/domain"
	"github.com/craftly-ai/craftly-backend/internal/llm"
)

// ChatProvider is the text-generation collaborator.
type ChatProvider interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.ChatOptions) (string, error)
}

// ImageProvider is the image-generation/editing collaborator.
type ImageProvider interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
	RemoveObject(ctx context.Context, imagePath, objectName string) ([]byte, error)
}

// Uploader stores generated bytes and returns a hosted URL.
type Uploader interface {
	Upload(ctx context.Context, prefix, ext, contentType string, data []byte) (string, error)
}

// CreationStore persists creation records.
type CreationStore interface {
	Insert(ctx context.Context, ownerID, toolType, prompt, content string, published bool) (*domain.Creation, error)
}

// CampaignStore persists campaign results.
type CampaignStore interface {
	Insert(ctx context.Context, ownerID, prompt, content string) (*domain.CampaignResult, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.CampaignResult, error)
}

type Service struct {
	chat      ChatProvider
	images    ImageProvider
	uploader  Uploader
	creations CreationStore
	campaigns CampaignStore
}

func New(chat ChatProvider, images ImageProvider, uploader Uploader, creations CreationStore, campaigns CampaignStore) *Service {
	return &Service{
		chat:      chat,
		images:    images,
		uploader:  uploader,
		creations: creations,
		campaigns: campaigns,
	}
}

// GenerateArticle produces an article for a pre-templated prompt. length
// must be one of the accepted word-count targets; it also bounds the
// completion size.
func (s *Service) GenerateArticle(ctx context.Context, userID, prompt string, length int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	if _, ok := domain.ArticleLengths[length]; !ok {
		return "", fmt.Errorf("%w: length must be 800, 1200 or 2000", domain.ErrValidation)
	}

	content, err := s.chat.Complete(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	}, llm.ChatOptions{Temperature: 0.7, MaxTokens: length * 2})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	if _, err := s.creations.Insert(ctx, userID, domain.ToolArticle, prompt, content, false); err != nil {
		return "", fmt.Errorf("persist article: %w", err)
	}
	return content, nil
}

// GenerateBlogTitles produces title suggestions for a pre-templated prompt.
func (s *Service) GenerateBlogTitles(ctx context.Context, userID, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}

	content, err := s.chat.Complete(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	}, llm.ChatOptions{Temperature: 0.8, MaxTokens: 500})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	if _, err := s.creations.Insert(ctx, userID, domain.ToolBlogTitle, prompt, content, false); err != nil {
		return "", fmt.Errorf("persist titles: %w", err)
	}
	return content, nil
}

// GenerateImage renders an image, uploads it, and persists the hosted URL.
// publish controls community-feed visibility.
func (s *Service) GenerateImage(ctx context.Context, userID, prompt string, publish bool) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}

	img, err := s.images.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	url, err := s.uploader.Upload(ctx, "images", ".png", "image/png", img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	if _, err := s.creations.Insert(ctx, userID, domain.ToolImage, prompt, url, publish); err != nil {
		return "", fmt.Errorf("persist image: %w", err)
	}
	return url, nil
}

// RemoveImageObject erases the named object from the uploaded image and
// returns the hosted URL of the edited result. objectName must be a single
// word.
func (s *Service) RemoveImageObject(ctx context.Context, userID, imagePath, objectName string) (string, error) {
	objectName = strings.TrimSpace(objectName)
	if objectName == "" {
		return "", fmt.Errorf("%w: object name is required", domain.ErrValidation)
	}
	if len(strings.Fields(objectName)) > 1 {
		return "", fmt.Errorf("%w: please enter a single object name", domain.ErrValidation)
	}

	img, err := s.images.RemoveObject(ctx, imagePath, objectName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	url, err := s.uploader.Upload(ctx, "images", ".png", "image/png", img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	prompt := "Removed " + objectName + " from image"
	if _, err := s.creations.Insert(ctx, userID, domain.ToolImage, prompt, url, false); err != nil {
		return "", fmt.Errorf("persist edit: %w", err)
	}
	return url, nil
}

// ReviewResume extracts text from the uploaded PDF and returns a markdown
// review.
func (s *Service) ReviewResume(ctx context.Context, userID, pdfPath string) (string, error) {
	text, err := extractPDFText(pdfPath)
	if err != nil {
		return "", fmt.Errorf("%w: could not read the PDF: %v", domain.ErrValidation, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: the PDF contains no readable text", domain.ErrValidation)
	}

	// Keep the prompt within a sane bound for very long resumes.
	if len(text) > 20000 {
		text = text[:20000]
	}

	prompt, err := renderTemplate(resumePrompt, map[string]string{"Text": text})
	if err != nil {
		return "", err
	}

	review, err := s.chat.Complete(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	}, llm.ChatOptions{Temperature: 0.4, MaxTokens: 1500})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	if _, err := s.creations.Insert(ctx, userID, domain.ToolResumeReview, "Resume review", review, false); err != nil {
		return "", fmt.Errorf("persist review: %w", err)
	}
	return review, nil
}

// GenerateBanner builds a banner prompt from topic/platform/style, renders
// the image, and persists the hosted URL.
func (s *Service) GenerateBanner(ctx context.Context, userID, topic, platform, style string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("%w: topic is required", domain.ErrValidation)
	}
	if !domain.ValidBannerPlatform(platform) {
		return "", fmt.Errorf("%w: unknown platform %q", domain.ErrValidation, platform)
	}
	if !domain.ValidBannerStyle(style) {
		return "", fmt.Errorf("%w: unknown style %q", domain.ErrValidation, style)
	}

	prompt, err := renderTemplate(bannerPrompt, bannerPromptData{
		Topic:    topic,
		Platform: platform,
		Style:    style,
		Aspect:   bannerAspect(platform),
	})
	if err != nil {
		return "", err
	}

	img, err := s.images.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	url, err := s.uploader.Upload(ctx, "banners", ".png", "image/png", img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	if _, err := s.creations.Insert(ctx, userID, domain.ToolBanner, prompt, url, false); err != nil {
		return "", fmt.Errorf("persist banner: %w", err)
	}
	return url, nil
}

// CampaignInput carries the campaign generation parameters. VoicePath and
// ImagePaths point at already-validated temp uploads.
type CampaignInput struct {
	Topic      string
	VideoStyle string
	VoicePath  string
	ImagePaths []string
}

// GenerateCampaign asks the provider for the full campaign JSON, validates
// it against the four-section schema, and persists the result. A reply that
// fails validation surfaces a generic failure and writes nothing.
func (s *Service) GenerateCampaign(ctx context.Context, userID string, in CampaignInput) (*domain.Campaign, *domain.CampaignResult, error) {
	if strings.TrimSpace(in.Topic) == "" {
		return nil, nil, fmt.Errorf("%w: topic is required", domain.ErrValidation)
	}
	if len(in.ImagePaths) > 5 {
		return nil, nil, fmt.Errorf("%w: at most 5 reference images are allowed", domain.ErrValidation)
	}

	prompt, err := renderTemplate(campaignPrompt, campaignPromptData{
		Topic:      in.Topic,
		VideoStyle: in.VideoStyle,
		VoiceNote:  in.VoicePath != "",
		ImageCount: len(in.ImagePaths),
	})
	if err != nil {
		return nil, nil, err
	}

	reply, err := s.chat.Complete(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	}, llm.ChatOptions{Temperature: 0.7, MaxTokens: 4000})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	campaign, err := domain.ParseCampaign(reply)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: campaign generation returned an unusable result", domain.ErrProvider)
	}

	content, err := json.Marshal(campaign)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal campaign: %w", err)
	}

	rec, err := s.campaigns.Insert(ctx, userID, in.Topic, string(content))
	if err != nil {
		return nil, nil, fmt.Errorf("persist campaign: %w", err)
	}
	return campaign, rec, nil
}

// CampaignHistory returns the caller's campaign results, newest first.
func (s *Service) CampaignHistory(ctx context.Context, userID string) ([]domain.CampaignResult, error) {
	return s.campaigns.ListByOwner(ctx, userID)
}

// maxChatHistory is how many prior turns are forwarded to the provider.
const maxChatHistory = 10

// Chat answers a conversational message. Nothing is persisted.
func (s *Service) Chat(ctx context.Context, message string, history []llm.Message) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: message})

	reply, err := s.chat.Complete(ctx, messages, llm.ChatOptions{Temperature: 0.7, MaxTokens: 1000})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	return reply, nil
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
