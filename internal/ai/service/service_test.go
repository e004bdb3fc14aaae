package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftly-ai/craftly-backend/internal/ai/domain"
	"github.com/craftly-ai/craftly-backend/internal/llm"
)

type fakeChat struct {
	reply string
	err   error
	calls int
	last  []llm.Message
}

func (f *fakeChat) Complete(_ context.Context, messages []llm.Message, _ llm.ChatOptions) (string, error) {
	f.calls++
	f.last = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeImages struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeImages) Generate(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func (f *fakeImages) RemoveObject(_ context.Context, _, _ string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) Upload(_ context.Context, _, _, _ string, _ []byte) (string, error) {
	return f.url, f.err
}

type insertedCreation struct {
	ownerID   string
	toolType  string
	prompt    string
	content   string
	published bool
}

type fakeCreations struct {
	inserted []insertedCreation
	err      error
}

func (f *fakeCreations) Insert(_ context.Context, ownerID, toolType, prompt, content string, published bool) (*domain.Creation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = append(f.inserted, insertedCreation{ownerID, toolType, prompt, content, published})
	return &domain.Creation{ID: "c1", OwnerID: ownerID, ToolType: toolType, Prompt: prompt, Content: content, Published: published}, nil
}

type fakeCampaigns struct {
	inserted []string
	list     []domain.CampaignResult
}

func (f *fakeCampaigns) Insert(_ context.Context, ownerID, prompt, content string) (*domain.CampaignResult, error) {
	f.inserted = append(f.inserted, content)
	return &domain.CampaignResult{ID: "r1", OwnerID: ownerID, Prompt: prompt, Content: content}, nil
}

func (f *fakeCampaigns) ListByOwner(_ context.Context, _ string) ([]domain.CampaignResult, error) {
	return f.list, nil
}

func newTestService(chat *fakeChat, images *fakeImages) (*Service, *fakeCreations, *fakeCampaigns) {
	creations := &fakeCreations{}
	campaigns := &fakeCampaigns{}
	svc := New(chat, images, &fakeUploader{url: "https://cdn.example.com/out.png"}, creations, campaigns)
	return svc, creations, campaigns
}

func TestGenerateArticle_EmptyPrompt(t *testing.T) {
	svc, creations, _ := newTestService(&fakeChat{reply: "text"}, &fakeImages{})

	_, err := svc.GenerateArticle(context.Background(), "u1", "   ", 800)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, creations.inserted, "no record should be created")
}

func TestGenerateArticle_InvalidLength(t *testing.T) {
	svc, creations, _ := newTestService(&fakeChat{reply: "text"}, &fakeImages{})

	_, err := svc.GenerateArticle(context.Background(), "u1", "Write an article about Go", 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, creations.inserted)
}

func TestGenerateArticle_ProviderFailure_NothingPersisted(t *testing.T) {
	chat := &fakeChat{err: errors.New("quota exceeded")}
	svc, creations, _ := newTestService(chat, &fakeImages{})

	_, err := svc.GenerateArticle(context.Background(), "u1", "Write an article about Go", 1200)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Empty(t, creations.inserted)
}

func TestGenerateArticle_Success(t *testing.T) {
	chat := &fakeChat{reply: "An article."}
	svc, creations, _ := newTestService(chat, &fakeImages{})

	content, err := svc.GenerateArticle(context.Background(), "u1", "Write an article about Go", 800)
	require.NoError(t, err)
	assert.Equal(t, "An article.", content)

	require.Len(t, creations.inserted, 1)
	rec := creations.inserted[0]
	assert.Equal(t, "u1", rec.ownerID)
	assert.Equal(t, domain.ToolArticle, rec.toolType)
	assert.False(t, rec.published)
}

func TestGenerateArticle_DuplicateSubmissionsProduceTwoRecords(t *testing.T) {
	chat := &fakeChat{reply: "An article."}
	svc, creations, _ := newTestService(chat, &fakeImages{})

	_, err := svc.GenerateArticle(context.Background(), "u1", "Write an article about Go", 800)
	require.NoError(t, err)
	_, err = svc.GenerateArticle(context.Background(), "u1", "Write an article about Go", 800)
	require.NoError(t, err)

	assert.Len(t, creations.inserted, 2)
}

func TestGenerateBlogTitles_EmptyPrompt(t *testing.T) {
	svc, creations, _ := newTestService(&fakeChat{reply: "1. Title"}, &fakeImages{})

	_, err := svc.GenerateBlogTitles(context.Background(), "u1", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, creations.inserted)
}

func TestGenerateImage_PublishFlagPropagates(t *testing.T) {
	svc, creations, _ := newTestService(&fakeChat{}, &fakeImages{data: []byte("png")})

	url, err := svc.GenerateImage(context.Background(), "u1", "Generate an image of a cat in the style Anime Style", true)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/out.png", url)

	require.Len(t, creations.inserted, 1)
	assert.True(t, creations.inserted[0].published)

	_, err = svc.GenerateImage(context.Background(), "u1", "another prompt", false)
	require.NoError(t, err)
	require.Len(t, creations.inserted, 2)
	assert.False(t, creations.inserted[1].published)
}

func TestGenerateImage_ProviderFailure_NothingPersisted(t *testing.T) {
	svc, creations, _ := newTestService(&fakeChat{}, &fakeImages{err: errors.New("timeout")})

	_, err := svc.GenerateImage(context.Background(), "u1", "prompt", true)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Empty(t, creations.inserted)
}

func TestRemoveImageObject_MultiWordRejected(t *testing.T) {
	images := &fakeImages{data: []byte("png")}
	svc, creations, _ := newTestService(&fakeChat{}, images)

	_, err := svc.RemoveImageObject(context.Background(), "u1", "/tmp/x.png", "red car")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "single object")
	assert.Zero(t, images.calls, "provider must not be called on validation failure")
	assert.Empty(t, creations.inserted)
}

func TestRemoveImageObject_Success(t *testing.T) {
	svc, creations, _ := newTestService(&fakeChat{}, &fakeImages{data: []byte("png")})

	url, err := svc.RemoveImageObject(context.Background(), "u1", "/tmp/x.png", "car")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	require.Len(t, creations.inserted, 1)
	assert.Equal(t, domain.ToolImage, creations.inserted[0].toolType)
}

func TestGenerateBanner_Validation(t *testing.T) {
	images := &fakeImages{data: []byte("png")}
	svc, _, _ := newTestService(&fakeChat{}, images)

	_, err := svc.GenerateBanner(context.Background(), "u1", "", "LinkedIn Post", "Professional")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GenerateBanner(context.Background(), "u1", "Launch week", "MySpace Post", "Professional")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GenerateBanner(context.Background(), "u1", "Launch week", "LinkedIn Post", "Vaporwave")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Zero(t, images.calls)
}

func TestGenerateBanner_Success(t *testing.T) {
	svc, creations, _ := newTestService(&fakeChat{}, &fakeImages{data: []byte("png")})

	url, err := svc.GenerateBanner(context.Background(), "u1", "Launch week", "Twitter Banner", "Bold")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	require.Len(t, creations.inserted, 1)
	assert.Equal(t, domain.ToolBanner, creations.inserted[0].toolType)
}

func validCampaignJSON(t *testing.T) string {
	t.Helper()
	c := domain.Campaign{
		Title:       "Launch",
		Description: "A product launch campaign.",
		Keywords:    []string{"launch"},
		Hashtags:    []string{"#launch"},
		VideoScript: domain.VideoScript{
			Scenes: []domain.Scene{
				{Scene: 1, Duration: "5s", VisualPrompt: "logo reveal", Voiceover: "introducing"},
				{Scene: 2, Duration: "10s", VisualPrompt: "product demo", Voiceover: "see it work"},
			},
			TotalDuration: "15s",
		},
		ImagePrompts: domain.ImagePrompts{Thumbnails: []string{"t"}, Banners: []string{"b"}, Ads: []string{"a"}},
		AdCopy:       domain.AdCopy{Headlines: []string{"h"}, PrimaryText: []string{"p"}},
	}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	return string(b)
}

func TestGenerateCampaign_Success(t *testing.T) {
	chat := &fakeChat{reply: validCampaignJSON(t)}
	svc, _, campaigns := newTestService(chat, &fakeImages{})

	campaign, rec, err := svc.GenerateCampaign(context.Background(), "u1", CampaignInput{Topic: "New sneaker"})
	require.NoError(t, err)
	require.NotNil(t, campaign)
	require.NotNil(t, rec)

	assert.Equal(t, "Launch", campaign.Title)
	assert.Len(t, campaign.VideoScript.Scenes, 2)
	assert.Len(t, campaigns.inserted, 1)

	// The persisted content round-trips through the schema validator.
	parsed, err := domain.ParseCampaign(campaigns.inserted[0])
	require.NoError(t, err)
	assert.Equal(t, campaign.Title, parsed.Title)
}

func TestGenerateCampaign_EmptyTopic(t *testing.T) {
	chat := &fakeChat{reply: validCampaignJSON(t)}
	svc, _, campaigns := newTestService(chat, &fakeImages{})

	_, _, err := svc.GenerateCampaign(context.Background(), "u1", CampaignInput{Topic: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, chat.calls)
	assert.Empty(t, campaigns.inserted)
}

func TestGenerateCampaign_TooManyImages(t *testing.T) {
	chat := &fakeChat{reply: validCampaignJSON(t)}
	svc, _, _ := newTestService(chat, &fakeImages{})

	in := CampaignInput{Topic: "t", ImagePaths: []string{"1", "2", "3", "4", "5", "6"}}
	_, _, err := svc.GenerateCampaign(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, chat.calls)
}

func TestGenerateCampaign_MalformedReply_NothingPersisted(t *testing.T) {
	chat := &fakeChat{reply: `{"title": "only a title"}`}
	svc, _, campaigns := newTestService(chat, &fakeImages{})

	_, _, err := svc.GenerateCampaign(context.Background(), "u1", CampaignInput{Topic: "t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Empty(t, campaigns.inserted)
}

func TestChat_EmptyMessage(t *testing.T) {
	svc, _, _ := newTestService(&fakeChat{reply: "hi"}, &fakeImages{})

	_, err := svc.Chat(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestChat_HistoryTruncatedToTen(t *testing.T) {
	chat := &fakeChat{reply: "hi"}
	svc, _, _ := newTestService(chat, &fakeImages{})

	history := make([]llm.Message, 0, 14)
	for i := 0; i < 14; i++ {
		history = append(history, llm.Message{Role: "user", Content: "old"})
	}

	_, err := svc.Chat(context.Background(), "newest", history)
	require.NoError(t, err)

	// system + 10 history + current message
	assert.Len(t, chat.last, 12)
	assert.Equal(t, "system", chat.last[0].Role)
	assert.Equal(t, "newest", chat.last[len(chat.last)-1].Content)
}

func TestChat_NotPersisted(t *testing.T) {
	svc, creations, campaigns := newTestService(&fakeChat{reply: "hi"}, &fakeImages{})

	_, err := svc.Chat(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Empty(t, creations.inserted)
	assert.Empty(t, campaigns.inserted)
}
