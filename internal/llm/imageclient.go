package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ImageClient talks to the image provider's bare HTTP API: multipart form
// in, raw image bytes out.
type ImageClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewImageClient(baseURL, apiKey string, timeout time.Duration) *ImageClient {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &ImageClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Generate renders an image from a text prompt.
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return c.post(ctx, "/text-to-image/v1", w.FormDataContentType(), &buf)
}

// RemoveObject erases the named object from the image at path.
func (c *ImageClient) RemoveObject(ctx context.Context, imagePath, objectName string) ([]byte, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image_file", filepath.Base(imagePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := w.WriteField("prompt", "Remove the "+objectName+" from the image"); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return c.post(ctx, "/cleanup/v1", w.FormDataContentType(), &buf)
}

func (c *ImageClient) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("image provider error (status %d): %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("image provider returned empty body")
	}
	return img, nil
}
