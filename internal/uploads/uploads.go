// Package uploads handles transient multipart file storage: allow-list and
// size validation on the way in, explicit deletion after the storage
// hand-off, and a scheduled sweep as a backstop.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind selects the allow-list and size ceiling applied to an upload.
type Kind int

const (
	KindImage Kind = iota // jpg/jpeg/png/pdf
	KindPDF               // pdf only
	KindAudio             // mp3/wav/m4a
)

var (
	imageExts = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".pdf":  "application/pdf",
	}
	pdfExts = map[string]string{
		".pdf": "application/pdf",
	}
	audioExts = map[string]string{
		".mp3": "audio/mpeg",
		".wav": "audio/wav",
		".m4a": "audio/mp4",
	}
)

type Manager struct {
	Dir          string
	MaxFileSize  int64
	MaxAudioSize int64
}

func NewManager(dir string, maxFileSize, maxAudioSize int64) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Manager{
		Dir:          dir,
		MaxFileSize:  maxFileSize,
		MaxAudioSize: maxAudioSize,
	}, nil
}

// Save validates the uploaded file against the kind's allow-list and size
// ceiling, then writes it under a generated name. The caller owns the
// returned path and should Remove it once the upstream hand-off is done.
func (m *Manager) Save(fh *multipart.FileHeader, kind Kind) (string, error) {
	exts, limit := m.rules(kind)

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	wantMIME, ok := exts[ext]
	if !ok {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	// The declared Content-Type is checked against the extension's expected
	// type, but the extension is authoritative: a .txt named image/png is
	// rejected above, a .png declaring text/plain is rejected here.
	if ct := fh.Header.Get("Content-Type"); ct != "" && !mimeMatches(ct, wantMIME) {
		return "", fmt.Errorf("content type %q does not match %s file", ct, ext)
	}

	if fh.Size > limit {
		return "", fmt.Errorf("file exceeds the %dMB limit", limit/(1024*1024))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(m.Dir, "upload-"+uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer dst.Close()

	// Enforce the ceiling on actual bytes too, not just the declared size.
	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if n > limit {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds the %dMB limit", limit/(1024*1024))
	}

	return path, nil
}

// Remove deletes a previously saved temp file. Missing files are fine.
func (m *Manager) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		// swept later
		return
	}
}

func (m *Manager) rules(kind Kind) (map[string]string, int64) {
	switch kind {
	case KindPDF:
		return pdfExts, m.MaxFileSize
	case KindAudio:
		return audioExts, m.MaxAudioSize
	default:
		return imageExts, m.MaxFileSize
	}
}

func mimeMatches(declared, want string) bool {
	declared = strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	if declared == want {
		return true
	}
	// Browsers disagree on a few spellings.
	switch declared {
	case "image/jpg":
		return want == "image/jpeg"
	case "audio/x-wav", "audio/wave":
		return want == "audio/wav"
	case "audio/x-m4a", "audio/aac":
		return want == "audio/mp4"
	}
	return false
}
