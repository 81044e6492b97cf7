package qrcode

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/rmoreira/capacita/internal/pkg/logger"
)

const qrSize = 300 // Pixels, square

// Generator produces verification QR codes for student certificates.
// Output files are cached by name: the content is deterministic given
// the student code and base URL, so an existing file is returned as-is.
type Generator struct {
	baseURL     string
	outputDir   string
	fallbackAPI string // Chart-API endpoint used when local encoding fails, optional
	client      *http.Client
}

// NewGenerator creates a new QR code generator
func NewGenerator(baseURL, outputDir, fallbackAPI string) *Generator {
	return &Generator{
		baseURL:     baseURL,
		outputDir:   outputDir,
		fallbackAPI: fallbackAPI,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// VerificationURL returns the public URL a certificate QR points at
func (g *Generator) VerificationURL(studentCode string) string {
	return fmt.Sprintf("%s/verificar/%s", g.baseURL, studentCode)
}

// Generate writes (or reuses) the QR PNG for a student code and
// returns its path. An empty path with nil error means both the local
// encoder and the fallback failed; callers render without the QR.
func (g *Generator) Generate(studentCode string) (string, error) {
	if err := os.MkdirAll(g.outputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create qrcode directory: %w", err)
	}

	qrPath := filepath.Join(g.outputDir, fmt.Sprintf("qrcode_%s.png", studentCode))

	// Cache hit: same code and base URL always encode the same image
	if _, err := os.Stat(qrPath); err == nil {
		return qrPath, nil
	}

	target := g.VerificationURL(studentCode)

	if err := qrcode.WriteFile(target, qrcode.Medium, qrSize, qrPath); err == nil {
		return qrPath, nil
	} else {
		logger.Warn().Err(err).Str("code", studentCode).Msg("Local QR encoding failed, trying fallback API")
	}

	if g.fallbackAPI == "" {
		return "", nil
	}

	// Single best-effort fetch, no retry
	if err := g.fetchFallback(target, qrPath); err != nil {
		logger.Warn().Err(err).Str("code", studentCode).Msg("QR fallback API failed")
		return "", nil
	}

	return qrPath, nil
}

func (g *Generator) fetchFallback(target, qrPath string) error {
	reqURL := fmt.Sprintf("%s?size=%dx%d&data=%s", g.fallbackAPI, qrSize, qrSize, url.QueryEscape(target))

	resp, err := g.client.Get(reqURL)
	if err != nil {
		return fmt.Errorf("failed to fetch QR from fallback API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fallback API returned status %d", resp.StatusCode)
	}

	out, err := os.Create(qrPath)
	if err != nil {
		return fmt.Errorf("failed to create QR file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(qrPath)
		return fmt.Errorf("failed to save QR response: %w", err)
	}

	return nil
}
