package certificate

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

func writeTestFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeTestTemplate(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, white)
		}
	}

	path := filepath.Join(t.TempDir(), "template.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRenderData() RenderData {
	return RenderData{
		StudentID:      42,
		StudentName:    "Maria da Silva",
		Phrase:         "concluiu com aproveitamento o curso de Eletricista Predial.",
		CourseName:     "Eletricista Predial",
		Hours:          40,
		CompletionDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		ProfessorName:  "Prof. Carlos",
	}
}

func TestNewRendererMissingFont(t *testing.T) {
	_, err := NewRenderer("template.jpg", "does-not-exist.ttf", t.TempDir(), 90)
	if err == nil {
		t.Fatal("NewRenderer accepted a missing font file")
	}
}

func TestRenderProducesJPEG(t *testing.T) {
	template := writeTestTemplate(t, 2000, 1414)
	outDir := t.TempDir()

	r, err := NewRenderer(template, writeTestFont(t), outDir, 90)
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	path, err := r.Render(testRenderData())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "42_maria-da-silva_") || !strings.HasSuffix(base, ".jpg") {
		t.Errorf("unexpected output filename %q", base)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	defer f.Close()

	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("output is not a valid JPEG: %v", err)
	}
	if img.Bounds().Dx() != 2000 || img.Bounds().Dy() != 1414 {
		t.Errorf("output dimensions = %v, want template size", img.Bounds())
	}
}

func TestRenderSkipsMissingOverlays(t *testing.T) {
	template := writeTestTemplate(t, 800, 566)

	r, err := NewRenderer(template, writeTestFont(t), t.TempDir(), 90)
	if err != nil {
		t.Fatal(err)
	}

	data := testRenderData()
	data.SignaturePath = "does-not-exist.png"
	data.QRPath = "also-missing.png"

	if _, err := r.Render(data); err != nil {
		t.Errorf("Render failed on missing overlays: %v", err)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	r, err := NewRenderer(filepath.Join(t.TempDir(), "nope.jpg"), writeTestFont(t), t.TempDir(), 90)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Render(testRenderData())
	if !errors.Is(err, apperrors.ErrTemplateUnavailable) {
		t.Errorf("Render error = %v, want ErrTemplateUnavailable", err)
	}

	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatal("Render error is not a RenderError")
	}
	if renderErr.Stage != "template" || renderErr.StudentID != 42 {
		t.Errorf("RenderError = %+v", renderErr)
	}
}

func TestWrapText(t *testing.T) {
	r, err := NewRenderer("unused.jpg", writeTestFont(t), t.TempDir(), 90)
	if err != nil {
		t.Fatal(err)
	}

	lines, err := r.wrapText("alpha beta gamma delta epsilon zeta eta theta", 36, 300)
	if err != nil {
		t.Fatalf("wrapText returned error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %q", lines)
	}
	if strings.Join(lines, " ") != "alpha beta gamma delta epsilon zeta eta theta" {
		t.Errorf("wrapped lines lose words: %q", lines)
	}

	empty, err := r.wrapText("   ", 36, 300)
	if err != nil {
		t.Fatal(err)
	}
	if empty != nil {
		t.Errorf("blank text should wrap to no lines, got %q", empty)
	}
}
