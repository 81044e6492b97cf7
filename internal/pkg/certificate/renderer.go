package certificate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	xdraw "golang.org/x/image/draw"

	"github.com/rmoreira/capacita/internal/pkg/apperrors"
	"github.com/rmoreira/capacita/internal/pkg/helpers"
	"github.com/rmoreira/capacita/internal/pkg/logger"
)

// RenderError wraps any image-pipeline failure with the affected student
type RenderError struct {
	StudentID int64
	Stage     string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("certificate render failed for student %d at %s: %v", e.StudentID, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// RenderData is the fully joined record a certificate is drawn from
type RenderData struct {
	StudentID      int64
	StudentName    string
	Phrase         string
	CourseName     string
	Hours          int
	CompletionDate time.Time
	ProfessorName  string
	SignaturePath  string // Optional, skipped when missing
	QRPath         string // Optional, skipped when missing
}

// Renderer draws certificates onto a fixed template image
type Renderer struct {
	templatePath string
	outputDir    string
	quality      int
	layout       Layout
	fontData     *opentype.Font
}

// NewRenderer loads the certificate font and prepares the output
// directory. The template itself is re-read per render so an admin can
// swap the file without a restart.
func NewRenderer(templatePath, fontPath, outputDir string, quality int) (*Renderer, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate font %s: %w", fontPath, err)
	}

	parsedFont, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate font: %w", err)
	}

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create certificate output directory: %w", err)
	}

	return &Renderer{
		templatePath: templatePath,
		outputDir:    outputDir,
		quality:      quality,
		layout:       DefaultLayout(),
		fontData:     parsedFont,
	}, nil
}

// Render draws a certificate and writes it as JPEG, returning the
// output path. The filename carries the student id, a name slug and a
// timestamp so repeated generations never collide.
func (r *Renderer) Render(data RenderData) (string, error) {
	rgba, err := r.loadTemplate()
	if err != nil {
		return "", &RenderError{StudentID: data.StudentID, Stage: "template", Err: err}
	}

	layout := r.layout
	width := rgba.Bounds().Dx()

	black := color.RGBA{30, 30, 30, 255}

	if err := r.drawCentered(rgba, data.StudentName, layout.NameY, layout.NameFontSize, width, black); err != nil {
		return "", &RenderError{StudentID: data.StudentID, Stage: "name", Err: err}
	}

	lines, err := r.wrapText(data.Phrase, layout.PhraseFontSize, layout.PhraseWrapWidth)
	if err != nil {
		return "", &RenderError{StudentID: data.StudentID, Stage: "phrase", Err: err}
	}
	y := layout.PhraseY
	for _, line := range lines {
		if err := r.drawCentered(rgba, line, y, layout.PhraseFontSize, width, black); err != nil {
			return "", &RenderError{StudentID: data.StudentID, Stage: "phrase", Err: err}
		}
		y += layout.PhraseLineGap
	}

	if err := r.drawCentered(rgba, data.CourseName, layout.CourseY, layout.CourseFontSize, width, black); err != nil {
		return "", &RenderError{StudentID: data.StudentID, Stage: "course", Err: err}
	}

	details := fmt.Sprintf("Carga horária: %dh  •  Conclusão: %s",
		data.Hours, data.CompletionDate.Format("02/01/2006"))
	if err := r.drawCentered(rgba, details, layout.DetailsY, layout.DetailsFontSize, width, black); err != nil {
		return "", &RenderError{StudentID: data.StudentID, Stage: "details", Err: err}
	}

	if err := r.drawAt(rgba, data.ProfessorName, layout.ProfessorX, layout.ProfessorY, layout.DetailsFontSize, black); err != nil {
		return "", &RenderError{StudentID: data.StudentID, Stage: "professor", Err: err}
	}

	// Signature and QR are best-effort overlays
	r.compositeSignature(rgba, data)
	r.compositeQR(rgba, data)

	filename := fmt.Sprintf("%d_%s_%d.jpg", data.StudentID, helpers.Slugify(data.StudentName), time.Now().Unix())
	outPath := filepath.Join(r.outputDir, filename)

	if err := r.saveJPEG(rgba, outPath); err != nil {
		return "", &RenderError{StudentID: data.StudentID, Stage: "save", Err: err}
	}

	return outPath, nil
}

// loadTemplate decodes the template into a drawable RGBA image
func (r *Renderer) loadTemplate() (*image.RGBA, error) {
	file, err := os.Open(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTemplateUnavailable, r.templatePath)
	}
	defer file.Close()

	template, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decode failed: %v", apperrors.ErrTemplateUnavailable, err)
	}

	rgba := image.NewRGBA(template.Bounds())
	draw.Draw(rgba, rgba.Bounds(), template, image.Point{}, draw.Src)
	return rgba, nil
}

func (r *Renderer) newFace(size float64) (font.Face, error) {
	return opentype.NewFace(r.fontData, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// drawCentered draws a single line horizontally centered at the given
// baseline, shrinking the font until the text fits inside 93% of the
// image width.
func (r *Renderer) drawCentered(img *image.RGBA, text string, baselineY int, size float64, imgWidth int, col color.Color) error {
	if text == "" {
		return nil
	}

	face, err := r.newFace(size)
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}

	textWidth := d.MeasureString(text).Ceil()
	maxWidth := int(float64(imgWidth) * 0.93)
	if textWidth > maxWidth {
		size *= float64(maxWidth) / float64(textWidth)
		face, err = r.newFace(size)
		if err != nil {
			return err
		}
		d.Face = face
		textWidth = d.MeasureString(text).Ceil()
	}

	d.Dot = fixed.Point26_6{
		X: fixed.I((imgWidth - textWidth) / 2),
		Y: fixed.I(baselineY),
	}
	d.DrawString(text)
	return nil
}

// drawAt draws a single line at a fixed position without centering
func (r *Renderer) drawAt(img *image.RGBA, text string, x, baselineY int, size float64, col color.Color) error {
	if text == "" {
		return nil
	}

	face, err := r.newFace(size)
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baselineY)},
	}
	d.DrawString(text)
	return nil
}

// wrapText greedily packs words into lines no wider than maxWidth
func (r *Renderer) wrapText(text string, size float64, maxWidth int) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	face, err := r.newFace(size)
	if err != nil {
		return nil, err
	}
	d := &font.Drawer{Face: face}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if d.MeasureString(candidate).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	lines = append(lines, current)
	return lines, nil
}

// compositeSignature overlays the professor signature scaled to the
// configured width. A missing or unreadable signature is tolerated.
func (r *Renderer) compositeSignature(rgba *image.RGBA, data RenderData) {
	if data.SignaturePath == "" {
		return
	}

	sig, err := decodeImage(data.SignaturePath)
	if err != nil {
		logger.Warn().Err(err).Int64("studentId", data.StudentID).Msg("Signature image unavailable, skipping")
		return
	}

	layout := r.layout
	scale := float64(layout.SignatureWidth) / float64(sig.Bounds().Dx())
	height := int(float64(sig.Bounds().Dy()) * scale)

	target := image.Rect(layout.SignatureX, layout.SignatureY,
		layout.SignatureX+layout.SignatureWidth, layout.SignatureY+height)
	xdraw.ApproxBiLinear.Scale(rgba, target, sig, sig.Bounds(), xdraw.Over, nil)
}

// compositeQR overlays the verification QR code. Absence is tolerated:
// the certificate is simply rendered without it.
func (r *Renderer) compositeQR(rgba *image.RGBA, data RenderData) {
	if data.QRPath == "" {
		return
	}

	qr, err := decodeImage(data.QRPath)
	if err != nil {
		logger.Warn().Err(err).Int64("studentId", data.StudentID).Msg("QR image unavailable, skipping")
		return
	}

	layout := r.layout
	target := image.Rect(layout.QRX, layout.QRY, layout.QRX+layout.QRSize, layout.QRY+layout.QRSize)
	xdraw.ApproxBiLinear.Scale(rgba, target, qr, qr.Bounds(), xdraw.Over, nil)
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

func (r *Renderer) saveJPEG(img *image.RGBA, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: r.quality})
}
