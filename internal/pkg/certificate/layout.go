package certificate

// Layout pins every text block and overlay to fixed pixel coordinates
// of the template image. The values assume the stock 2000x1414 template;
// a template with other dimensions will silently misplace the text.
type Layout struct {
	NameY           int     // Baseline of the student name
	NameFontSize    float64 // Starting size, shrunk to fit when needed
	PhraseY         int     // Baseline of the first phrase line
	PhraseFontSize  float64
	PhraseWrapWidth int // Maximum phrase line width in pixels
	PhraseLineGap   int // Baseline-to-baseline distance between wrapped lines
	CourseY         int
	CourseFontSize  float64
	DetailsY        int // Hours and completion date line
	DetailsFontSize float64
	ProfessorX      int // Left edge of the professor name under the signature
	ProfessorY      int
	SignatureX      int
	SignatureY      int
	SignatureWidth  int // Signature is scaled to this width, aspect kept
	QRX             int
	QRY             int
	QRSize          int
}

// DefaultLayout matches the stock certificate template
func DefaultLayout() Layout {
	return Layout{
		NameY:           560,
		NameFontSize:    96,
		PhraseY:         720,
		PhraseFontSize:  36,
		PhraseWrapWidth: 1400,
		PhraseLineGap:   52,
		CourseY:         930,
		CourseFontSize:  52,
		DetailsY:        1010,
		DetailsFontSize: 32,
		ProfessorX:      1320,
		ProfessorY:      1270,
		SignatureX:      1300,
		SignatureY:      1100,
		SignatureWidth:  360,
		QRX:             120,
		QRY:             1080,
		QRSize:          220,
	}
}
