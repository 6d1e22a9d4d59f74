package shoppinglist

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Filename is the attachment name of the downloaded list
const Filename = "shopping_cart.pdf"

// Page geometry in points from the top-left corner of an A4 page
const (
	titleY      = 72.0
	titleSize   = 20.0
	centerX     = 300.0
	ruleY       = 92.0
	ruleLeft    = 30.0
	ruleRight   = 550.0
	firstLineX  = 40.0
	firstLineY  = 162.0
	lineSize    = 12.0
	lineLeading = 18.0
	fontFamily  = "listfont"
)

//go:embed fonts/DejaVuSansCondensed.ttf
var defaultFont []byte

// Renderer draws a shopping list as a PDF document
type Renderer struct {
	title    string
	fontPath string
}

// NewRenderer uses the TTF at fontPath when set, otherwise the bundled DejaVu Sans.
func NewRenderer(title, fontPath string) *Renderer {
	return &Renderer{title: title, fontPath: fontPath}
}

func (r *Renderer) Render(w io.Writer, items []Line) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(r.title, true)
	pdf.SetCreator("foodgram", true)

	if r.fontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", r.fontPath)
	} else {
		pdf.AddUTF8FontFromBytes(fontFamily, "", defaultFont)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	index := 1
	for _, page := range Paginate(items, LinesPerPage) {
		pdf.AddPage()

		pdf.SetFont(fontFamily, "", titleSize)
		pdf.Text(centerX-pdf.GetStringWidth(r.title)/2, titleY, r.title)
		pdf.Line(ruleLeft, ruleY, ruleRight, ruleY)

		pdf.SetFont(fontFamily, "", lineSize)
		y := firstLineY
		for _, item := range page {
			pdf.Text(firstLineX, y, FormatLine(index, item))
			y += lineLeading
			index++
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
