package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"otomoto_scrooper/logging"
	"otomoto_scrooper/media"
	"otomoto_scrooper/models"
)

// A4 portrait split into a 30x5 grid. Each card spans the full width; the
// image takes the first 12 columns.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	pageMargin   = 10.0
	gridColumns  = 30
	imageColumns = 12
	cardsPerPage = 3
	cardGap      = 4.0
	ptToMM       = 0.3528
)

// ImageSource resolves a listing image URL into embeddable bytes.
type ImageSource interface {
	Fetch(ctx context.Context, imageURL string) (*media.Image, error)
}

var polishFold = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n", "ś", "s", "ź", "z", "ż", "z",
	"Ą", "A", "Ć", "C", "Ę", "E", "Ł", "L", "Ń", "N", "Ś", "S", "Ź", "Z", "Ż", "Z",
)

type PDFExporter struct {
	dir      string
	fontPath string
	images   ImageSource
	now      func() time.Time
	log      zerolog.Logger
}

// NewPDFExporter renders cards with the TTF at fontPath, or Helvetica when
// fontPath is empty. images may be nil to skip pictures.
func NewPDFExporter(dir, fontPath string, images ImageSource) *PDFExporter {
	return &PDFExporter{
		dir:      dir,
		fontPath: fontPath,
		images:   images,
		now:      time.Now,
		log:      logging.For("export"),
	}
}

func (e *PDFExporter) Format() Format {
	return FormatPDF
}

func (e *PDFExporter) Export(ctx context.Context, records []models.Record) (string, error) {
	path := ReportPath(e.dir, FormatPDF, e.now())
	if err := ensureDir(path); err != nil {
		return "", err
	}

	doc := e.newDocument()

	if len(records) == 0 {
		doc.pdf.AddPage()
		doc.text(pageMargin, pageMargin, pageWidth-2*pageMargin, "", 12, "No listings")
	}

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if i%cardsPerPage == 0 {
			doc.pdf.AddPage()
		}
		e.card(ctx, doc, i%cardsPerPage, r)
	}

	if err := doc.pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

// PageCount is the number of pages a report with n records has.
func PageCount(n int) int {
	if n == 0 {
		return 1
	}
	return (n + cardsPerPage - 1) / cardsPerPage
}

type document struct {
	pdf        *fpdf.Fpdf
	family     string
	translate  func(string) string
	registered map[string]bool
}

func (e *PDFExporter) newDocument() *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle("Otomoto report", true)

	doc := &document{pdf: pdf, registered: make(map[string]bool)}

	if e.fontPath != "" {
		pdf.AddUTF8Font("Report", "", e.fontPath)
		pdf.AddUTF8Font("Report", "B", e.fontPath)
		doc.family = "Report"
		doc.translate = func(s string) string { return s }
		return doc
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	doc.family = "Helvetica"
	doc.translate = func(s string) string { return tr(polishFold.Replace(s)) }
	return doc
}

func (e *PDFExporter) card(ctx context.Context, doc *document, slot int, r models.Record) {
	usableWidth := pageWidth - 2*pageMargin
	cardHeight := (pageHeight - 2*pageMargin) / cardsPerPage
	column := usableWidth / gridColumns

	top := pageMargin + float64(slot)*cardHeight
	imageWidth := column*imageColumns - cardGap
	imageHeight := cardHeight - 2*cardGap
	textX := pageMargin + column*imageColumns
	textWidth := usableWidth - column*imageColumns

	e.image(ctx, doc, r.Image, pageMargin, top+cardGap, imageWidth, imageHeight)

	y := top + cardGap
	y = doc.text(textX, y, textWidth, "B", 16, r.Title)
	y = doc.text(textX, y, textWidth, "B", 12, joinNonEmpty(" ", r.Price, r.Currency))
	y = doc.text(textX, y, textWidth, "", 10, r.ProductionDate)
	y = doc.text(textX, y, textWidth, "", 10, joinNonEmpty(" / ", r.Tank, r.Power, r.Mileage, r.FuelType, r.Gearbox))
	y = doc.text(textX, y, textWidth, "", 10, r.Equipment)
	doc.text(textX, y, textWidth, "", 8, r.Location)

	if slot < cardsPerPage-1 {
		doc.pdf.SetDrawColor(200, 200, 200)
		doc.pdf.Line(pageMargin, top+cardHeight, pageWidth-pageMargin, top+cardHeight)
	}
}

// image draws the listing picture scaled to fit the box. Failures leave the
// box empty.
func (e *PDFExporter) image(ctx context.Context, doc *document, url string, x, y, w, h float64) {
	if e.images == nil || url == "" {
		return
	}

	img, err := e.images.Fetch(ctx, url)
	if err != nil {
		e.log.Warn().Err(err).Str("url", url).Msg("Image skipped")
		return
	}

	opts := fpdf.ImageOptions{ImageType: img.Type}
	if !doc.registered[img.Name] {
		doc.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		if err := doc.pdf.Error(); err != nil {
			e.log.Warn().Err(err).Str("url", url).Msg("Image rejected")
			doc.pdf.ClearError()
			return
		}
		doc.registered[img.Name] = true
	}

	drawW, drawH := fit(float64(img.Width), float64(img.Height), w, h)
	doc.pdf.ImageOptions(img.Name, x+(w-drawW)/2, y+(h-drawH)/2, drawW, drawH, false, opts, 0, "")
}

// text writes one wrapped paragraph and returns the y below it. Empty text
// takes no space.
func (d *document) text(x, y, width float64, style string, size float64, s string) float64 {
	if strings.TrimSpace(s) == "" {
		return y
	}
	lineHeight := size * ptToMM * 1.4
	d.pdf.SetFont(d.family, style, size)
	d.pdf.SetXY(x, y)
	d.pdf.MultiCell(width, lineHeight, d.translate(s), "", "L", false)
	return d.pdf.GetY() + 1
}

func fit(imgW, imgH, boxW, boxH float64) (float64, float64) {
	if imgW <= 0 || imgH <= 0 {
		return boxW, boxH
	}
	scale := boxW / imgW
	if imgH*scale > boxH {
		scale = boxH / imgH
	}
	return imgW * scale, imgH * scale
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
