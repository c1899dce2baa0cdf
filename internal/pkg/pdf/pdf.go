package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
)

// SignatureImage is an embedded signature picture.
type SignatureImage struct {
	Data        []byte
	ContentType string
}

// RangeData is one requested date range as rendered in the letter table.
type RangeData struct {
	Start time.Time
	End   time.Time
	Days  decimal.Decimal
}

// DocumentData is everything the letter layout needs. The renderer does
// not reach back into the domain; callers assemble this snapshot.
type DocumentData struct {
	RequestID      string
	EmployeeName   string
	Position       string
	TeamName       string
	AuthorizerName string
	SubmittedAt    time.Time
	Ranges         []RangeData
	TotalDays      decimal.Decimal
	Remarks        string
	Format         leave.DocumentFormat

	RequesterSignature  *SignatureImage
	AuthorizerSignature *SignatureImage
}

// Renderer produces the leave-request letter as PDF bytes.
type Renderer interface {
	Render(data DocumentData) ([]byte, error)
}

type gofpdfRenderer struct{}

func NewRenderer() Renderer {
	return &gofpdfRenderer{}
}

func (r *gofpdfRenderer) Render(data DocumentData) ([]byte, error) {
	if !data.Format.IsValid() {
		return nil, leave.ErrInvalidDocumentFormat
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	switch data.Format {
	case leave.FormatCorporate:
		renderCorporate(doc, data)
	default:
		renderStandard(doc, data)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderStandard(doc *gofpdf.Fpdf, data DocumentData) {
	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Leave Request")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 7, fmt.Sprintf("Request: %s", data.RequestID))
	doc.Ln(6)
	doc.Cell(0, 7, fmt.Sprintf("Employee: %s", data.EmployeeName))
	doc.Ln(6)
	if data.Position != "" {
		doc.Cell(0, 7, fmt.Sprintf("Position: %s", data.Position))
		doc.Ln(6)
	}
	if data.TeamName != "" {
		doc.Cell(0, 7, fmt.Sprintf("Team: %s", data.TeamName))
		doc.Ln(6)
	}
	doc.Cell(0, 7, fmt.Sprintf("Submitted: %s", data.SubmittedAt.Format("2006-01-02")))
	doc.Ln(10)

	rangeTable(doc, data)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 8, fmt.Sprintf("Total chargeable days: %s", data.TotalDays.String()))
	doc.Ln(8)

	if data.Remarks != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 6, fmt.Sprintf("Remarks: %s", data.Remarks), "", "L", false)
		doc.Ln(4)
	}

	signatureBlocks(doc, data)
}

func renderCorporate(doc *gofpdf.Fpdf, data DocumentData) {
	doc.SetFillColor(230, 230, 230)
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 12, "DIGITAL GEKO - VACATION DAYS CERTIFICATE", "1", 1, "C", true, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 11)
	submitted := data.SubmittedAt.Format("January 2, 2006")
	body := fmt.Sprintf(
		"This certifies that %s (%s) has requested the vacation days listed below, submitted on %s.",
		data.EmployeeName, strings.TrimSpace(data.Position+" "+data.TeamName), submitted,
	)
	doc.MultiCell(0, 6, body, "", "L", false)
	doc.Ln(4)

	rangeTable(doc, data)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, fmt.Sprintf("Total: %s day(s)", data.TotalDays.String()), "1", 1, "C", false, 0, "")
	doc.Ln(6)

	if data.Remarks != "" {
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, 6, data.Remarks, "", "L", false)
		doc.Ln(4)
	}

	signatureBlocks(doc, data)
}

func rangeTable(doc *gofpdf.Fpdf, data DocumentData) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(60, 8, "From", "1", 0, "C", false, 0, "")
	doc.CellFormat(60, 8, "To", "1", 0, "C", false, 0, "")
	doc.CellFormat(40, 8, "Days", "1", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, rg := range data.Ranges {
		doc.CellFormat(60, 8, rg.Start.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		doc.CellFormat(60, 8, rg.End.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		doc.CellFormat(40, 8, rg.Days.String(), "1", 1, "C", false, 0, "")
	}
	doc.Ln(4)
}

func signatureBlocks(doc *gofpdf.Fpdf, data DocumentData) {
	doc.Ln(10)
	y := doc.GetY()

	drawSignature(doc, "sig_requester", data.RequesterSignature, 20, y)
	doc.SetXY(20, y+24)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(70, 6, data.EmployeeName, "T", 0, "C", false, 0, "")

	drawSignature(doc, "sig_authorizer", data.AuthorizerSignature, 120, y)
	doc.SetXY(120, y+24)
	doc.CellFormat(70, 6, data.AuthorizerName, "T", 0, "C", false, 0, "")

	doc.Ln(8)
	doc.SetX(20)
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(70, 5, "Requested by", "", 0, "C", false, 0, "")
	doc.SetX(120)
	doc.CellFormat(70, 5, "Authorized by", "", 1, "C", false, 0, "")
}

func drawSignature(doc *gofpdf.Fpdf, name string, sig *SignatureImage, x, y float64) {
	if sig == nil || len(sig.Data) == 0 {
		return
	}
	imageType := imageTypeFor(sig.ContentType)
	if imageType == "" {
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(sig.Data))
	doc.ImageOptions(name, x+10, y, 50, 20, false, opts, 0, "")
}

func imageTypeFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "PNG"
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/gif":
		return "GIF"
	}
	return ""
}
