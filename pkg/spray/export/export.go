package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"agrocrm/entities"
	"agrocrm/pkg/apperr"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"

	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Render builds the mix sheet of a saved calculation in the requested format.
func Render(calc *entities.SprayCalculation, format string) (*Document, error) {
	var (
		body []byte
		ct   string
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPDF:
		format, ct = FormatPDF, contentTypePDF
		body, err = MixSheetPDF(calc)
	case FormatXLSX:
		format, ct = FormatXLSX, contentTypeXLSX
		body, err = MixSheetXLSX(calc)
	default:
		return nil, apperr.Invalid(fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "render %s", format)
	}
	return &Document{Filename: filename(calc, format), ContentType: ct, Body: body}, nil
}

func filename(calc *entities.SprayCalculation, ext string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, strings.TrimSpace(calc.Name))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "calda"
	}
	return fmt.Sprintf("%s-%d.%s", slug, calc.CalcID, ext)
}

// MixSheetPDF renders the loading sheet an operator takes to the sprayer.
func MixSheetPDF(calc *entities.SprayCalculation) ([]byte, error) {
	res := calc.Results

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, tr("Spray mix sheet: "+calc.Name))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Saved: %s", calc.CreatedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Area (ha): %.2f", calc.Area))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Spray rate (L/ha): %.2f", calc.SprayRate))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Tank volume (L): %.2f", calc.TankVolume))
	pdf.Ln(8)
	pdf.Cell(0, 6, fmt.Sprintf("Total water (L): %d", res.TotalWater))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Tank loads: %d", res.TankCount))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Per tank", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Unit", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, p := range res.ProductPlans {
		pdf.CellFormat(70, 6, tr(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", p.TotalQuantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", p.QuantityPerTank), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, p.Unit.Quantity(), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MixSheetXLSX writes a summary sheet and one row per product.
func MixSheetXLSX(calc *entities.SprayCalculation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	summary, products := "summary", "products"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(products); err != nil {
		return nil, err
	}

	if err := writeMixSheet(f, summary, products, calc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type sheetWriter interface {
	SetCellValue(sheet, cell string, value any) error
	SetSheetRow(sheet, cell string, slice any) error
}

func writeMixSheet(f sheetWriter, summary, products string, calc *entities.SprayCalculation) error {
	rows := [][2]any{
		{"Name", calc.Name},
		{"Saved", calc.CreatedAt.Format(time.RFC3339)},
		{"Area (ha)", calc.Area},
		{"Spray rate (L/ha)", calc.SprayRate},
		{"Tank volume (L)", calc.TankVolume},
		{"Total water (L)", calc.Results.TotalWater},
		{"Tank loads", calc.Results.TankCount},
	}
	for i, r := range rows {
		if err := f.SetCellValue(summary, fmt.Sprintf("A%d", i+1), r[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summary, fmt.Sprintf("B%d", i+1), r[1]); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(products, "A1", &[]any{"Product", "Total", "Per tank", "Unit"}); err != nil {
		return err
	}
	for i, p := range calc.Results.ProductPlans {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(products, cell, &[]any{p.Name, p.TotalQuantity, p.QuantityPerTank, string(p.Unit)}); err != nil {
			return err
		}
	}
	return nil
}
