// Package export renders the claim pipeline as an Excel workbook.
package export

import (
	"io"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

// SummarySheet lists every category with its claim count and total value
const SummarySheet = "Summary"

// ClaimHeader is the header row of every category sheet
var ClaimHeader = []string{
	"Claim ID",
	"Contact",
	"Lender",
	"Status",
	"Claim Value",
	"Product Type",
	"Days In Stage",
	"Created",
}

var summaryHeader = []string{"Category", "Claims", "Total Value"}

var claimColumnWidths = []float64{12, 28, 22, 28, 14, 18, 14, 20}

// WritePipeline writes a workbook with one summary sheet and one sheet per
// pipeline category, named by the category id. Claims with an unknown status
// are skipped.
func WritePipeline(w io.Writer, claims []*model.Claim) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	grouped := make(map[types.StatusCategory][]*model.Claim)
	for _, c := range claims {
		category := c.Category()
		if category == "" {
			continue
		}
		grouped[category] = append(grouped[category], c)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create header style")
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return goerr.Wrap(err, "failed to rename default sheet")
	}
	if err := writeRow(f, SummarySheet, 1, toAny(summaryHeader), headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 30); err != nil {
		return goerr.Wrap(err, "failed to set column width", goerr.V("sheet", SummarySheet))
	}

	for i, category := range types.AllStatusCategories() {
		rows := grouped[category]
		model.SortClaims(rows)

		var total float64
		for _, c := range rows {
			total += c.ClaimValue
		}
		if err := writeRow(f, SummarySheet, i+2, []any{category.Title(), len(rows), total}, 0); err != nil {
			return err
		}

		if err := writeCategorySheet(f, category, rows, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return goerr.Wrap(err, "failed to write workbook")
	}
	return nil
}

func writeCategorySheet(f *excelize.File, category types.StatusCategory, claims []*model.Claim, headerStyle int) error {
	sheet := category.String()
	if _, err := f.NewSheet(sheet); err != nil {
		return goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", sheet))
	}

	if err := writeRow(f, sheet, 1, toAny(ClaimHeader), headerStyle); err != nil {
		return err
	}
	for i, width := range claimColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return goerr.Wrap(err, "failed to convert column number")
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return goerr.Wrap(err, "failed to set column width", goerr.V("sheet", sheet))
		}
	}

	for i, c := range claims {
		row := []any{
			c.ID,
			c.ContactName,
			c.Lender,
			c.Status.String(),
			c.ClaimValue,
			c.ProductType,
			c.DaysInStage,
			"",
		}
		if !c.CreatedAt.IsZero() {
			row[7] = c.CreatedAt.Format("2006-01-02 15:04")
		}
		if err := writeRow(f, sheet, i+2, row, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return goerr.Wrap(err, "failed to convert coordinates", goerr.V("row", row))
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return goerr.Wrap(err, "failed to set row", goerr.V("sheet", sheet), goerr.V("row", row))
	}
	if style == 0 {
		return nil
	}

	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return goerr.Wrap(err, "failed to convert coordinates", goerr.V("row", row))
	}
	if err := f.SetCellStyle(sheet, start, end, style); err != nil {
		return goerr.Wrap(err, "failed to set style", goerr.V("sheet", sheet))
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
