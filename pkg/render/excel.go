package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dkoosis/prefscan/pkg/style"
)

// SheetName is the single worksheet of the spreadsheet report.
const SheetName = "Preferences"

// borderStyles maps the configuration line-style names onto the
// numeric codes the xlsx format uses.
var borderStyles = map[string]int{
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
}

// Excel writes the styled spreadsheet report via excelize.
type Excel struct{}

// Write renders the styled rows into an xlsx workbook on w. Styles are
// registered once per distinct cell style and reused across cells.
func (Excel) Write(w io.Writer, rows []style.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	styleIDs := make(map[string]int)
	for r, row := range rows {
		for c, cell := range row.Cells {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(SheetName, name, cell.Value); err != nil {
				return fmt.Errorf("setting cell %s: %w", name, err)
			}
			id, err := styleID(f, styleIDs, cell.Style)
			if err != nil {
				return err
			}
			if id != 0 {
				if err := f.SetCellStyle(SheetName, name, name, id); err != nil {
					return fmt.Errorf("styling cell %s: %w", name, err)
				}
			}
		}
	}

	if len(rows) > 0 && len(rows[0].Cells) > 0 {
		last, err := excelize.ColumnNumberToName(len(rows[0].Cells))
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(SheetName, "A", last, 28); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func styleID(f *excelize.File, cache map[string]int, cs style.CellStyle) (int, error) {
	xs := toExcelize(cs)
	if xs == nil {
		return 0, nil
	}
	key := fmt.Sprintf("%+v|%+v|%+v|%+v", cs.Font, cs.Fill, cs.Border, cs.Alignment)
	if id, ok := cache[key]; ok {
		return id, nil
	}
	id, err := f.NewStyle(xs)
	if err != nil {
		return 0, fmt.Errorf("registering style: %w", err)
	}
	cache[key] = id
	return id, nil
}

// toExcelize translates the neutral cell style into excelize's style
// model. Returns nil when every member is unset.
func toExcelize(cs style.CellStyle) *excelize.Style {
	if cs.Font == nil && cs.Fill == nil && cs.Border == nil && cs.Alignment == nil {
		return nil
	}
	xs := &excelize.Style{}
	if cs.Font != nil {
		xs.Font = &excelize.Font{
			Family: cs.Font.Name,
			Size:   cs.Font.Size,
			Bold:   cs.Font.Bold,
			Italic: cs.Font.Italic,
			Color:  cs.Font.Color,
		}
	}
	if cs.Fill != nil && cs.Fill.Color != "" {
		xs.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{cs.Fill.Color}}
	}
	if cs.Border != nil {
		code, ok := borderStyles[cs.Border.Style]
		if !ok {
			code = borderStyles["thin"]
		}
		for _, edge := range []string{"left", "right", "top", "bottom"} {
			xs.Border = append(xs.Border, excelize.Border{
				Type:  edge,
				Style: code,
				Color: cs.Border.Color,
			})
		}
	}
	if cs.Alignment != nil {
		xs.Alignment = &excelize.Alignment{
			Horizontal: cs.Alignment.Horizontal,
			Vertical:   cs.Alignment.Vertical,
			WrapText:   cs.Alignment.WrapText,
		}
	}
	return xs
}
