// Package style annotates flattened report rows with formatting
// directives. The output is a language-neutral row/cell model — the
// spreadsheet writer consumes it, this package never touches files.
package style

import (
	"github.com/dkoosis/prefscan/pkg/table"
)

// Font describes cell text formatting. Color is hex RRGGBB.
type Font struct {
	Name   string  `yaml:"name,omitempty"`
	Size   float64 `yaml:"size,omitempty"`
	Bold   bool    `yaml:"bold,omitempty"`
	Italic bool    `yaml:"italic,omitempty"`
	Color  string  `yaml:"color,omitempty"`
}

// Fill is a solid background color, hex RRGGBB.
type Fill struct {
	Color string `yaml:"color,omitempty"`
}

// Border applies one line style to all four cell edges.
type Border struct {
	Style string `yaml:"style,omitempty"` // thin, medium, dashed...
	Color string `yaml:"color,omitempty"`
}

// Alignment positions cell content.
type Alignment struct {
	Horizontal string `yaml:"horizontal,omitempty"` // left, center, right
	Vertical   string `yaml:"vertical,omitempty"`   // top, center, bottom
	WrapText   bool   `yaml:"wrap_text,omitempty"`
}

// CellStyle is the resolved formatting of one cell. Nil members mean
// "writer default".
type CellStyle struct {
	Font      *Font
	Fill      *Fill
	Border    *Border
	Alignment *Alignment
}

// Cell carries literal content plus resolved style.
type Cell struct {
	Value string
	Style CellStyle
}

// Row is one styled report row.
type Row struct {
	Header bool
	Cells  []Cell
}

// Config holds the styling options. The all-row entries are the
// baseline applied to every cell; the header and column entries
// override it where they apply.
type Config struct {
	AllRowFont        *Font      `yaml:"all_row_font,omitempty"`
	AllRowBorder      *Border    `yaml:"all_row_border,omitempty"`
	AllRowAlignment   *Alignment `yaml:"all_row_alignment,omitempty"`
	HeaderRowFill     *Fill      `yaml:"header_row_fill,omitempty"`
	HeaderRowFont     *Font      `yaml:"header_row_font,omitempty"`
	HeaderColFill     *Fill      `yaml:"header_col_fill,omitempty"`
	PrefCellAlignment *Alignment `yaml:"pref_cell_alignment,omitempty"`
}

// DefaultConfig is the house report styling: a plain body grid, a dark
// header row, and tinted identifier columns.
func DefaultConfig() Config {
	return Config{
		AllRowFont:      &Font{Name: "Calibri", Size: 10},
		AllRowBorder:    &Border{Style: "thin", Color: "D9D9D9"},
		AllRowAlignment: &Alignment{Horizontal: "left", Vertical: "top"},
		HeaderRowFill:   &Fill{Color: "1F4E78"},
		HeaderRowFont:   &Font{Name: "Calibri", Size: 10, Bold: true, Color: "FFFFFF"},
		HeaderColFill:   &Fill{Color: "DDEBF7"},
		PrefCellAlignment: &Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
	}
}

// Mapper resolves cell styles against a column layout.
type Mapper struct {
	cfg        Config
	headerCols map[int]bool
	valueCols  map[int]bool
}

// NewMapper builds a Mapper for the given styling and layout. Columns
// flagged in the layout's ColHeaders get the header-column fill on data
// rows; columns mapped in ColValues get the preference-cell alignment.
func NewMapper(cfg Config, layout table.Layout) *Mapper {
	mp := &Mapper{
		cfg:        cfg,
		headerCols: make(map[int]bool, len(layout.ColHeaders)),
		valueCols:  make(map[int]bool, len(layout.ColValues)),
	}
	for _, pos := range layout.ColHeaders {
		mp.headerCols[pos] = true
	}
	for pos := range layout.ColValues {
		mp.valueCols[pos] = true
	}
	return mp
}

// Map turns flattened rows into styled rows. Row zero is the header
// row. Precedence, most specific wins: header-row styles, then
// column-specific styles, then the all-row baseline.
func (mp *Mapper) Map(rows [][]string) []Row {
	out := make([]Row, 0, len(rows))
	for i, row := range rows {
		header := i == 0
		styled := Row{Header: header, Cells: make([]Cell, len(row))}
		for col, value := range row {
			styled.Cells[col] = Cell{Value: value, Style: mp.cellStyle(header, col)}
		}
		out = append(out, styled)
	}
	return out
}

func (mp *Mapper) cellStyle(header bool, col int) CellStyle {
	cs := CellStyle{
		Font:      mp.cfg.AllRowFont,
		Border:    mp.cfg.AllRowBorder,
		Alignment: mp.cfg.AllRowAlignment,
	}
	if header {
		if mp.cfg.HeaderRowFill != nil {
			cs.Fill = mp.cfg.HeaderRowFill
		}
		if mp.cfg.HeaderRowFont != nil {
			cs.Font = mp.cfg.HeaderRowFont
		}
		return cs
	}
	if mp.headerCols[col] && mp.cfg.HeaderColFill != nil {
		cs.Fill = mp.cfg.HeaderColFill
	}
	if mp.valueCols[col] && mp.cfg.PrefCellAlignment != nil {
		cs.Alignment = mp.cfg.PrefCellAlignment
	}
	return cs
}
