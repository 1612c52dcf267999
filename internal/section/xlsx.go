package section

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	colLabel    = "AISC_Manual_Label"
	colType     = "Type"
	colMetricID = "EDI_Std_Nomenclature"
)

var headerCleaner = strings.NewReplacer(" ", "_", "/", "_", "(", "", ")", "", "α", "alpha")

// column pairs the imperial and metric occurrence of a workbook header.
// The AISC v16 database repeats every header: the first block is imperial,
// the second metric.
type column struct {
	name     string
	imperial int
	metric   int
}

// LoadXLSX reads the AISC shapes database workbook. Metric values are stored
// under the plain property name and imperial values under name_imp.
func LoadXLSX(r io.Reader) (*Database, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(1)
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no shape rows", sheet)
	}

	columns := pairColumns(rows[0])
	index := make(map[string]*column, len(columns))
	for _, c := range columns {
		index[c.name] = c
	}
	label, typeCol := index[colLabel], index[colType]
	if label == nil || typeCol == nil {
		return nil, fmt.Errorf("sheet %q lacks %s or %s columns", sheet, colLabel, colType)
	}

	wanted := map[ShapeType]bool{}
	for _, t := range KnownTypes {
		wanted[t] = t != TypeBuiltUp
	}

	var records []*Record
	for _, row := range rows[1:] {
		typ := ShapeType(strings.TrimSpace(cell(row, typeCol.imperial)))
		if !wanted[typ] {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(cell(row, label.imperial)))
		if name == "" {
			continue
		}
		var metric string
		if c := index[colMetricID]; c != nil && c.metric >= 0 {
			metric = strings.ToUpper(strings.TrimSpace(cell(row, c.metric)))
		}

		props := map[string]float64{}
		for _, c := range columns {
			switch c.name {
			case colLabel, colType, colMetricID, "T_F":
				continue
			}
			if c.metric >= 0 {
				if v, ok := cleanValue(cell(row, c.metric)); ok {
					props[c.name] = v
				}
				if v, ok := cleanValue(cell(row, c.imperial)); ok {
					props[c.name+"_imp"] = v
				}
				continue
			}
			if v, ok := cleanValue(cell(row, c.imperial)); ok {
				props[c.name] = v
			}
		}

		rec, err := NewRecord(name, metric, typ, props)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return NewDatabase(records...)
}

func pairColumns(header []string) []*column {
	var cols []*column
	seen := map[string]*column{}
	for i, h := range header {
		name := headerCleaner.Replace(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if c, ok := seen[name]; ok {
			if c.metric < 0 {
				c.metric = i
			}
			continue
		}
		c := &column{name: name, imperial: i, metric: -1}
		seen[name] = c
		cols = append(cols, c)
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func cleanValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "–", "-", "N/A", "None":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
