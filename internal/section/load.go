package section

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

//go:embed data/shapes.json
var defaultShapes []byte

// Default returns the built-in starter database. It is parsed once.
var Default = sync.OnceValues(func() (*Database, error) {
	return LoadJSON(bytes.NewReader(defaultShapes))
})

// metadata keys stored alongside the numeric properties
const (
	keyImperial = "name_imperial"
	keyMetric   = "name_metric"
	keyType     = "type"
)

// LoadJSON reads a shape database keyed by imperial name. Non-numeric
// property values are ignored.
func LoadJSON(r io.Reader) (*Database, error) {
	var raw map[string]map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]*Record, 0, len(raw))
	for _, k := range keys {
		r, err := recordFromFields(k, raw[k])
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return NewDatabase(records...)
}

func recordFromFields(key string, fields map[string]any) (*Record, error) {
	name, _ := fields[keyImperial].(string)
	if name == "" {
		name = key
	}
	metric, _ := fields[keyMetric].(string)
	typ, _ := fields[keyType].(string)

	props := make(map[string]float64, len(fields))
	for k, v := range fields {
		switch k {
		case keyImperial, keyMetric, keyType:
			continue
		}
		if f, ok := v.(float64); ok {
			props[k] = f
		}
	}
	return NewRecord(name, metric, ShapeType(strings.ToUpper(typ)), props)
}

// MarshalJSON writes the record in the database file format.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.props)+3)
	for k, v := range r.props {
		out[k] = v
	}
	out[keyImperial] = r.name
	out[keyMetric] = r.metric
	out[keyType] = string(r.typ)
	return json.Marshal(out)
}

// LoadFile reads a .json database or an AISC .xlsx workbook.
func LoadFile(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".xlsx":
		return LoadXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported shape database format %q", filepath.Ext(path))
	}
}
