package section

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrShapeNotFound is returned when a callout matches no record.
var ErrShapeNotFound = errors.New("shape not found")

// Database is a read-only collection of shape records keyed by imperial name,
// with a metric alias index. It is safe for concurrent use once built.
type Database struct {
	shapes map[string]*Record
	metric map[string]string
	names  []string
}

// NewDatabase indexes records. Duplicate imperial names are rejected.
func NewDatabase(records ...*Record) (*Database, error) {
	db := &Database{
		shapes: make(map[string]*Record, len(records)),
		metric: make(map[string]string, len(records)),
	}
	for _, r := range records {
		if _, dup := db.shapes[r.name]; dup {
			return nil, &ValidationError{msg: fmt.Sprintf("duplicate shape %s", r.name)}
		}
		db.shapes[r.name] = r
		db.names = append(db.names, r.name)
		if r.metric != "" {
			db.metric[r.metric] = r.name
		}
	}
	sort.Strings(db.names)
	return db, nil
}

// Len returns the number of records.
func (db *Database) Len() int { return len(db.shapes) }

// Names returns every imperial name in sorted order.
func (db *Database) Names() []string {
	return append([]string(nil), db.names...)
}

// Lookup resolves a callout such as "W18X50", "w460x74" or "W18 × 50".
func (db *Database) Lookup(callout string) (*Model, error) {
	key := strings.ToUpper(strings.TrimSpace(callout))
	if r, ok := db.find(key); ok {
		return NewModel(r), nil
	}
	key = strings.ReplaceAll(key, "×", "X")
	key = strings.Join(strings.Fields(key), "")
	if r, ok := db.find(key); ok {
		return NewModel(r), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrShapeNotFound, callout)
}

func (db *Database) find(key string) (*Record, bool) {
	if r, ok := db.shapes[key]; ok {
		return r, true
	}
	if name, ok := db.metric[key]; ok {
		return db.shapes[name], true
	}
	return nil, false
}

type ranked struct {
	name  string
	value float64
}

func (db *Database) rank(t ShapeType, sortBy string, keep func(*Record) bool) []string {
	var out []ranked
	for _, name := range db.names {
		r := db.shapes[name]
		if r.typ != t || (keep != nil && !keep(r)) {
			continue
		}
		// records without the sort key rank as zero
		v := r.props[sortBy]
		out = append(out, ranked{name, v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].value < out[j].value })
	names := make([]string, len(out))
	for i, r := range out {
		names[i] = r.name
	}
	return names
}

// ByType returns the shapes of one family sorted by a stored property,
// typically "W" for weight.
func (db *Database) ByType(t ShapeType, sortBy string) []string {
	return db.rank(t, sortBy, nil)
}

// InRange returns the shapes of one family whose stored property lies within
// [lo, hi], sorted by sortBy. Use math.Inf for an open bound. Shapes without
// the property are skipped.
func (db *Database) InRange(t ShapeType, prop string, lo, hi float64, sortBy string) []string {
	return db.rank(t, sortBy, func(r *Record) bool {
		v, ok := r.props[prop]
		return ok && v >= lo && v <= hi
	})
}

// Lightest returns the lightest shape of a family whose stored property is
// at least min.
func (db *Database) Lightest(t ShapeType, prop string, min float64) (string, bool) {
	names := db.rank(t, "W", func(r *Record) bool {
		v, ok := r.props[prop]
		return ok && v >= min
	})
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// Types returns the families present in the database.
func (db *Database) Types() []ShapeType {
	seen := map[ShapeType]bool{}
	var types []ShapeType
	for _, r := range db.shapes {
		if !seen[r.typ] {
			seen[r.typ] = true
			types = append(types, r.typ)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Search returns up to limit names containing pattern, optionally restricted
// to one family. An empty t matches every family; limit <= 0 means no limit.
func (db *Database) Search(pattern string, t ShapeType, limit int) []string {
	pattern = strings.ToUpper(pattern)
	var out []string
	for _, name := range db.names {
		if t != "" && db.shapes[name].typ != t {
			continue
		}
		if strings.Contains(name, pattern) {
			out = append(out, name)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}
