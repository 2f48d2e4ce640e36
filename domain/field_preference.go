package domain

import "sort"

// FieldPreferenceSet maps field name to whether it is included.
// Fields absent from the set are included.
type FieldPreferenceSet map[string]bool

func (s FieldPreferenceSet) IsSelected(field string) bool {
	selected, ok := s[field]
	if !ok {
		return true
	}
	return selected
}

// FieldPreference is a single stored include/exclude flag
type FieldPreference struct {
	Entity   string `json:"entity" yaml:"entity"`
	Field    string `json:"field" yaml:"field"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// FieldSet is a set of field names
type FieldSet map[string]struct{}

func NewFieldSet(fields ...string) FieldSet {
	s := FieldSet{}
	for _, f := range fields {
		s.Add(f)
	}
	return s
}

func (s FieldSet) Add(field string) {
	s[field] = struct{}{}
}

func (s FieldSet) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// Sorted returns the field names in lexical order
func (s FieldSet) Sorted() []string {
	fields := make([]string, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
