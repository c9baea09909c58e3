package format

import "github.com/cristianoliveira/displaygen/internal/interpolate"

// Placeholder is one placeholder occurrence in a parse report.
type Placeholder struct {
	Offset int    `json:"offset" yaml:"offset"`
	Ident  string `json:"ident" yaml:"ident"`
	Spec   string `json:"spec,omitempty" yaml:"spec,omitempty"`
	Token  string `json:"token" yaml:"token"`
}

// TemplateResult is the printable view of a normalized template.
type TemplateResult struct {
	Source       string        `json:"source" yaml:"source"`
	Rewritten    string        `json:"rewritten" yaml:"rewritten"`
	Fields       []string      `json:"fields" yaml:"fields"`
	Placeholders []Placeholder `json:"placeholders" yaml:"placeholders"`
}

// NewTemplateResult builds a report from t, listing fields in order.
func NewTemplateResult(t *interpolate.Template, order interpolate.FieldOrder) TemplateResult {
	segs := t.Placeholders()
	r := TemplateResult{
		Source:       t.Source,
		Rewritten:    t.Rewritten,
		Fields:       t.FieldsIn(order),
		Placeholders: make([]Placeholder, 0, len(segs)),
	}
	for _, seg := range segs {
		r.Placeholders = append(r.Placeholders, Placeholder{
			Offset: seg.Offset,
			Ident:  seg.Ident,
			Spec:   seg.Spec,
			Token:  seg.Token(),
		})
	}
	return r
}
