package schema

import "strings"

// SemanticTags carries the disambiguation hints used by TemplateReranker.
type SemanticTags struct {
	Action          string   `yaml:"action" json:"action,omitempty"`
	PrimaryEntity   string   `yaml:"primary_entity" json:"primary_entity,omitempty"`
	SecondaryEntity string   `yaml:"secondary_entity" json:"secondary_entity,omitempty"`
	Qualifiers      []string `yaml:"qualifiers" json:"qualifiers,omitempty"`
}

// Parameter describes a single template parameter to be filled by the
// DomainParameterExtractor.
type Parameter struct {
	Name        string         `yaml:"name" json:"name"`
	Type        string         `yaml:"type" json:"type,omitempty"`
	DataType    string         `yaml:"data_type" json:"data_type,omitempty"`
	Entity      string         `yaml:"entity" json:"entity,omitempty"`
	Field       string         `yaml:"field" json:"field,omitempty"`
	Required    bool           `yaml:"required" json:"required,omitempty"`
	Default     any            `yaml:"default" json:"default,omitempty"`
	SemanticType string        `yaml:"semantic_type" json:"semantic_type,omitempty"`
	AllowedValues []string      `yaml:"allowed_values" json:"allowed_values,omitempty"`
	ExtractionHints map[string]any `yaml:"extraction_hints" json:"extraction_hints,omitempty"`
}

// EffectiveType returns Type, falling back to DataType, defaulting to "string".
func (p Parameter) EffectiveType() string {
	if p.Type != "" {
		return p.Type
	}
	if p.DataType != "" {
		return p.DataType
	}
	return "string"
}

// ResultFormat enumerates the response strategies a template can select.
type ResultFormat string

const (
	ResultFormatTable   ResultFormat = "table"
	ResultFormatSummary ResultFormat = "summary"
)

// Template is a declarative query pattern: SQL text, an HTTP request
// directive, or a query-DSL body, paired with typed parameters, NL
// examples, and semantic tags used for matching and reranking.
type Template struct {
	ID           string            `yaml:"id" json:"id"`
	Description  string            `yaml:"description" json:"description,omitempty"`
	NLExamples   []string          `yaml:"nl_examples" json:"nl_examples,omitempty"`
	Tags         []string          `yaml:"tags" json:"tags,omitempty"`
	SemanticTags SemanticTags      `yaml:"semantic_tags" json:"semantic_tags,omitempty"`
	Parameters   []Parameter       `yaml:"parameters" json:"parameters,omitempty"`
	SQLTemplate  string            `yaml:"sql_template" json:"sql_template,omitempty"`
	QueryDSL     map[string]any    `yaml:"query_dsl" json:"query_dsl,omitempty"`
	HTTPRequest  map[string]any    `yaml:"http_request" json:"http_request,omitempty"`
	ResultFormat ResultFormat      `yaml:"result_format" json:"result_format,omitempty"`
	Version      string            `yaml:"version" json:"version,omitempty"`
}

// EmbeddingText builds the text embedded into the template store, per
// spec §4.4: description, nl_examples, tags, parameter names, and
// (when present) semantic tag fields plus the primary entity's synonyms.
func (t Template) EmbeddingText(entitySynonyms []string) string {
	var b strings.Builder
	b.WriteString(t.Description)
	for _, ex := range t.NLExamples {
		b.WriteString(" ")
		b.WriteString(ex)
	}
	for _, tag := range t.Tags {
		b.WriteString(" ")
		b.WriteString(tag)
	}
	for _, p := range t.Parameters {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(p.Name, "_", " "))
	}
	if t.SemanticTags.Action != "" {
		b.WriteString(" ")
		b.WriteString(t.SemanticTags.Action)
	}
	if t.SemanticTags.PrimaryEntity != "" {
		b.WriteString(" ")
		b.WriteString(t.SemanticTags.PrimaryEntity)
	}
	if t.SemanticTags.SecondaryEntity != "" {
		b.WriteString(" ")
		b.WriteString(t.SemanticTags.SecondaryEntity)
	}
	for _, q := range t.SemanticTags.Qualifiers {
		b.WriteString(" ")
		b.WriteString(q)
	}
	for _, syn := range entitySynonyms {
		b.WriteString(" ")
		b.WriteString(syn)
	}
	return strings.TrimSpace(b.String())
}

// TemplateLibrary is the merged set of templates loaded from one or more
// sources. After merge, duplicate ids keep the last loaded template.
type TemplateLibrary struct {
	Templates []Template `yaml:"templates" json:"templates"`
}

// Merge appends other's templates, letting later ids override earlier ones.
func (l *TemplateLibrary) Merge(other TemplateLibrary) {
	byID := make(map[string]int, len(l.Templates))
	for i, t := range l.Templates {
		byID[t.ID] = i
	}
	for _, t := range other.Templates {
		if i, ok := byID[t.ID]; ok {
			l.Templates[i] = t
			continue
		}
		byID[t.ID] = len(l.Templates)
		l.Templates = append(l.Templates, t)
	}
}

// Find returns the template with the given id, if present.
func (l *TemplateLibrary) Find(id string) (Template, bool) {
	for _, t := range l.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// TemplateMatch is the result of a template-store similarity search, before
// and after reranking.
type TemplateMatch struct {
	TemplateID     string
	SourceAdapter  string
	Similarity     float32
	TemplateData   Template
	EmbeddingText  string
}
