package schema

import "strings"

// Field describes one field of a domain entity: its type, display
// formatting, and the metadata that drives extraction and prioritization.
type Field struct {
	Name             string         `yaml:"name" json:"name"`
	DataType         string         `yaml:"data_type" json:"data_type"`
	DisplayName      string         `yaml:"display_name" json:"display_name,omitempty"`
	DisplayFormat    string         `yaml:"display_format" json:"display_format,omitempty"`
	Searchable       bool           `yaml:"searchable" json:"searchable,omitempty"`
	Filterable       bool           `yaml:"filterable" json:"filterable,omitempty"`
	Sortable         bool           `yaml:"sortable" json:"sortable,omitempty"`
	Aggregatable     bool           `yaml:"aggregatable" json:"aggregatable,omitempty"`
	Description      string         `yaml:"description" json:"description,omitempty"`
	ValidationRules  map[string]any `yaml:"validation_rules" json:"validation_rules,omitempty"`
	SemanticType     string         `yaml:"semantic_type" json:"semantic_type,omitempty"`
	SummaryPriority  *int           `yaml:"summary_priority" json:"summary_priority,omitempty"`
	ExtractionPattern string        `yaml:"extraction_pattern" json:"extraction_pattern,omitempty"`
	ExtractionHints  map[string]any `yaml:"extraction_hints" json:"extraction_hints,omitempty"`
}

// Entity describes one domain entity: its backing table, key, and the
// fields that belong to it.
type Entity struct {
	Name             string            `yaml:"name" json:"name"`
	EntityType       string            `yaml:"entity_type" json:"entity_type,omitempty"`
	TableName        string            `yaml:"table_name" json:"table_name,omitempty"`
	DisplayName      string            `yaml:"display_name" json:"display_name,omitempty"`
	Description      string            `yaml:"description" json:"description,omitempty"`
	PrimaryKey       string            `yaml:"primary_key" json:"primary_key,omitempty"`
	DisplayNameField string            `yaml:"display_name_field" json:"display_name_field,omitempty"`
	Relationships    map[string]any    `yaml:"relationships" json:"relationships,omitempty"`
	SearchableFields []string          `yaml:"searchable_fields" json:"searchable_fields,omitempty"`
	CommonFilters    []string          `yaml:"common_filters" json:"common_filters,omitempty"`
	DefaultSortField string            `yaml:"default_sort_field" json:"default_sort_field,omitempty"`
	DefaultSortOrder string            `yaml:"default_sort_order" json:"default_sort_order,omitempty"`
	Metadata         map[string]any    `yaml:"metadata" json:"metadata,omitempty"`
	Fields           map[string]*Field `yaml:"fields" json:"fields,omitempty"`
}

// SemanticTypeDef is a domain-declared semantic type used by the
// DomainParameterExtractor's semantic extractors (spec §4.6 step 2).
type SemanticTypeDef struct {
	RegexPatterns []SemanticPattern `yaml:"regex_patterns" json:"regex_patterns,omitempty"`
	Patterns      []string          `yaml:"patterns" json:"patterns,omitempty"`
}

// SemanticPattern pairs a regex with the capture-group index holding the value.
type SemanticPattern struct {
	Pattern    string `yaml:"pattern" json:"pattern"`
	ValueGroup int    `yaml:"value_group" json:"value_group"`
}

// DomainConfig is the data-only description of a business domain: entities,
// fields, vocabulary, semantic types, metrics, aggregations, and business
// rules. It drives extraction, validation, and response formatting without
// code changes (spec §3, §4.6–§4.8).
type DomainConfig struct {
	DomainName   string
	DomainType   string
	Description  string
	Entities     map[string]*Entity
	EntityOrder  []string
	SemanticTypes map[string]SemanticTypeDef

	EntitySynonyms map[string][]string
	FieldSynonyms  map[string][]string

	Metrics        map[string]any
	Aggregations   map[string]any
	BusinessRules  map[string]any
}

// NewDomainConfig builds a DomainConfig from already-parsed entities/fields;
// loaders (YAML, tests) construct the maps and call this to get the derived
// indices and navigation methods below.
func NewDomainConfig(domainName, domainType, description string, entities map[string]*Entity, entityOrder []string) *DomainConfig {
	return &DomainConfig{
		DomainName:     domainName,
		DomainType:     domainType,
		Description:    description,
		Entities:       entities,
		EntityOrder:    entityOrder,
		SemanticTypes:  map[string]SemanticTypeDef{},
		EntitySynonyms: map[string][]string{},
		FieldSynonyms:  map[string][]string{},
		Metrics:        map[string]any{},
		Aggregations:   map[string]any{},
		BusinessRules:  map[string]any{},
	}
}

// GetEntity looks up an entity by name.
func (d *DomainConfig) GetEntity(name string) *Entity {
	return d.Entities[name]
}

// GetField looks up a field on a named entity.
func (d *DomainConfig) GetField(entityName, fieldName string) *Field {
	e := d.GetEntity(entityName)
	if e == nil {
		return nil
	}
	return e.Fields[fieldName]
}

// SearchableFields returns all searchable fields, optionally scoped to one entity.
func (d *DomainConfig) SearchableFields(entityName string) []*Field {
	return d.fieldsWhere(entityName, func(f *Field) bool { return f.Searchable })
}

// FilterableFields returns all filterable fields, optionally scoped to one entity.
func (d *DomainConfig) FilterableFields(entityName string) []*Field {
	return d.fieldsWhere(entityName, func(f *Field) bool { return f.Filterable })
}

func (d *DomainConfig) fieldsWhere(entityName string, pred func(*Field) bool) []*Field {
	var out []*Field
	if entityName != "" {
		if e := d.GetEntity(entityName); e != nil {
			for _, f := range e.Fields {
				if pred(f) {
					out = append(out, f)
				}
			}
		}
		return out
	}
	for _, e := range d.Entities {
		for _, f := range e.Fields {
			if pred(f) {
				out = append(out, f)
			}
		}
	}
	return out
}

// EntitiesByType returns entities whose EntityType matches entityType.
func (d *DomainConfig) EntitiesByType(entityType string) []*Entity {
	var out []*Entity
	for _, name := range d.EntityOrder {
		if e := d.Entities[name]; e != nil && e.EntityType == entityType {
			out = append(out, e)
		}
	}
	return out
}

// PrimaryEntity returns the entity tagged entity_type=="primary", falling
// back to the first entity in declaration order when none is tagged.
func (d *DomainConfig) PrimaryEntity() *Entity {
	if primaries := d.EntitiesByType("primary"); len(primaries) > 0 {
		return primaries[0]
	}
	if len(d.EntityOrder) > 0 {
		return d.Entities[d.EntityOrder[0]]
	}
	return nil
}

// SecondaryEntities returns every entity other than PrimaryEntity.
func (d *DomainConfig) SecondaryEntities() []*Entity {
	primary := d.PrimaryEntity()
	var out []*Entity
	for _, name := range d.EntityOrder {
		e := d.Entities[name]
		if e == nil {
			continue
		}
		if primary != nil && e.Name == primary.Name {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FindEntityByName resolves an entity name or synonym to its canonical name.
func (d *DomainConfig) FindEntityByName(synonym string) (string, bool) {
	lower := strings.ToLower(synonym)
	for name := range d.Entities {
		if strings.ToLower(name) == lower {
			return name, true
		}
	}
	for name, syns := range d.EntitySynonyms {
		for _, s := range syns {
			if strings.ToLower(s) == lower {
				return name, true
			}
		}
	}
	return "", false
}

// FindFieldByName resolves a field name or synonym within an entity.
func (d *DomainConfig) FindFieldByName(entityName, synonym string) (string, bool) {
	e := d.GetEntity(entityName)
	if e == nil {
		return "", false
	}
	lower := strings.ToLower(synonym)
	for name := range e.Fields {
		if strings.ToLower(name) == lower {
			return name, true
		}
	}
	for name, syns := range d.FieldSynonyms {
		if _, ok := e.Fields[name]; !ok {
			continue
		}
		for _, s := range syns {
			if strings.ToLower(s) == lower {
				return name, true
			}
		}
	}
	return "", false
}

// FieldsBySemanticType returns every field across all entities carrying the
// given semantic type.
func (d *DomainConfig) FieldsBySemanticType(semanticType string) []*Field {
	var out []*Field
	for _, e := range d.Entities {
		for _, f := range e.Fields {
			if f.SemanticType == semanticType {
				out = append(out, f)
			}
		}
	}
	return out
}

// GetEntitySynonyms returns the configured synonyms for an entity.
func (d *DomainConfig) GetEntitySynonyms(entityName string) []string {
	return d.EntitySynonyms[entityName]
}

// GetFieldSynonyms returns the configured synonyms for a field name.
func (d *DomainConfig) GetFieldSynonyms(fieldName string) []string {
	return d.FieldSynonyms[fieldName]
}
