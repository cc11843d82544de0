package filter

// FieldBuilder constructs criteria for one field. It is pure: the returned
// criteria are detached values, so they can be handed to And/Or for manual
// nesting without also mutating any query.
type FieldBuilder struct {
	name string
}

// Field starts a criterion for the named field.
func Field(name string) FieldBuilder {
	return FieldBuilder{name: name}
}

func (f FieldBuilder) criterion(op Op, value any) *Criterion {
	return &Criterion{Field: f.name, Op: op, Value: value}
}

// Equal matches rows whose field equals value.
func (f FieldBuilder) Equal(value any) *Criterion { return f.criterion(OpEqual, value) }

// NotEqual matches rows whose field does not equal value.
func (f FieldBuilder) NotEqual(value any) *Criterion { return f.criterion(OpNotEqual, value) }

// BeginsWith matches rows whose field starts with prefix.
func (f FieldBuilder) BeginsWith(prefix string) *Criterion { return f.criterion(OpBeginsWith, prefix) }

// NotBeginsWith matches rows whose field does not start with prefix.
func (f FieldBuilder) NotBeginsWith(prefix string) *Criterion {
	return f.criterion(OpNotBeginsWith, prefix)
}

// BeginsWithAny matches rows whose field starts with any of the prefixes.
func (f FieldBuilder) BeginsWithAny(prefixes ...any) *Criterion {
	return f.criterion(OpBeginsWithAny, prefixes)
}

// NotBeginsWithAny matches rows whose field starts with none of the prefixes.
func (f FieldBuilder) NotBeginsWithAny(prefixes ...any) *Criterion {
	return f.criterion(OpNotBeginsWithAny, prefixes)
}

// Includes matches rows whose multi-valued field contains value.
func (f FieldBuilder) Includes(value any) *Criterion { return f.criterion(OpIncludes, value) }

// Excludes matches rows whose multi-valued field does not contain value.
func (f FieldBuilder) Excludes(value any) *Criterion { return f.criterion(OpExcludes, value) }

// In matches rows whose field equals any of the values.
func (f FieldBuilder) In(values ...any) *Criterion { return f.criterion(OpIn, values) }

// NotIn matches rows whose field equals none of the values.
func (f FieldBuilder) NotIn(values ...any) *Criterion { return f.criterion(OpNotIn, values) }

// GreaterThan matches rows whose field is greater than value.
func (f FieldBuilder) GreaterThan(value any) *Criterion { return f.criterion(OpGreaterThan, value) }

// LessThan matches rows whose field is less than value.
func (f FieldBuilder) LessThan(value any) *Criterion { return f.criterion(OpLessThan, value) }

// GreaterOrEqual matches rows whose field is greater than or equal to value.
func (f FieldBuilder) GreaterOrEqual(value any) *Criterion {
	return f.criterion(OpGreaterOrEqual, value)
}

// LessOrEqual matches rows whose field is less than or equal to value.
func (f FieldBuilder) LessOrEqual(value any) *Criterion { return f.criterion(OpLessOrEqual, value) }

// Blank matches rows whose field has no value.
func (f FieldBuilder) Blank() *Criterion { return f.criterion(OpBlank, true) }

// NotBlank matches rows whose field has a value.
func (f FieldBuilder) NotBlank() *Criterion { return f.criterion(OpBlank, false) }

// Search matches rows whose field matches the full-text terms. The service
// decides matching semantics.
func (f FieldBuilder) Search(terms string) *Criterion { return f.criterion(OpSearch, terms) }
