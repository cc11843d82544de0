package query

// Metadata attributes a row-level write to a user. Writes require it.
type Metadata struct {
	user      string
	comment   string
	reference string
	debug     bool
}

// NewMetadata creates write metadata attributed to user.
func NewMetadata(user string) *Metadata {
	return &Metadata{user: user}
}

// Comment attaches a free-form note to the write.
func (m *Metadata) Comment(comment string) *Metadata {
	m.comment = comment
	return m
}

// Reference attaches a supporting URL to the write.
func (m *Metadata) Reference(url string) *Metadata {
	m.reference = url
	return m
}

// Debug marks the write as a dry run the service will not apply.
func (m *Metadata) Debug() *Metadata {
	m.debug = true
	return m
}

// apply folds the metadata into a write request's parameters.
func (m *Metadata) apply(params *Params) {
	params.Set("user", m.user)
	if m.comment != "" {
		params.Set("comment", m.comment)
	}
	if m.reference != "" {
		params.Set("reference", m.reference)
	}
	if m.debug {
		params.Set("debug", "true")
	}
}
