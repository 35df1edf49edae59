package internal

// Record is one decoded row: an ordered set of column names and their
// values. Column order is critical for serializers, so names and values
// are kept in parallel slices rather than a map. Values are strings:
// delimited text is untyped at this layer, preservers convert downstream.
type Record struct {
	fields []string
	values []string
}

func NewRecord(fields, values []string) *Record {
	return &Record{
		fields: fields,
		values: values,
	}
}

func (r *Record) Len() int {
	return len(r.fields)
}

func (r *Record) Fields() []string {
	return r.fields
}

func (r *Record) Values() []string {
	return r.values
}

func (r *Record) Map() map[string]string {
	m := make(map[string]string, len(r.fields))
	for i, field := range r.fields {
		m[field] = r.values[i]
	}
	return m
}
