package graph

// JacksonInfo captures the JSON-binding outcome for one field or getter.
type JacksonInfo struct {
	IsIgnored bool
	JSONName  string
}

// JacksonTable holds per-field and per-getter binding info keyed by
// declaring class + member name, following the same map-backed,
// insertion-agnostic index shape as the other descriptor tables.
type JacksonTable struct {
	fields  map[string]JacksonInfo
	getters map[string]JacksonInfo
}

// NewJacksonTable creates an empty Jackson binding table.
func NewJacksonTable() *JacksonTable {
	return &JacksonTable{
		fields:  map[string]JacksonInfo{},
		getters: map[string]JacksonInfo{},
	}
}

// SetField records binding info for a declared field.
func (t *JacksonTable) SetField(class, field string, info JacksonInfo) {
	t.fields[class+"#"+field] = info
}

// Field returns the recorded binding info for a declared field, if any.
func (t *JacksonTable) Field(class, field string) (JacksonInfo, bool) {
	v, ok := t.fields[class+"#"+field]
	return v, ok
}

// SetGetter records binding info for a getter method.
func (t *JacksonTable) SetGetter(class, method string, info JacksonInfo) {
	t.getters[class+"#"+method] = info
}

// Getter returns the recorded binding info for a getter method, if any.
func (t *JacksonTable) Getter(class, method string) (JacksonInfo, bool) {
	v, ok := t.getters[class+"#"+method]
	return v, ok
}
