package graph

// EnumTable records the user-defined constructor arguments captured per
// enum constant by the enum-constant extractor.
type EnumTable struct {
	values map[string][]interface{}
}

// NewEnumTable creates an empty enum-value table.
func NewEnumTable() *EnumTable {
	return &EnumTable{values: map[string][]interface{}{}}
}

func enumKey(class, name string) string { return class + "#" + name }

// Set records the constructor arguments for enumClass.enumName, in source order.
func (t *EnumTable) Set(enumClass, enumName string, args []interface{}) {
	t.values[enumKey(enumClass, enumName)] = args
}

// Get returns the constructor arguments for enumClass.enumName, or
// (nil, false) if no such constant has been recorded.
func (t *EnumTable) Get(enumClass, enumName string) ([]interface{}, bool) {
	v, ok := t.values[enumKey(enumClass, enumName)]
	return v, ok
}
