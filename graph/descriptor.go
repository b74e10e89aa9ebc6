package graph

import (
	"fmt"
	"strings"
)

// TypeDescriptor names a declared type. ClassName carries the fully
// qualified name plus optional "[]" suffixes for arrays; an empty
// TypeArguments denotes the raw/erased form.
type TypeDescriptor struct {
	ClassName     string
	TypeArguments []TypeDescriptor
}

// String renders the descriptor including any generic arguments.
func (t TypeDescriptor) String() string {
	if len(t.TypeArguments) == 0 {
		return t.ClassName
	}
	parts := make([]string, len(t.TypeArguments))
	for i, a := range t.TypeArguments {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.ClassName, strings.Join(parts, ","))
}

// IsRaw reports whether the descriptor carries no type arguments.
func (t TypeDescriptor) IsRaw() bool {
	return len(t.TypeArguments) == 0
}

// MethodDescriptor identifies a declared method.
type MethodDescriptor struct {
	DeclaringClass TypeDescriptor
	Name           string
	ParameterTypes []TypeDescriptor
	ReturnType     TypeDescriptor
	Annotations    []Annotation
}

// Signature returns the canonical "<class>.<name>(<param1,param2,...>)" form.
func (m MethodDescriptor) Signature() string {
	params := make([]string, len(m.ParameterTypes))
	for i, p := range m.ParameterTypes {
		params[i] = p.ClassName
	}
	return fmt.Sprintf("%s.%s(%s)", m.DeclaringClass.ClassName, m.Name, strings.Join(params, ","))
}

// FieldDescriptor identifies a declared field.
type FieldDescriptor struct {
	DeclaringClass TypeDescriptor
	Name           string
	Type           TypeDescriptor
}

// Signature returns the "<class>.<name>" canonical form.
func (f FieldDescriptor) Signature() string {
	return fmt.Sprintf("%s.%s", f.DeclaringClass.ClassName, f.Name)
}

// Annotation is a single class/method/field-level annotation, as the
// frontend's reflective accessor exposes it: a class name plus a
// name->value map of its elements.
type Annotation struct {
	ClassName          string
	FullyQualifiedName string
	Values             map[string]string
}

// MethodPattern is a predicate over MethodDescriptor. A nil/zero-value
// field means "any"; Class/Name support a trailing "*" prefix wildcard or,
// when UseRegex is set, anchored regex matching.
type MethodPattern struct {
	Class          *string
	Name           *string
	ParameterTypes []string
	ReturnType     *string
	Annotations    []string
	UseRegex       bool
}
