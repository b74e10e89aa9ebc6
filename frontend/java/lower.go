// Package java is a reference ingestion frontend: it lowers Java source
// (not VM class files -- a stand-in that exercises the Program Graph's
// external-interface contract) into a *graph.Store using
// go-tree-sitter's Java grammar, following the same
// ChildByFieldName/NamedChild traversal idiom used elsewhere in this
// module's inspectors.
package java

import (
	"context"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	javalang "github.com/smacker/go-tree-sitter/java"

	"github.com/viant/vmgraph/config"
	"github.com/viant/vmgraph/graph"
)

// Frontend lowers Java source into a graph.Store, honoring the
// package include/exclude filters from config.Config.
type Frontend struct {
	cfg     *config.Config
	store   *graph.Store
	project *Project
}

// New creates a Frontend writing into store under cfg's package filters.
func New(store *graph.Store, cfg *config.Config) *Frontend {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Frontend{cfg: cfg, store: store}
}

// SetProject tags every class ingested from this point on with project's
// name, recorded as a synthetic "Module" class annotation so callers can
// group a batch of files by the artifact/module they were detected under.
func (f *Frontend) SetProject(project *Project) {
	f.project = project
}

// methodScope tracks the locals/parameters visible while lowering one
// method body, keyed by source identifier text.
type methodScope struct {
	desc  graph.MethodDescriptor
	vars  map[string]graph.NodeID
	retID graph.NodeID
}

// IngestSource parses one Java compilation unit and lowers every class,
// interface, and enum it declares into the frontend's graph store.
func (f *Frontend) IngestSource(src []byte) error {
	parser := sitter.NewParser()
	parser.SetLanguage(javalang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		// Malformed input: notify verbose and skip, never hard-fail.
		f.cfg.Log("frontend/java: parse error: %v", err)
		return nil
	}

	root := tree.RootNode()
	packageName := ""
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "package_declaration" && child.NamedChildCount() > 0 {
			packageName = child.NamedChild(0).Content(src)
		}
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "class_declaration", "interface_declaration":
			f.lowerClassLike(child, src, packageName)
		case "enum_declaration":
			f.lowerEnum(child, src, packageName)
		}
	}
	return nil
}

func (f *Frontend) qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func javaType(node *sitter.Node, src []byte) graph.TypeDescriptor {
	if node == nil {
		return graph.TypeDescriptor{ClassName: "void"}
	}
	return graph.TypeDescriptor{ClassName: node.Content(src)}
}

func (f *Frontend) lowerClassLike(node *sitter.Node, src []byte, pkg string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := f.qualify(pkg, nameNode.Content(src))
	if !f.cfg.IncludesPackage(className) {
		return
	}
	self := graph.TypeDescriptor{ClassName: className}

	if superNode := node.ChildByFieldName("superclass"); superNode != nil {
		f.store.AddTypeRelation(self, graph.TypeDescriptor{ClassName: strings.TrimSpace(superNode.Content(src))}, graph.Extends)
	}
	if ifaceNode := node.ChildByFieldName("interfaces"); ifaceNode != nil {
		for i := 0; i < int(ifaceNode.NamedChildCount()); i++ {
			f.store.AddTypeRelation(self, graph.TypeDescriptor{ClassName: strings.TrimSpace(ifaceNode.NamedChild(i).Content(src))}, graph.Implements)
		}
	}

	classAnns := f.parseAnnotations(node, src)
	if f.project != nil {
		classAnns = append(classAnns, graph.Annotation{
			ClassName: "Module",
			Values: map[string]string{
				"name":   f.project.Name,
				"kind":   f.project.Kind,
				"origin": f.project.Origin,
			},
		})
	}
	if len(classAnns) > 0 {
		f.store.AddClassAnnotations(className, classAnns)
	}
	basePath := endpointPath(classAnns)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "field_declaration":
			f.lowerField(child, src, self)
		case "method_declaration":
			f.lowerMethod(child, src, self, basePath)
		}
	}
}

func (f *Frontend) lowerField(node *sitter.Node, src []byte, owner graph.TypeDescriptor) {
	typeNode := node.ChildByFieldName("type")
	declNode := node.ChildByFieldName("declarator")
	if declNode == nil {
		return
	}
	nameNode := declNode.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	desc := graph.FieldDescriptor{DeclaringClass: owner, Name: nameNode.Content(src), Type: javaType(typeNode, src)}

	isStatic := false
	if node.NamedChildCount() > 0 && node.NamedChild(0).Type() == "modifiers" {
		mods := node.NamedChild(0)
		for i := 0; i < int(mods.NamedChildCount()); i++ {
			if mods.NamedChild(i).Type() == "static" {
				isStatic = true
			}
		}
	}

	fn := &graph.Field{NID: graph.NextNodeID(), Descriptor: desc, IsStatic: isStatic}
	f.store.AddNode(fn)

	fieldAnns := f.parseAnnotations(node, src)
	if len(fieldAnns) > 0 {
		f.store.AddFieldAnnotations(desc, fieldAnns)
	}
	if info, ok := jacksonInfo(fieldAnns); ok {
		f.store.AddJacksonField(owner.ClassName, desc.Name, info)
	}
}

func (f *Frontend) lowerMethod(node *sitter.Node, src []byte, owner graph.TypeDescriptor, basePath string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	retTypeNode := node.ChildByFieldName("type")
	desc := graph.MethodDescriptor{DeclaringClass: owner, Name: nameNode.Content(src), ReturnType: javaType(retTypeNode, src)}

	paramsNode := node.ChildByFieldName("parameters")
	scope := &methodScope{vars: map[string]graph.NodeID{}}
	if paramsNode != nil {
		idx := 0
		for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
			p := paramsNode.NamedChild(i)
			if p.Type() != "formal_parameter" {
				continue
			}
			pType := javaType(p.ChildByFieldName("type"), src)
			pNameNode := p.ChildByFieldName("name")
			if pNameNode == nil {
				continue
			}
			desc.ParameterTypes = append(desc.ParameterTypes, pType)
			param := &graph.Parameter{NID: graph.NextNodeID(), Index: idx, DeclaredType: pType, OwningMethod: desc}
			f.store.AddNode(param)
			scope.vars[pNameNode.Content(src)] = param.NID
			idx++
		}
	}
	scope.desc = desc
	f.store.AddMethod(desc)

	methodAnns := f.parseAnnotations(node, src)
	if len(methodAnns) > 0 {
		f.store.AddMethodAnnotations(desc, methodAnns)
	}
	if ep, ok := endpointInfo(methodAnns, basePath, desc); ok {
		f.store.AddEndpoint(ep)
	}
	if isGetter(desc.Name, len(desc.ParameterTypes)) {
		if info, ok := jacksonInfo(methodAnns); ok {
			f.store.AddJacksonGetter(owner.ClassName, desc.Name, info)
		}
	}

	ret := &graph.Return{NID: graph.NextNodeID(), OwningMethod: desc}
	f.store.AddNode(ret)
	scope.retID = ret.NID

	body := node.ChildByFieldName("body")
	if body != nil {
		f.lowerBlock(body, src, scope)
	}
}

// lowerBlock walks statements in source order, threading a
// ControlFlow{Sequential} edge from each emitted control-flow node to the
// next, so a branch's reachable-node flood-fill (BranchScope) can follow
// straight-line code past a branch's first statement. It returns the
// block's first and last control-flow nodes, letting callers attach a
// BranchTrue/BranchFalse edge to the first and continue sequencing from
// the last.
func (f *Frontend) lowerBlock(block *sitter.Node, src []byte, scope *methodScope) (first, last graph.NodeID) {
	var prev graph.NodeID
	for i := 0; i < int(block.NamedChildCount()); i++ {
		cf := f.lowerStatement(block.NamedChild(i), src, scope)
		if cf == 0 {
			continue
		}
		if first == 0 {
			first = cf
		}
		if prev != 0 {
			f.store.AddEdge(&graph.ControlFlowEdge{FromID: prev, ToID: cf, FlowKind: graph.Sequential})
		}
		prev = cf
	}
	return first, prev
}

// lowerStatement lowers one statement and returns the NodeID standing in
// for its control-flow position, used by lowerBlock/branchEntry to thread
// Sequential and BranchTrue/BranchFalse edges; 0 if the statement carries
// no node worth sequencing from (e.g. an unrepresentable expression).
func (f *Frontend) lowerStatement(stmt *sitter.Node, src []byte, scope *methodScope) graph.NodeID {
	switch stmt.Type() {
	case "local_variable_declaration":
		return f.lowerLocalVarDecl(stmt, src, scope)
	case "expression_statement":
		if stmt.NamedChildCount() > 0 {
			if id, ok := f.lowerExpression(stmt.NamedChild(0), src, scope); ok {
				return id
			}
		}
		return 0
	case "if_statement":
		return f.lowerIf(stmt, src, scope)
	case "return_statement":
		if stmt.NamedChildCount() > 0 {
			valNode := stmt.NamedChild(0)
			if valID, ok := f.lowerExpression(valNode, src, scope); ok {
				f.store.AddEdge(&graph.DataFlowEdge{FromID: valID, ToID: scope.retID, FlowKind: graph.ReturnValue})
			}
		}
		return scope.retID
	case "block":
		_, last := f.lowerBlock(stmt, src, scope)
		return last
	default:
		return 0
	}
}

// lowerLocalVarDecl lowers a (possibly multi-declarator) local variable
// statement and returns the last declared local's NodeID, standing in for
// this statement's control-flow position.
func (f *Frontend) lowerLocalVarDecl(node *sitter.Node, src []byte, scope *methodScope) graph.NodeID {
	typeNode := node.ChildByFieldName("type")
	declType := javaType(typeNode, src)
	var lastID graph.NodeID
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		local := &graph.Local{NID: graph.NextNodeID(), Name: nameNode.Content(src), DeclaredType: declType, OwningMethod: scope.desc}
		f.store.AddNode(local)
		scope.vars[local.Name] = local.NID
		lastID = local.NID

		if valNode := child.ChildByFieldName("value"); valNode != nil {
			if valID, ok := f.lowerExpression(valNode, src, scope); ok {
				f.store.AddEdge(&graph.DataFlowEdge{FromID: valID, ToID: local.NID, FlowKind: graph.Assign})
				// "new T(...)" binds the local's precise runtime type,
				// distinct from its erased declared static type -- the
				// only way findActualReturnTypes recovers types behind
				// Object-declared return values.
				if valNode.Type() == "object_creation_expression" {
					if tn := valNode.ChildByFieldName("type"); tn != nil {
						local.DeclaredType = javaType(tn, src)
					}
				}
			}
		}
	}
	return lastID
}

// lowerExpression lowers an expression, returning the NodeID carrying its
// value (a Local/Parameter/Constant/CallSite/Field node), or ok=false if
// the expression has no representable value node (e.g. an identifier not
// in scope, or an expression kind this frontend does not lower).
func (f *Frontend) lowerExpression(node *sitter.Node, src []byte, scope *methodScope) (graph.NodeID, bool) {
	switch node.Type() {
	case "identifier":
		if id, ok := scope.vars[node.Content(src)]; ok {
			return id, true
		}
		return 0, false

	case "decimal_integer_literal", "hex_integer_literal":
		return f.internConstant(parseIntConstant(node.Content(src))), true

	case "decimal_floating_point_literal":
		return f.internConstant(parseFloatConstant(node.Content(src))), true

	case "string_literal":
		text := strings.Trim(node.Content(src), `"`)
		return f.internConstant(&graph.Constant{ConstKind: graph.ConstString, StringVal: text}), true

	case "true", "false":
		return f.internConstant(&graph.Constant{ConstKind: graph.ConstBool, BoolVal: node.Type() == "true"}), true

	case "null_literal":
		return f.internConstant(&graph.Constant{ConstKind: graph.ConstNull}), true

	case "field_access":
		// <object>.<field>; modelled as a Field node so declared-type
		// information is available to findActualReturnTypes.
		fieldNameNode := node.ChildByFieldName("field")
		if fieldNameNode == nil {
			return 0, false
		}
		fn := &graph.Field{
			NID:        graph.NextNodeID(),
			Descriptor: graph.FieldDescriptor{Name: fieldNameNode.Content(src)},
		}
		f.store.AddNode(fn)
		return fn.NID, true

	case "assignment_expression":
		return f.lowerAssignment(node, src, scope)

	case "method_invocation":
		return f.lowerInvocation(node, src, scope)

	case "object_creation_expression":
		return f.lowerInvocation(node, src, scope)

	case "cast_expression":
		inner := node.ChildByFieldName("value")
		if inner == nil {
			return 0, false
		}
		innerID, ok := f.lowerExpression(inner, src, scope)
		if !ok {
			return 0, false
		}
		castTo := &graph.Local{NID: graph.NextNodeID(), DeclaredType: javaType(node.ChildByFieldName("type"), src), OwningMethod: scope.desc}
		f.store.AddNode(castTo)
		f.store.AddEdge(&graph.DataFlowEdge{FromID: innerID, ToID: castTo.NID, FlowKind: graph.Cast})
		return castTo.NID, true

	case "parenthesized_expression":
		if node.NamedChildCount() == 0 {
			return 0, false
		}
		return f.lowerExpression(node.NamedChild(0), src, scope)

	default:
		return 0, false
	}
}

func (f *Frontend) internConstant(c *graph.Constant) graph.NodeID {
	if id, found := f.store.InternedScalar(c); found {
		return id
	}
	c.NID = graph.NextNodeID()
	f.store.AddNode(c)
	return c.NID
}

func parseIntConstant(text string) *graph.Constant {
	text = strings.TrimSuffix(strings.TrimSuffix(text, "L"), "l")
	if v, err := strconv.ParseInt(text, 0, 64); err == nil {
		if v >= -(1<<31) && v < (1<<31) {
			return &graph.Constant{ConstKind: graph.ConstInt, IntVal: int32(v)}
		}
		return &graph.Constant{ConstKind: graph.ConstLong, LongVal: v}
	}
	return &graph.Constant{ConstKind: graph.ConstInt}
}

func parseFloatConstant(text string) *graph.Constant {
	text = strings.TrimSuffix(strings.TrimSuffix(text, "d"), "D")
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return &graph.Constant{ConstKind: graph.ConstDouble, DoubleVal: v}
	}
	return &graph.Constant{ConstKind: graph.ConstDouble}
}

// boxingValueOfMethods, boxingWrapperClasses and boxingUnwrapMethods model
// the wrapper-class pass-through rules for boxed primitives:
// Wrapper.valueOf(x) and x.intValue()/longValue()/... are bypassed
// entirely, the call site is never materialised, and the result is a
// direct Assign from the underlying value.
var boxingValueOfMethods = map[string]bool{"valueOf": true}
var boxingWrapperClasses = map[string]bool{
	"Integer": true, "Long": true, "Short": true, "Byte": true,
	"Float": true, "Double": true, "Boolean": true, "Character": true,
}
var boxingUnwrapMethods = map[string]bool{
	"intValue": true, "longValue": true, "doubleValue": true,
	"floatValue": true, "booleanValue": true, "shortValue": true, "byteValue": true,
}

func (f *Frontend) lowerAssignment(node *sitter.Node, src []byte, scope *methodScope) (graph.NodeID, bool) {
	leftNode := node.ChildByFieldName("left")
	rightNode := node.ChildByFieldName("right")
	if leftNode == nil || rightNode == nil {
		return 0, false
	}
	rightID, ok := f.lowerExpression(rightNode, src, scope)
	if !ok {
		return 0, false
	}
	if leftNode.Type() == "identifier" {
		leftID, exists := scope.vars[leftNode.Content(src)]
		if !exists {
			local := &graph.Local{NID: graph.NextNodeID(), Name: leftNode.Content(src), OwningMethod: scope.desc}
			f.store.AddNode(local)
			scope.vars[local.Name] = local.NID
			leftID = local.NID
		}
		f.store.AddEdge(&graph.DataFlowEdge{FromID: rightID, ToID: leftID, FlowKind: graph.Assign})
		return leftID, true
	}
	return rightID, true
}

func (f *Frontend) lowerInvocation(node *sitter.Node, src []byte, scope *methodScope) (graph.NodeID, bool) {
	nameNode := node.ChildByFieldName("name")
	objNode := node.ChildByFieldName("object")
	argsNode := node.ChildByFieldName("arguments")

	methodName := ""
	if nameNode != nil {
		methodName = nameNode.Content(src)
	} else if node.Type() == "object_creation_expression" {
		methodName = "<init>"
	}

	// Wrapper-class pass-through: bypass the call site entirely.
	if boxingValueOfMethods[methodName] && objNode != nil &&
		boxingWrapperClasses[strings.TrimPrefix(objNode.Content(src), "java.lang.")] &&
		argsNode != nil && argsNode.NamedChildCount() == 1 {
		return f.lowerExpression(argsNode.NamedChild(0), src, scope)
	}
	if boxingUnwrapMethods[methodName] && objNode != nil {
		return f.lowerExpression(objNode, src, scope)
	}

	calleeClass := ""
	if node.Type() == "object_creation_expression" {
		if tn := node.ChildByFieldName("type"); tn != nil {
			calleeClass = tn.Content(src)
		}
	}
	callee := graph.MethodDescriptor{DeclaringClass: graph.TypeDescriptor{ClassName: calleeClass}, Name: methodName}

	cs := &graph.CallSite{NID: graph.NextNodeID(), Caller: scope.desc, Callee: callee}
	f.store.AddNode(cs)

	if objNode != nil {
		if recvID, ok := f.lowerExpression(objNode, src, scope); ok {
			cs.ReceiverNode = recvID
			f.store.AddEdge(&graph.DataFlowEdge{FromID: recvID, ToID: cs.NID, FlowKind: graph.Assign})
		}
	}

	if argsNode != nil {
		for i := 0; i < int(argsNode.NamedChildCount()); i++ {
			argID, ok := f.lowerExpression(argsNode.NamedChild(i), src, scope)
			if !ok {
				continue
			}
			cs.ArgumentNodes = append(cs.ArgumentNodes, argID)
			f.store.AddEdge(&graph.DataFlowEdge{FromID: argID, ToID: cs.NID, FlowKind: graph.ParameterPass})
		}
	}

	return cs.NID, true
}

// lowerIf lowers an if/else statement. It returns the condition node's
// NodeID as the if-statement's own control-flow position, so whatever
// follows the if-statement is sequenced from the condition node; the
// branch bodies' last statements get no edge to it, so it lies in neither
// TrueBranchNodes nor FalseBranchNodes.
func (f *Frontend) lowerIf(node *sitter.Node, src []byte, scope *methodScope) graph.NodeID {
	condNode := node.ChildByFieldName("condition")
	consequenceNode := node.ChildByFieldName("consequence")
	alternativeNode := node.ChildByFieldName("alternative")
	if condNode == nil {
		return 0
	}
	// condition arrives wrapped in a parenthesized_expression.
	if condNode.Type() == "parenthesized_expression" && condNode.NamedChildCount() > 0 {
		condNode = condNode.NamedChild(0)
	}

	condID, cmp := f.lowerCondition(condNode, src, scope)
	if condID == 0 {
		return 0
	}

	if consequenceNode != nil {
		trueEntry := f.branchEntry(consequenceNode, src, scope)
		f.store.AddEdge(&graph.ControlFlowEdge{FromID: condID, ToID: trueEntry, FlowKind: graph.BranchTrue, Comparison: &cmp})
	}
	if alternativeNode != nil {
		falseEntry := f.branchEntry(alternativeNode, src, scope)
		f.store.AddEdge(&graph.ControlFlowEdge{FromID: condID, ToID: falseEntry, FlowKind: graph.BranchFalse, Comparison: &cmp})
	}
	return condID
}

// branchEntry lowers a branch body (a block or a single bodyless
// statement) and returns the NodeID of its first control-flow position --
// the BranchTrue/BranchFalse edge's real target, with the body's own
// statements already threaded by Sequential edges behind it. A branch
// whose body contributes no control-flow node (e.g. an empty block) gets a
// marker Local so the edge still has a concrete target.
func (f *Frontend) branchEntry(stmt *sitter.Node, src []byte, scope *methodScope) graph.NodeID {
	var entry graph.NodeID
	if stmt.Type() == "block" {
		entry, _ = f.lowerBlock(stmt, src, scope)
	} else {
		entry = f.lowerStatement(stmt, src, scope)
	}
	if entry != 0 {
		return entry
	}
	marker := &graph.Local{NID: graph.NextNodeID(), Name: "<branch-entry>", OwningMethod: scope.desc}
	f.store.AddNode(marker)
	return marker.NID
}

// lowerCondition lowers a binary condition expression into a Comparison,
// whose Comparand is the NodeID of the right-hand operand (itself
// resolvable by the slicer as a constant or further dataflow).
func (f *Frontend) lowerCondition(node *sitter.Node, src []byte, scope *methodScope) (graph.NodeID, graph.Comparison) {
	if node.Type() != "binary_expression" {
		id, _ := f.lowerExpression(node, src, scope)
		return id, graph.Comparison{}
	}
	leftNode := node.ChildByFieldName("left")
	rightNode := node.ChildByFieldName("right")
	opNode := node.ChildByFieldName("operator")
	if leftNode == nil || rightNode == nil {
		return 0, graph.Comparison{}
	}
	leftID, ok := f.lowerExpression(leftNode, src, scope)
	if !ok {
		return 0, graph.Comparison{}
	}
	rightID, _ := f.lowerExpression(rightNode, src, scope)

	op := graph.EQ
	if opNode != nil {
		switch opNode.Content(src) {
		case "==":
			op = graph.EQ
		case "!=":
			op = graph.NE
		case "<":
			op = graph.LT
		case ">=":
			op = graph.GE
		case ">":
			op = graph.GT
		case "<=":
			op = graph.LE
		}
	}
	return leftID, graph.Comparison{Op: op, Comparand: rightID}
}

func (f *Frontend) lowerEnum(node *sitter.Node, src []byte, pkg string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	enumClass := f.qualify(pkg, nameNode.Content(src))
	if !f.cfg.IncludesPackage(enumClass) {
		return
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "enum_constant" {
			continue
		}
		constNameNode := child.ChildByFieldName("name")
		if constNameNode == nil {
			continue
		}
		var args []interface{}
		if argsNode := child.ChildByFieldName("arguments"); argsNode != nil {
			for j := 0; j < int(argsNode.NamedChildCount()); j++ {
				args = append(args, literalValue(argsNode.NamedChild(j), src))
			}
		}
		f.store.AddEnumValues(enumClass, constNameNode.Content(src), args)
	}
}

// literalValue resolves an enum constructor argument expression to the
// bit-exact value kinds the external-interface contract requires: i32,
// i64, bool, text, an EnumValueReference for cross-references, or nil
// for anything else unresolved.
func literalValue(node *sitter.Node, src []byte) interface{} {
	switch node.Type() {
	case "decimal_integer_literal", "hex_integer_literal":
		c := parseIntConstant(node.Content(src))
		if c.ConstKind == graph.ConstLong {
			return c.LongVal
		}
		return c.IntVal
	case "string_literal":
		return strings.Trim(node.Content(src), `"`)
	case "true", "false":
		return node.Type() == "true"
	case "identifier":
		return graph.EnumValueReference{EnumName: node.Content(src)}
	case "field_access":
		fieldNode := node.ChildByFieldName("field")
		objNode := node.ChildByFieldName("object")
		if fieldNode != nil && objNode != nil {
			return graph.EnumValueReference{EnumType: objNode.Content(src), EnumName: fieldNode.Content(src)}
		}
		return nil
	default:
		return nil
	}
}

// parseAnnotations reads a declaration's leading "modifiers" child and
// lowers each marker_annotation/annotation into a graph.Annotation, the
// descriptor-level form the endpoint/Jackson extractors read.
func (f *Frontend) parseAnnotations(node *sitter.Node, src []byte) []graph.Annotation {
	if node.NamedChildCount() == 0 || node.NamedChild(0).Type() != "modifiers" {
		return nil
	}
	mods := node.NamedChild(0)
	var out []graph.Annotation
	for i := 0; i < int(mods.NamedChildCount()); i++ {
		m := mods.NamedChild(i)
		if m.Type() != "annotation" && m.Type() != "marker_annotation" {
			continue
		}
		nameNode := m.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(src)
		ann := graph.Annotation{ClassName: name, FullyQualifiedName: name, Values: map[string]string{}}
		if argsNode := m.ChildByFieldName("arguments"); argsNode != nil {
			for j := 0; j < int(argsNode.NamedChildCount()); j++ {
				el := argsNode.NamedChild(j)
				if el.Type() == "element_value_pair" {
					keyNode := el.ChildByFieldName("key")
					valNode := el.ChildByFieldName("value")
					if keyNode != nil && valNode != nil {
						ann.Values[keyNode.Content(src)] = annotationElementText(valNode, src)
					}
					continue
				}
				// a bare single-element value, e.g. @RequestMapping("/widgets")
				ann.Values["value"] = annotationElementText(el, src)
			}
		}
		out = append(out, ann)
	}
	return out
}

func annotationElementText(node *sitter.Node, src []byte) string {
	text := strings.Trim(node.Content(src), `"`)
	if idx := strings.LastIndex(text, "."); idx >= 0 && strings.ToUpper(text) == text {
		// RequestMethod.GET-style qualified enum constant reference.
		text = text[idx+1:]
	}
	return text
}

// mappingHTTPMethods names the Spring-style mapping annotations the
// endpoint extractor recognises, and the HTTP method each one implies (""
// for RequestMapping, whose method comes from its own "method" element).
var mappingHTTPMethods = map[string]string{
	"GetMapping":     "GET",
	"PostMapping":    "POST",
	"PutMapping":     "PUT",
	"DeleteMapping":  "DELETE",
	"PatchMapping":   "PATCH",
	"RequestMapping": "",
}

func findAnnotation(anns []graph.Annotation, name string) (graph.Annotation, bool) {
	for _, a := range anns {
		if a.ClassName == name {
			return a, true
		}
	}
	return graph.Annotation{}, false
}

// endpointPath returns a class-level @RequestMapping's base path, if any.
func endpointPath(anns []graph.Annotation) string {
	if a, ok := findAnnotation(anns, "RequestMapping"); ok {
		if p, ok := a.Values["value"]; ok {
			return p
		}
		return a.Values["path"]
	}
	return ""
}

// endpointInfo derives a method's graph.EndpointInfo from its mapping
// annotation, combining it with the class-level basePath, or ok=false if
// the method carries no recognised mapping annotation.
func endpointInfo(anns []graph.Annotation, basePath string, handler graph.MethodDescriptor) (graph.EndpointInfo, bool) {
	for _, a := range anns {
		httpMethod, recognised := mappingHTTPMethods[a.ClassName]
		if !recognised {
			continue
		}
		methodPath := a.Values["value"]
		if methodPath == "" {
			methodPath = a.Values["path"]
		}
		if httpMethod == "" {
			httpMethod = a.Values["method"]
		}
		path := graph.NormalizePathVariables(graph.CombinePaths(basePath, methodPath))
		return graph.EndpointInfo{Path: path, HTTPMethod: httpMethod, Handler: handler}, true
	}
	return graph.EndpointInfo{}, false
}

// jacksonInfo derives Jackson JSON-binding info from @JsonIgnore/
// @JsonProperty, or ok=false if neither annotation is present.
func jacksonInfo(anns []graph.Annotation) (graph.JacksonInfo, bool) {
	var info graph.JacksonInfo
	found := false
	if _, ok := findAnnotation(anns, "JsonIgnore"); ok {
		info.IsIgnored = true
		found = true
	}
	if a, ok := findAnnotation(anns, "JsonProperty"); ok {
		if name := a.Values["value"]; name != "" {
			info.JSONName = name
			found = true
		}
		if strings.Contains(a.Values["access"], "WRITE_ONLY") {
			info.IsIgnored = true
			found = true
		}
	}
	return info, found
}

// isGetter reports whether a zero-argument method follows the getX/isX
// JavaBean accessor convention Jackson uses to derive a property name.
func isGetter(name string, paramCount int) bool {
	if paramCount != 0 {
		return false
	}
	if strings.HasPrefix(name, "get") {
		return len(name) > len("get")
	}
	if strings.HasPrefix(name, "is") {
		return len(name) > len("is")
	}
	return false
}
