package schema

import (
	"fmt"
	"sort"
)

// builtinTypeNames are the LinkML built-in scalar types. A slot whose range
// names one of these can never hold a reference.
var builtinTypeNames = map[string]struct{}{
	"string": {}, "integer": {}, "boolean": {}, "float": {}, "double": {},
	"decimal": {}, "time": {}, "date": {}, "datetime": {}, "date_or_datetime": {},
	"uri": {}, "uriorcurie": {}, "curie": {}, "ncname": {},
	"objectidentifier": {}, "nodeidentifier": {}, "jsonpointer": {},
}

// View answers reflection questions about a schema definition: which slots of
// the Database class are collections, which classes may live in a collection,
// which slots a class has (its own plus inherited), what a slot's effective
// target classes are, and how class names map to type-tag URIs.
type View struct {
	def        *Definition
	children   map[string][]string // class name -> direct subclasses
	classByURI map[string]string   // type-tag URI -> class name
}

// NewView indexes a schema definition. It fails if a class names an is_a
// parent that the schema does not define.
func NewView(def *Definition) (*View, error) {
	v := &View{
		def:        def,
		children:   make(map[string][]string),
		classByURI: make(map[string]string),
	}
	for name, class := range def.Classes {
		if class.IsA != "" {
			if _, ok := def.Classes[class.IsA]; !ok {
				return nil, fmt.Errorf("class %q declares undefined parent class %q", name, class.IsA)
			}
			v.children[class.IsA] = append(v.children[class.IsA], name)
		}
		if uri := v.typeURIFor(name, class); uri != "" {
			v.classByURI[uri] = name
		}
	}
	for parent := range v.children {
		sort.Strings(v.children[parent])
	}
	return v, nil
}

// LoadView reads a schema YAML file and returns an indexed view of it.
func LoadView(path string) (*View, error) {
	def, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewView(def)
}

// SchemaName returns the schema's declared name.
func (v *View) SchemaName() string { return v.def.Name }

// SchemaVersion returns the schema's declared version string.
func (v *View) SchemaVersion() string { return v.def.Version }

// CollectionNames returns the names of the Database slots that describe
// collections, sorted. Only multivalued, inlined-as-list slots qualify;
// scalar bookkeeping slots (e.g. a version field) are filtered out.
func (v *View) CollectionNames() []string {
	root, ok := v.def.Classes[DatabaseClassName]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, slotName := range root.Slots {
		slot, ok := v.def.Slots[slotName]
		if !ok || !slot.Multivalued || !slot.InlinedAsList {
			continue
		}
		if _, dup := seen[slotName]; dup {
			continue
		}
		seen[slotName] = struct{}{}
		names = append(names, slotName)
	}
	sort.Strings(names)
	return names
}

// ClassesEligibleForCollection returns the names of the classes whose
// instances may be stored in the named collection: the declared range class
// of the corresponding Database slot, plus all of its descendants.
func (v *View) ClassesEligibleForCollection(collectionName string) ([]string, error) {
	slot, ok := v.def.Slots[collectionName]
	if !ok {
		return nil, fmt.Errorf("collection %q is not described by the schema", collectionName)
	}
	if _, ok := v.def.Classes[slot.Range]; !ok {
		return nil, fmt.Errorf("collection %q has undefined range class %q", collectionName, slot.Range)
	}
	return v.ClassDescendants(slot.Range), nil
}

// ClassDescendants returns the class itself plus all transitive subclasses,
// in a deterministic order. Unknown classes yield nil.
func (v *View) ClassDescendants(className string) []string {
	if _, ok := v.def.Classes[className]; !ok {
		return nil
	}
	var names []string
	stack := []string{className}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		names = append(names, name)
		stack = append(stack, v.children[name]...)
	}
	return names
}

// ClassSlotNames returns the names of the slots defined on the class,
// including those inherited through its is_a ancestry. Inherited slots come
// first; duplicates keep their first occurrence.
func (v *View) ClassSlotNames(className string) ([]string, error) {
	if _, ok := v.def.Classes[className]; !ok {
		return nil, fmt.Errorf("unknown class %q", className)
	}
	var lineage []string
	for name := className; name != ""; {
		lineage = append([]string{name}, lineage...)
		name = v.def.Classes[name].IsA
	}
	seen := make(map[string]struct{})
	var slotNames []string
	for _, ancestor := range lineage {
		for _, slotName := range v.def.Classes[ancestor].Slots {
			if _, dup := seen[slotName]; dup {
				continue
			}
			seen[slotName] = struct{}{}
			slotNames = append(slotNames, slotName)
		}
	}
	return slotNames, nil
}

// EffectiveRangeClassNames returns the full set of classes the slot may point
// to: each declared range class (from any_of disjuncts when present,
// otherwise the single range) expanded to its subclass closure. Scalar-typed
// ranges contribute nothing. A range naming neither a class nor a known
// scalar type is a schema inconsistency.
func (v *View) EffectiveRangeClassNames(slotName string) ([]string, error) {
	slot, ok := v.def.Slots[slotName]
	if !ok {
		return nil, fmt.Errorf("unknown slot %q", slotName)
	}
	rangeNames := []string{slot.Range}
	if len(slot.AnyOf) > 0 {
		rangeNames = rangeNames[:0]
		for _, expr := range slot.AnyOf {
			rangeNames = append(rangeNames, expr.Range)
		}
	}
	seen := make(map[string]struct{})
	var classNames []string
	for _, rangeName := range rangeNames {
		if rangeName == "" {
			continue
		}
		if _, ok := v.def.Classes[rangeName]; ok {
			for _, descendant := range v.ClassDescendants(rangeName) {
				if _, dup := seen[descendant]; dup {
					continue
				}
				seen[descendant] = struct{}{}
				classNames = append(classNames, descendant)
			}
			continue
		}
		if !v.isScalarType(rangeName) {
			return nil, fmt.Errorf("slot %q has undefined range class %q", slotName, rangeName)
		}
	}
	return classNames, nil
}

// IsClassAbstract reports whether the named class is declared abstract.
func (v *View) IsClassAbstract(className string) bool {
	return v.def.Classes[className].Abstract
}

// ClassNameForTypeURI translates a document's type-tag URI into the name of
// the schema class that declares it.
func (v *View) ClassNameForTypeURI(uri string) (string, bool) {
	name, ok := v.classByURI[uri]
	return name, ok
}

// TypeURIForClassName translates a class name into the type-tag URI its
// instances carry in their type field.
func (v *View) TypeURIForClassName(className string) (string, bool) {
	class, ok := v.def.Classes[className]
	if !ok {
		return "", false
	}
	return v.typeURIFor(className, class), true
}

// ClassNameForDocument derives the schema class a document claims to be an
// instance of, from its self-declared type field.
func (v *View) ClassNameForDocument(document map[string]any) (string, bool) {
	typeTag, ok := document["type"].(string)
	if !ok {
		return "", false
	}
	return v.ClassNameForTypeURI(typeTag)
}

func (v *View) isScalarType(name string) bool {
	if _, ok := v.def.Types[name]; ok {
		return true
	}
	_, ok := builtinTypeNames[name]
	return ok
}

func (v *View) typeURIFor(className string, class ClassDefinition) string {
	if class.ClassURI != "" {
		return class.ClassURI
	}
	if v.def.DefaultPrefix != "" {
		return v.def.DefaultPrefix + ":" + className
	}
	return className
}
