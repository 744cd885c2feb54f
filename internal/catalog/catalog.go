package catalog

import (
	"slices"
	"sort"
)

// Catalog is an immutable, ordered collection of References with lookup
// indexes over the source and target sides. Build one per scan run.
type Catalog struct {
	refs []Reference

	sourceFieldsByCollection map[string]map[string]struct{}
	targetsByClassField      map[classField][]string
	fieldsByClass            map[string]map[string]struct{}
	refsByTargetClass        map[string][]Reference
	refsBySourceCollection   map[string][]Reference
}

type classField struct {
	className string
	fieldName string
}

// New builds a catalog from references, deduplicating and sorting them.
func New(refs []Reference) *Catalog {
	unique := make(map[Reference]struct{}, len(refs))
	deduped := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		if _, dup := unique[ref]; dup {
			continue
		}
		unique[ref] = struct{}{}
		deduped = append(deduped, ref)
	}
	slices.SortFunc(deduped, compare)

	c := &Catalog{
		refs:                     deduped,
		sourceFieldsByCollection: make(map[string]map[string]struct{}),
		targetsByClassField:      make(map[classField][]string),
		fieldsByClass:            make(map[string]map[string]struct{}),
		refsByTargetClass:        make(map[string][]Reference),
		refsBySourceCollection:   make(map[string][]Reference),
	}
	for _, ref := range deduped {
		fields, ok := c.sourceFieldsByCollection[ref.SourceCollectionName]
		if !ok {
			fields = make(map[string]struct{})
			c.sourceFieldsByCollection[ref.SourceCollectionName] = fields
		}
		fields[ref.SourceFieldName] = struct{}{}

		key := classField{ref.SourceClassName, ref.SourceFieldName}
		if !slices.Contains(c.targetsByClassField[key], ref.TargetCollectionName) {
			c.targetsByClassField[key] = append(c.targetsByClassField[key], ref.TargetCollectionName)
		}

		classFields, ok := c.fieldsByClass[ref.SourceClassName]
		if !ok {
			classFields = make(map[string]struct{})
			c.fieldsByClass[ref.SourceClassName] = classFields
		}
		classFields[ref.SourceFieldName] = struct{}{}

		c.refsByTargetClass[ref.TargetClassName] = append(c.refsByTargetClass[ref.TargetClassName], ref)
		c.refsBySourceCollection[ref.SourceCollectionName] = append(c.refsBySourceCollection[ref.SourceCollectionName], ref)
	}
	return c
}

// Len returns the number of references in the catalog.
func (c *Catalog) Len() int { return len(c.refs) }

// References returns the catalog's references in their deterministic order.
// Callers must not mutate the returned slice.
func (c *Catalog) References() []Reference { return c.refs }

// SourceCollectionNames returns the distinct collections that may contain
// referring documents, sorted. These are the collections worth scanning.
func (c *Catalog) SourceCollectionNames() []string {
	return sortedKeys(c.sourceFieldsByCollection)
}

// CountSourceCollections returns the number of distinct source collections.
func (c *Catalog) CountSourceCollections() int {
	return len(c.sourceFieldsByCollection)
}

// SourceFieldNames returns the field names within the collection that might
// hold references, sorted. Unknown collections yield an empty set.
func (c *Catalog) SourceFieldNames(collectionName string) []string {
	return sortedKeys(c.sourceFieldsByCollection[collectionName])
}

// TargetCollectionNames returns the collections that are legal destinations
// for the given class and field. An unknown combination yields an empty set
// rather than an error.
func (c *Catalog) TargetCollectionNames(sourceClassName, sourceFieldName string) []string {
	return slices.Clone(c.targetsByClassField[classField{sourceClassName, sourceFieldName}])
}

// ReferenceFieldNamesByClass maps each source class name to the sorted set of
// its fields that can hold references, aggregated across collections.
func (c *Catalog) ReferenceFieldNamesByClass() map[string][]string {
	byClass := make(map[string][]string, len(c.fieldsByClass))
	for className, fields := range c.fieldsByClass {
		byClass[className] = sortedKeys(fields)
	}
	return byClass
}

// ByTargetClass returns the references whose target is the named class.
func (c *Catalog) ByTargetClass(className string) []Reference {
	return slices.Clone(c.refsByTargetClass[className])
}

// GroupBySourceCollection partitions the references by source collection.
func (c *Catalog) GroupBySourceCollection() map[string][]Reference {
	grouped := make(map[string][]Reference, len(c.refsBySourceCollection))
	for name, refs := range c.refsBySourceCollection {
		grouped[name] = slices.Clone(refs)
	}
	return grouped
}

func sortedKeys[V any](set map[string]V) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
