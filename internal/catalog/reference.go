// Package catalog compiles a schema into the exhaustive set of references
// that compliant documents may contain, and indexes that set for the lookups
// the scanner needs.
package catalog

import "strings"

// Reference is one schema-permitted link: a field of a class, stored in a
// collection, may point to an instance of a class stored in a collection.
// References are immutable values; equality is structural over all fields.
type Reference struct {
	SourceCollectionName string
	SourceClassName      string
	SourceFieldName      string
	TargetCollectionName string
	TargetClassName      string
}

// compare orders references for deterministic reporting: lowercase source
// collection name first, then the remaining fields structurally.
func compare(a, b Reference) int {
	if c := strings.Compare(strings.ToLower(a.SourceCollectionName), strings.ToLower(b.SourceCollectionName)); c != 0 {
		return c
	}
	if c := strings.Compare(a.SourceClassName, b.SourceClassName); c != 0 {
		return c
	}
	if c := strings.Compare(a.SourceFieldName, b.SourceFieldName); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.TargetCollectionName), strings.ToLower(b.TargetCollectionName)); c != 0 {
		return c
	}
	return strings.Compare(a.TargetClassName, b.TargetClassName)
}

// Violation is one resolved-but-failed reference: a field value that does not
// correspond to any document in a schema-permitted collection.
//
// NameOfCollectionContainingTarget is empty normally. When the broadened
// "locate misplaced documents" search finds the target anyway, it holds the
// name of the collection the document actually lives in, which the schema
// does not permit for this reference.
type Violation struct {
	SourceCollectionName             string
	SourceClassName                  string
	SourceFieldName                  string
	SourceDocumentObjectID           string
	SourceDocumentID                 string
	TargetID                         string
	NameOfCollectionContainingTarget string
}
