// Package store defines the narrow document-store contract the scanner and
// finder depend on, and provides the MongoDB implementation of it.
package store

import "context"

// Document is one decoded document. Field values keep their driver-decoded
// Go types; the storage identifier stays under the "_id" key.
type Document = map[string]any

// Descriptor identifies a document without carrying its body.
type Descriptor struct {
	StorageID string // the store's internal identifier, rendered as a string
	ID        string // the document's business identifier ("" if absent)
	Type      string // the document's self-declared type tag
}

// TypeFieldPair names a document type tag together with one of its fields,
// for disjunctive referring-document queries.
type TypeFieldPair struct {
	TypeValue string
	FieldName string
}

// Cursor streams documents from a filtered read.
type Cursor interface {
	// Next advances to the next document, reporting whether one is available.
	Next(ctx context.Context) bool
	// Document returns the current document.
	Document() (Document, error)
	// Err returns the first error encountered while iterating.
	Err() error
	// Close releases the cursor's resources.
	Close(ctx context.Context) error
}

// Store is the collection-scoped surface of the document database.
type Store interface {
	// CollectionNames lists the collections present in the database.
	CollectionNames(ctx context.Context) ([]string, error)

	// HasDocumentWithID reports whether any document in the collection has
	// the value in its id field. Implementations project only the storage
	// identifier.
	HasDocumentWithID(ctx context.Context, collectionName, documentID string) (bool, error)

	// CountDocumentsHavingFields counts the collection's documents having at
	// least one of the named fields present.
	CountDocumentsHavingFields(ctx context.Context, collectionName string, fieldNames []string) (int64, error)

	// FindDocumentsHavingFields streams the collection's documents having at
	// least one of the named fields present, projecting only the named
	// projection fields plus the storage identifier.
	FindDocumentsHavingFields(ctx context.Context, collectionName string, fieldNames, projection []string) (Cursor, error)

	// FindReferringDocuments returns descriptors of every document in the
	// collection whose type matches one pair's type value and whose named
	// field contains the value (scalar equality, or membership for fields
	// holding a list). Implemented as one disjunctive query.
	FindReferringDocuments(ctx context.Context, collectionName string, pairs []TypeFieldPair, value string) ([]Descriptor, error)
}
