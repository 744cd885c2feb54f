// Package testutil provides test doubles for refscan tests, chiefly an
// in-memory document store with query instrumentation.
package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/microbiomedata/refscan/internal/store"
)

// FakeStore is an in-memory store.Store. It records how many existence
// probes each collection received, so tests can assert that the finder's
// presence cache eliminates redundant queries.
type FakeStore struct {
	mu               sync.Mutex
	collections      map[string][]store.Document
	collectionOrder  []string
	existenceQueries map[string]int
}

// NewFakeStore returns an empty fake store. Seed it with WithCollection.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		collections:      make(map[string][]store.Document),
		existenceQueries: make(map[string]int),
	}
}

// WithCollection seeds a collection with documents and returns the store for
// chaining.
func (f *FakeStore) WithCollection(name string, docs ...store.Document) *FakeStore {
	if _, exists := f.collections[name]; !exists {
		f.collectionOrder = append(f.collectionOrder, name)
	}
	f.collections[name] = append(f.collections[name], docs...)
	return f
}

// ExistenceQueries returns how many HasDocumentWithID calls reached the
// named collection.
func (f *FakeStore) ExistenceQueries(collectionName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existenceQueries[collectionName]
}

// TotalExistenceQueries returns how many HasDocumentWithID calls reached the
// store across all collections.
func (f *FakeStore) TotalExistenceQueries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.existenceQueries {
		total += n
	}
	return total
}

// CollectionNames implements store.Store.
func (f *FakeStore) CollectionNames(_ context.Context) ([]string, error) {
	return slices.Clone(f.collectionOrder), nil
}

// HasDocumentWithID implements store.Store, counting each probe.
func (f *FakeStore) HasDocumentWithID(_ context.Context, collectionName, documentID string) (bool, error) {
	f.mu.Lock()
	f.existenceQueries[collectionName]++
	f.mu.Unlock()
	for _, doc := range f.collections[collectionName] {
		if id, ok := doc["id"].(string); ok && id == documentID {
			return true, nil
		}
	}
	return false, nil
}

// CountDocumentsHavingFields implements store.Store.
func (f *FakeStore) CountDocumentsHavingFields(_ context.Context, collectionName string, fieldNames []string) (int64, error) {
	var count int64
	for _, doc := range f.collections[collectionName] {
		if hasAnyField(doc, fieldNames) {
			count++
		}
	}
	return count, nil
}

// FindDocumentsHavingFields implements store.Store. The fake does not apply
// the projection; returning whole documents is harmless for tests.
func (f *FakeStore) FindDocumentsHavingFields(_ context.Context, collectionName string, fieldNames, _ []string) (store.Cursor, error) {
	var matches []store.Document
	for _, doc := range f.collections[collectionName] {
		if hasAnyField(doc, fieldNames) {
			matches = append(matches, doc)
		}
	}
	return &sliceCursor{docs: matches}, nil
}

// FindReferringDocuments implements store.Store.
func (f *FakeStore) FindReferringDocuments(_ context.Context, collectionName string, pairs []store.TypeFieldPair, value string) ([]store.Descriptor, error) {
	var descriptors []store.Descriptor
	for _, doc := range f.collections[collectionName] {
		typeTag, _ := doc["type"].(string)
		for _, pair := range pairs {
			if pair.TypeValue == typeTag && fieldContains(doc[pair.FieldName], value) {
				descriptors = append(descriptors, store.DescribeDocument(doc))
				break
			}
		}
	}
	return descriptors, nil
}

func hasAnyField(doc store.Document, fieldNames []string) bool {
	for _, name := range fieldNames {
		if _, ok := doc[name]; ok {
			return true
		}
	}
	return false
}

func fieldContains(fieldValue any, value string) bool {
	switch v := fieldValue.(type) {
	case string:
		return v == value
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == value {
				return true
			}
		}
	case []string:
		return slices.Contains(v, value)
	}
	return false
}

type sliceCursor struct {
	docs []store.Document
	pos  int
}

func (c *sliceCursor) Next(_ context.Context) bool {
	if c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Document() (store.Document, error) {
	return c.docs[c.pos-1], nil
}

func (c *sliceCursor) Err() error { return nil }

func (c *sliceCursor) Close(_ context.Context) error { return nil }
