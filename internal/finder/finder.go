// Package finder resolves document identifiers against a set of candidate
// collections, using past lookups to speed up future ones.
package finder

import (
	"context"

	"github.com/microbiomedata/refscan/internal/store"
)

// recencyCapacity is how many recently-successful collection names the
// finder remembers as a search-order hint.
const recencyCapacity = 2

type presenceKey struct {
	collectionName string
	documentID     string
}

// Finder looks up documents by id across collections, bound to one store for
// its whole lifetime. It owns two caches scoped to one scan run:
//
//   - a recency queue of the collections documents were most recently found
//     in, used only to reorder the search (never to exclude a candidate);
//   - a presence cache mapping (collection, id) to a known presence/absence
//     result, authoritative once populated.
//
// The presence cache is never invalidated, which is safe only under the
// scan's standing assumption that the store is not concurrently mutated.
type Finder struct {
	store    store.Store
	recent   *recencyQueue
	presence map[presenceKey]bool
}

// New returns a finder bound to the store, with empty caches.
func New(s store.Store) *Finder {
	return &Finder{
		store:    s,
		recent:   newRecencyQueue(recencyCapacity),
		presence: make(map[presenceKey]bool),
	}
}

// Resolve determines which of the candidate collections, if any, currently
// contains a document whose id field holds documentID. It returns the name
// of the first such collection, or "" if none of them contain the document.
// Absence is an expected outcome, not an error.
//
// Candidates remembered by the recency queue are searched first; a cached
// presence result short-circuits the store query for that collection.
func (f *Finder) Resolve(ctx context.Context, documentID string, candidateCollectionNames []string) (string, error) {
	for _, collectionName := range f.recent.reorder(candidateCollectionNames) {
		key := presenceKey{collectionName, documentID}
		if present, cached := f.presence[key]; cached {
			if !present {
				continue
			}
			f.recent.promote(collectionName)
			return collectionName, nil
		}
		present, err := f.store.HasDocumentWithID(ctx, collectionName, documentID)
		if err != nil {
			return "", err
		}
		f.presence[key] = present
		if present {
			f.recent.promote(collectionName)
			return collectionName, nil
		}
	}
	return "", nil
}

// FindDocumentsMatching returns descriptors of every document in the
// collection whose type matches one pair's type value and whose named field
// contains the value. Used for reverse-reference lookups; results are not
// cached.
func (f *Finder) FindDocumentsMatching(ctx context.Context, collectionName string, pairs []store.TypeFieldPair, value string) ([]store.Descriptor, error) {
	return f.store.FindReferringDocuments(ctx, collectionName, pairs, value)
}
