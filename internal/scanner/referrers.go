package scanner

import (
	"context"
	"sort"

	"github.com/microbiomedata/refscan/internal/store"
)

// ReferringDocument is a document that actually references a given target,
// together with the collection it was found in.
type ReferringDocument struct {
	CollectionName string
	Descriptor     store.Descriptor
}

// IdentifyReferringDocuments returns a descriptor for every document in the
// store that the schema permits to reference the target (identified by its
// business identifier and class) and that actually does. It answers "is it
// safe to delete this document?" and shares the finder and catalog with the
// violation scan, issuing one disjunctive query per source collection.
func (s *Scanner) IdentifyReferringDocuments(ctx context.Context, documentID, className string) ([]ReferringDocument, error) {
	type pairSet map[store.TypeFieldPair]struct{}
	pairsByCollection := make(map[string]pairSet)
	for _, ref := range s.catalog.ByTargetClass(className) {
		typeValue, ok := s.resolver.TypeURIForClassName(ref.SourceClassName)
		if !ok {
			continue
		}
		pairs, exists := pairsByCollection[ref.SourceCollectionName]
		if !exists {
			pairs = make(pairSet)
			pairsByCollection[ref.SourceCollectionName] = pairs
		}
		pairs[store.TypeFieldPair{TypeValue: typeValue, FieldName: ref.SourceFieldName}] = struct{}{}
	}

	collectionNames := make([]string, 0, len(pairsByCollection))
	for name := range pairsByCollection {
		collectionNames = append(collectionNames, name)
	}
	sort.Strings(collectionNames)

	var referrers []ReferringDocument
	for _, collectionName := range collectionNames {
		pairs := make([]store.TypeFieldPair, 0, len(pairsByCollection[collectionName]))
		for pair := range pairsByCollection[collectionName] {
			pairs = append(pairs, pair)
		}
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i].TypeValue != pairs[j].TypeValue {
				return pairs[i].TypeValue < pairs[j].TypeValue
			}
			return pairs[i].FieldName < pairs[j].FieldName
		})
		descriptors, err := s.finder.FindDocumentsMatching(ctx, collectionName, pairs, documentID)
		if err != nil {
			return nil, err
		}
		for _, descriptor := range descriptors {
			referrers = append(referrers, ReferringDocument{
				CollectionName: collectionName,
				Descriptor:     descriptor,
			})
		}
	}
	return referrers, nil
}
