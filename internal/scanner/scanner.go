// Package scanner walks every schema-described collection of a document
// store, resolves each reference-bearing field value through the finder, and
// accumulates violations for values that resolve to no permitted collection.
package scanner

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/microbiomedata/refscan/internal/catalog"
	"github.com/microbiomedata/refscan/internal/finder"
	"github.com/microbiomedata/refscan/internal/store"
)

// SchemaResolver is the slice of schema reflection the scanner consumes.
// *schema.View satisfies it.
type SchemaResolver interface {
	// ClassNameForDocument derives the document's schema class from its
	// self-declared type tag.
	ClassNameForDocument(document map[string]any) (string, bool)
	// CollectionNames returns every schema-declared collection name, used
	// to compute the complement set for the misplaced-document search.
	CollectionNames() []string
	// TypeURIForClassName translates a class name to the type tag its
	// instances carry, used by the reverse-reference lookup.
	TypeURIForClassName(className string) (string, bool)
}

// Observer receives scan progress callbacks. Implementations render progress
// bars or console warnings; the scanner itself never prints.
type Observer interface {
	// CollectionMissing reports a schema-declared collection absent from
	// the store. The collection is skipped, not an error.
	CollectionMissing(collectionName string)
	// CollectionSkipped reports a collection excluded by the caller.
	CollectionSkipped(collectionName string)
	// CollectionStarted reports that scanning of a collection began, with
	// the number of reference-bearing documents it holds.
	CollectionStarted(collectionName string, totalDocuments int64)
	// DocumentProcessed reports progress after each document.
	DocumentProcessed(collectionName string, documentsProcessed int64, violationsSoFar int)
	// CollectionFinished reports that a collection's scan completed.
	CollectionFinished(collectionName string, violations int)
}

// NopObserver ignores every callback.
type NopObserver struct{}

func (NopObserver) CollectionMissing(string)             {}
func (NopObserver) CollectionSkipped(string)             {}
func (NopObserver) CollectionStarted(string, int64)      {}
func (NopObserver) DocumentProcessed(string, int64, int) {}
func (NopObserver) CollectionFinished(string, int)       {}

// Options controls one scan run.
type Options struct {
	// SkipCollections names source collections to exclude from the scan.
	SkipCollections []string
	// LocateMisplacedDocuments re-runs failed resolutions against the
	// schema-disallowed collections, to distinguish "missing entirely"
	// from "exists in the wrong collection".
	LocateMisplacedDocuments bool
	// Observer receives progress callbacks; nil means none.
	Observer Observer
}

// Result holds the violations found by one scan, per source collection.
type Result struct {
	ViolationsByCollection map[string][]catalog.Violation
}

// AllViolations merges the per-collection lists into one, ordered by
// lowercase collection name.
func (r *Result) AllViolations() []catalog.Violation {
	names := make([]string, 0, len(r.ViolationsByCollection))
	for name := range r.ViolationsByCollection {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	var all []catalog.Violation
	for _, name := range names {
		all = append(all, r.ViolationsByCollection[name]...)
	}
	return all
}

// TotalViolations returns the grand-total violation count.
func (r *Result) TotalViolations() int {
	total := 0
	for _, violations := range r.ViolationsByCollection {
		total += len(violations)
	}
	return total
}

// Scanner orchestrates a violation scan. Scanning is single-threaded: one
// document, one field, one target identifier at a time. Throughput comes
// from query projection and the finder's caches, not concurrency.
type Scanner struct {
	store    store.Store
	resolver SchemaResolver
	catalog  *catalog.Catalog
	finder   *finder.Finder
}

// New returns a scanner over the store, with a fresh finder bound to it.
func New(s store.Store, resolver SchemaResolver, cat *catalog.Catalog) *Scanner {
	return &Scanner{
		store:    s,
		resolver: resolver,
		catalog:  cat,
		finder:   finder.New(s),
	}
}

// Scan checks every reference-bearing document of every source collection
// present in both the catalog and the store. Store errors and documents
// whose type tag maps to no schema class abort the scan; unresolvable
// references are the expected outcome and become Violations.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Result, error) {
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	storeCollections, err := s.store.CollectionNames(ctx)
	if err != nil {
		return nil, err
	}
	inStore := make(map[string]struct{}, len(storeCollections))
	for _, name := range storeCollections {
		inStore[name] = struct{}{}
	}

	fieldNamesByClass := s.catalog.ReferenceFieldNamesByClass()
	result := &Result{ViolationsByCollection: make(map[string][]catalog.Violation)}

	for _, collectionName := range s.catalog.SourceCollectionNames() {
		if _, ok := inStore[collectionName]; !ok {
			observer.CollectionMissing(collectionName)
			continue
		}
		if slices.Contains(opts.SkipCollections, collectionName) {
			observer.CollectionSkipped(collectionName)
			continue
		}
		violations, err := s.scanCollection(ctx, collectionName, fieldNamesByClass, opts, observer)
		if err != nil {
			return nil, err
		}
		result.ViolationsByCollection[collectionName] = violations
	}
	return result, nil
}

func (s *Scanner) scanCollection(
	ctx context.Context,
	collectionName string,
	fieldNamesByClass map[string][]string,
	opts Options,
	observer Observer,
) ([]catalog.Violation, error) {
	fieldNames := s.catalog.SourceFieldNames(collectionName)

	// Project only the reference-bearing fields, plus the id and type
	// metadata needed for reporting and class derivation.
	projection := slices.Clone(fieldNames)
	if !slices.Contains(projection, "id") {
		projection = append(projection, "id")
	}
	if !slices.Contains(projection, "type") {
		projection = append(projection, "type")
	}

	total, err := s.store.CountDocumentsHavingFields(ctx, collectionName, fieldNames)
	if err != nil {
		return nil, err
	}
	observer.CollectionStarted(collectionName, total)

	cursor, err := s.store.FindDocumentsHavingFields(ctx, collectionName, fieldNames, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	violations := []catalog.Violation{}
	var processed int64
	for cursor.Next(ctx) {
		document, err := cursor.Document()
		if err != nil {
			return nil, err
		}
		docViolations, err := s.scanDocument(ctx, collectionName, document, fieldNamesByClass, opts)
		if err != nil {
			return nil, err
		}
		violations = append(violations, docViolations...)
		processed++
		observer.DocumentProcessed(collectionName, processed, len(violations))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	observer.CollectionFinished(collectionName, len(violations))
	return violations, nil
}

func (s *Scanner) scanDocument(
	ctx context.Context,
	collectionName string,
	document store.Document,
	fieldNamesByClass map[string][]string,
	opts Options,
) ([]catalog.Violation, error) {
	objectID := store.FormatStorageID(document["_id"])
	documentID, _ := document["id"].(string) // some documents carry no business identifier

	// Without a schema class the class-to-field mapping cannot be
	// determined; silently skipping could hide systemic corruption.
	className, ok := s.resolver.ClassNameForDocument(document)
	if !ok {
		return nil, fmt.Errorf(
			"document %q in collection %q has a type tag that maps to no schema class",
			objectID, collectionName)
	}

	var violations []catalog.Violation
	for _, fieldName := range fieldNamesByClass[className] {
		value, present := document[fieldName]
		if !present {
			continue
		}
		targetCollections := s.catalog.TargetCollectionNames(className, fieldName)
		for _, targetID := range normalizeTargetIDs(value) {
			foundIn, err := s.finder.Resolve(ctx, targetID, targetCollections)
			if err != nil {
				return nil, err
			}
			if foundIn != "" {
				continue
			}
			misplacedIn := ""
			if opts.LocateMisplacedDocuments {
				complement := complementOf(s.resolver.CollectionNames(), targetCollections)
				misplacedIn, err = s.finder.Resolve(ctx, targetID, complement)
				if err != nil {
					return nil, err
				}
			}
			violations = append(violations, catalog.Violation{
				SourceCollectionName:             collectionName,
				SourceClassName:                  className,
				SourceFieldName:                  fieldName,
				SourceDocumentObjectID:           objectID,
				SourceDocumentID:                 documentID,
				TargetID:                         targetID,
				NameOfCollectionContainingTarget: misplacedIn,
			})
		}
	}
	return violations, nil
}

// normalizeTargetIDs turns a reference field's value into identifiers. A
// field may hold a single identifier or a list of them.
func normalizeTargetIDs(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			} else {
				ids = append(ids, fmt.Sprintf("%v", item))
			}
		}
		return ids
	case []string:
		return slices.Clone(v)
	case nil:
		return nil
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

// complementOf returns the collections the schema declares but that are not
// in the permitted set, preserving declaration order.
func complementOf(allCollections, permitted []string) []string {
	var complement []string
	for _, name := range allCollections {
		if !slices.Contains(permitted, name) {
			complement = append(complement, name)
		}
	}
	return complement
}
