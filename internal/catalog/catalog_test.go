package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog() *Catalog {
	return New([]Reference{
		{
			SourceCollectionName: "companies",
			SourceClassName:      "Company",
			SourceFieldName:      "parent",
			TargetCollectionName: "companies",
			TargetClassName:      "Company",
		},
		{
			SourceCollectionName: "employees",
			SourceClassName:      "Employee",
			SourceFieldName:      "employer",
			TargetCollectionName: "companies",
			TargetClassName:      "Company",
		},
		{
			SourceCollectionName: "companies",
			SourceClassName:      "Company",
			SourceFieldName:      "owner",
			TargetCollectionName: "persons",
			TargetClassName:      "Person",
		},
	})
}

func TestNew_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	ref := Reference{
		SourceCollectionName: "employees",
		SourceClassName:      "Employee",
		SourceFieldName:      "employer",
		TargetCollectionName: "companies",
		TargetClassName:      "Company",
	}
	cat := New([]Reference{ref, ref, ref})
	assert.Equal(t, 1, cat.Len())
}

func TestCatalog_SourceCollectionNames(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog()
	names := cat.SourceCollectionNames()
	assert.Equal(t, []string{"companies", "employees"}, names)
	assert.NotContains(t, names, "persons")
	assert.Equal(t, 2, cat.CountSourceCollections())
}

func TestCatalog_SourceFieldNames(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog()

	tests := map[string]struct {
		collection string
		want       []string
	}{
		"one field":          {collection: "employees", want: []string{"employer"}},
		"two fields":         {collection: "companies", want: []string{"owner", "parent"}},
		"target-only":        {collection: "persons", want: []string{}},
		"unknown collection": {collection: "asteroids", want: []string{}},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.ElementsMatch(t, tt.want, cat.SourceFieldNames(tt.collection))
		})
	}
}

func TestCatalog_TargetCollectionNames(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog()

	got := cat.TargetCollectionNames("Employee", "employer")
	assert.Equal(t, []string{"companies"}, got)

	// Unknown combinations yield an empty set, not an error.
	assert.Empty(t, cat.TargetCollectionNames("Employee", "foo"))
	assert.Empty(t, cat.TargetCollectionNames("Alien", "employer"))
}

func TestCatalog_ReferenceFieldNamesByClass(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog()
	byClass := cat.ReferenceFieldNamesByClass()

	require.Len(t, byClass, 2)
	assert.Equal(t, []string{"employer"}, byClass["Employee"])
	assert.Equal(t, []string{"owner", "parent"}, byClass["Company"])
}

func TestCatalog_ByTargetClass(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog()

	companyRefs := cat.ByTargetClass("Company")
	require.Len(t, companyRefs, 2)
	for _, ref := range companyRefs {
		assert.Equal(t, "Company", ref.TargetClassName)
	}

	personRefs := cat.ByTargetClass("Person")
	require.Len(t, personRefs, 1)
	assert.Equal(t, "Person", personRefs[0].TargetClassName)

	assert.Empty(t, cat.ByTargetClass("NonExistentClass"))
}

func TestCatalog_GroupBySourceCollection(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog()
	grouped := cat.GroupBySourceCollection()

	require.Len(t, grouped, 2)
	assert.Len(t, grouped["companies"], 2)
	assert.Len(t, grouped["employees"], 1)
}

func TestReference_CompareOrdersByLowercaseCollection(t *testing.T) {
	t.Parallel()

	a := Reference{SourceCollectionName: "Alpha_set"}
	b := Reference{SourceCollectionName: "beta_set"}
	assert.Negative(t, compare(a, b))
	assert.Positive(t, compare(b, a))
	assert.Zero(t, compare(a, a))
}
