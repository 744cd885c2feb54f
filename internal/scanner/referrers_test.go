package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microbiomedata/refscan/internal/store"
	"github.com/microbiomedata/refscan/internal/testutil"
)

func TestIdentifyReferringDocuments(t *testing.T) {
	t.Parallel()

	db := testutil.NewFakeStore().
		WithCollection("company_set",
			store.Document{"_id": "obj-c-1", "id": "c-1", "type": "example:Company", "shareholders": []any{"e-1", "e-2"}},
			store.Document{"_id": "obj-c-2", "id": "c-2", "type": "example:Company", "shareholders": []any{"e-3"}},
		).
		WithCollection("employee_set",
			store.Document{"_id": "obj-e-1", "id": "e-1", "type": "example:Employee", "works_for": "c-1"},
		)

	s := New(db, newCompanyResolver(), newCompanyCatalog())

	// Employee e-1 is referenced by one company; deleting it would break that.
	referrers, err := s.IdentifyReferringDocuments(context.Background(), "e-1", "Employee")
	require.NoError(t, err)
	assert.Equal(t, []ReferringDocument{{
		CollectionName: "company_set",
		Descriptor:     store.Descriptor{StorageID: "obj-c-1", ID: "c-1", Type: "example:Company"},
	}}, referrers)
}

func TestIdentifyReferringDocuments_NoReferrers(t *testing.T) {
	t.Parallel()

	db := testutil.NewFakeStore().
		WithCollection("company_set", store.Document{
			"_id": "obj-c-1", "id": "c-1", "type": "example:Company",
			"shareholders": []any{"e-1"},
		}).
		WithCollection("employee_set")

	s := New(db, newCompanyResolver(), newCompanyCatalog())

	referrers, err := s.IdentifyReferringDocuments(context.Background(), "e-999", "Employee")
	require.NoError(t, err)
	assert.Empty(t, referrers)
}

func TestIdentifyReferringDocuments_UnreferencedClass(t *testing.T) {
	t.Parallel()

	db := testutil.NewFakeStore().WithCollection("company_set")
	s := New(db, newCompanyResolver(), newCompanyCatalog())

	// No catalog reference targets Fruit, so nothing can refer to one.
	referrers, err := s.IdentifyReferringDocuments(context.Background(), "f-1", "Fruit")
	require.NoError(t, err)
	assert.Empty(t, referrers)
}
