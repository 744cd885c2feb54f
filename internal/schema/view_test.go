package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companySchemaYAML = `
name: company-schema
id: https://example.org/company-schema
version: 1.2.3
default_prefix: example
classes:
  Database:
    slots:
      - employee_set
      - company_set
      - produce_set
      - db_version
  NamedThing:
    abstract: true
    slots:
      - id
      - type
  Employee:
    class_uri: example:Employee
    is_a: NamedThing
    slots:
      - works_for
  Company:
    class_uri: example:Company
    is_a: NamedThing
    slots:
      - shareholders
      - favorite_foods
  Startup:
    class_uri: example:Startup
    is_a: Company
  Food:
    is_a: NamedThing
  Fruit:
    is_a: Food
  Veggie:
    is_a: Food
  Carrot:
    is_a: Veggie
slots:
  employee_set:
    range: Employee
    multivalued: true
    inlined_as_list: true
  company_set:
    range: Company
    multivalued: true
    inlined_as_list: true
  produce_set:
    range: Food
    multivalued: true
    inlined_as_list: true
  db_version:
    range: string
  id:
    range: string
  type:
    range: uriorcurie
  works_for:
    range: Company
  shareholders:
    range: Employee
    multivalued: true
  favorite_foods:
    multivalued: true
    any_of:
      - range: Fruit
      - range: Veggie
`

func newTestView(t *testing.T) *View {
	t.Helper()
	def, err := Parse([]byte(companySchemaYAML))
	require.NoError(t, err)
	view, err := NewView(def)
	require.NoError(t, err)
	return view
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("classes: [not, a, map]"))
	assert.Error(t, err)
}

func TestParse_NoClasses(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("name: empty"))
	assert.ErrorContains(t, err, "no classes")
}

func TestNewView_UndefinedParentClass(t *testing.T) {
	t.Parallel()

	def, err := Parse([]byte(`
classes:
  Orphan:
    is_a: Missing
`))
	require.NoError(t, err)
	_, err = NewView(def)
	assert.ErrorContains(t, err, `undefined parent class "Missing"`)
}

func TestView_CollectionNames(t *testing.T) {
	t.Parallel()

	view := newTestView(t)

	// db_version is scalar, so it is not a collection.
	assert.Equal(t, []string{"company_set", "employee_set", "produce_set"}, view.CollectionNames())
}

func TestView_ClassesEligibleForCollection(t *testing.T) {
	t.Parallel()

	view := newTestView(t)

	tests := map[string]struct {
		collection string
		want       []string
		wantErr    bool
	}{
		"single class":            {collection: "employee_set", want: []string{"Employee"}},
		"subclass closure":        {collection: "company_set", want: []string{"Company", "Startup"}},
		"deep subclass closure":   {collection: "produce_set", want: []string{"Food", "Fruit", "Veggie", "Carrot"}},
		"not a collection":        {collection: "nonexistent_set", wantErr: true},
		"scalar database slot ok": {collection: "db_version", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := view.ClassesEligibleForCollection(tt.collection)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestView_ClassSlotNames_IncludesInherited(t *testing.T) {
	t.Parallel()

	view := newTestView(t)

	slots, err := view.ClassSlotNames("Employee")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "type", "works_for"}, slots)

	slots, err = view.ClassSlotNames("Startup")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "type", "shareholders", "favorite_foods"}, slots)

	_, err = view.ClassSlotNames("NoSuchClass")
	assert.Error(t, err)
}

func TestView_EffectiveRangeClassNames(t *testing.T) {
	t.Parallel()

	view := newTestView(t)

	tests := map[string]struct {
		slot string
		want []string
	}{
		"single range with descendants": {slot: "works_for", want: []string{"Company", "Startup"}},
		"any_of union with descendants": {slot: "favorite_foods", want: []string{"Fruit", "Veggie", "Carrot"}},
		"scalar range yields nothing":   {slot: "id", want: nil},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := view.EffectiveRangeClassNames(tt.slot)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestView_EffectiveRangeClassNames_UndefinedClass(t *testing.T) {
	t.Parallel()

	def, err := Parse([]byte(`
classes:
  Thing:
    slots: [points_at]
slots:
  points_at:
    range: Ghost
`))
	require.NoError(t, err)
	view, err := NewView(def)
	require.NoError(t, err)

	_, err = view.EffectiveRangeClassNames("points_at")
	assert.ErrorContains(t, err, `undefined range class "Ghost"`)
}

func TestView_TypeURITranslation(t *testing.T) {
	t.Parallel()

	view := newTestView(t)

	uri, ok := view.TypeURIForClassName("Employee")
	require.True(t, ok)
	assert.Equal(t, "example:Employee", uri)

	// Classes without an explicit class_uri fall back to the default prefix.
	uri, ok = view.TypeURIForClassName("Carrot")
	require.True(t, ok)
	assert.Equal(t, "example:Carrot", uri)

	name, ok := view.ClassNameForTypeURI("example:Startup")
	require.True(t, ok)
	assert.Equal(t, "Startup", name)

	_, ok = view.ClassNameForTypeURI("example:Nothing")
	assert.False(t, ok)
}

func TestView_ClassNameForDocument(t *testing.T) {
	t.Parallel()

	view := newTestView(t)

	tests := map[string]struct {
		document map[string]any
		want     string
		wantOK   bool
	}{
		"known type tag":   {document: map[string]any{"type": "example:Company"}, want: "Company", wantOK: true},
		"unknown type tag": {document: map[string]any{"type": "example:Alien"}, wantOK: false},
		"missing type":     {document: map[string]any{"id": "x"}, wantOK: false},
		"non-string type":  {document: map[string]any{"type": 7}, wantOK: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := view.ClassNameForDocument(tt.document)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestView_IsClassAbstract(t *testing.T) {
	t.Parallel()

	view := newTestView(t)
	assert.True(t, view.IsClassAbstract("NamedThing"))
	assert.False(t, view.IsClassAbstract("Company"))
}
