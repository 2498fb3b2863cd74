package listing

import (
	"net/url"
	"testing"
)

func TestRenderWhere_NumbersPlaceholders(t *testing.T) {
	conds := []Condition{
		NewCondition("bootcamp_id = $%d", "abc"),
		{Format: "tuition >= $%d", Arg: int64(5000)},
		{Format: "careers && $%d", Arg: []string{"Business"}},
	}

	where, args := renderWhere(conds)

	want := " WHERE bootcamp_id = $1 AND tuition >= $2 AND careers && $3"
	if where != want {
		t.Fatalf("where = %q, want %q", where, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}

func TestRenderWhere_Empty(t *testing.T) {
	where, args := renderWhere(nil)
	if where != "" || args != nil {
		t.Fatalf("expected empty where, got %q with %d args", where, len(args))
	}
}

func TestProjection_SelectedFieldsAliased(t *testing.T) {
	q := Query{Table: "bootcamps", Fields: testFields}

	got := q.projection([]string{"name", "averageCost"})
	want := `name AS "name", average_cost AS "averageCost"`
	if got != want {
		t.Fatalf("projection = %q, want %q", got, want)
	}
}

func TestProjection_DefaultsToAllDeclaredFields(t *testing.T) {
	q := Query{
		Table: "bootcamps",
		Fields: Fields{
			"name":    {Column: "name"},
			"housing": {Column: "housing", Kind: Bool},
		},
	}

	// Field names are sorted for deterministic SQL.
	got := q.projection(nil)
	want := `housing AS "housing", name AS "name"`
	if got != want {
		t.Fatalf("projection = %q, want %q", got, want)
	}
}

func TestProjection_JoinRendersNestedObject(t *testing.T) {
	q := Query{
		Table:  "courses c",
		Fields: Fields{"title": {Column: "c.title"}},
		Join: &Join{
			Clause: "JOIN bootcamps b ON b.id = c.bootcamp_id",
			Name:   "bootcamp",
			Columns: map[string]string{
				"name":        "b.name",
				"description": "b.description",
			},
		},
	}

	got := q.projection([]string{"title"})
	want := `c.title AS "title", json_build_object('description', b.description, 'name', b.name) AS "bootcamp"`
	if got != want {
		t.Fatalf("projection = %q, want %q", got, want)
	}
}

func TestOrderBy_DefaultReverseChronological(t *testing.T) {
	q := Query{Table: "bootcamps", Fields: testFields, DefaultSort: "created_at DESC"}

	if got := q.orderBy(nil); got != "created_at DESC" {
		t.Fatalf("orderBy = %q, want default", got)
	}
}

func TestOrderBy_RequestedKeys(t *testing.T) {
	q := Query{Table: "bootcamps", Fields: testFields, DefaultSort: "created_at DESC"}

	values, _ := url.ParseQuery("sort=-averageCost,name")
	params, err := Parse(values, testFields)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := q.orderBy(params.Sort); got != "average_cost DESC, name ASC" {
		t.Fatalf("orderBy = %q", got)
	}
}
