package listing

import (
	"fmt"
	"net/url"
	"testing"

	"bootcamp_directory_backend/platform/apperr"
)

var testFields = Fields{
	"name":        {Column: "name"},
	"careers":     {Column: "careers", Array: true},
	"averageCost": {Column: "average_cost", Kind: Int},
	"housing":     {Column: "housing", Kind: Bool},
	"createdAt":   {Column: "created_at"},
}

func mustParse(t *testing.T, rawQuery string) *Params {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	params, err := Parse(values, testFields)
	if err != nil {
		t.Fatalf("Parse(%q): %v", rawQuery, err)
	}
	return params
}

func TestParse_Defaults(t *testing.T) {
	params := mustParse(t, "")

	if params.Page != 1 || params.Limit != DefaultLimit {
		t.Fatalf("expected page=1 limit=%d, got page=%d limit=%d", DefaultLimit, params.Page, params.Limit)
	}
	if len(params.Conditions) != 0 {
		t.Fatalf("expected no conditions, got %d", len(params.Conditions))
	}
}

func TestParse_ReservedKeysNeverBecomeFilters(t *testing.T) {
	params := mustParse(t, "select=name&sort=-createdAt&page=2&limit=25&housing=true")

	if len(params.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(params.Conditions))
	}
	if params.Page != 2 || params.Limit != 25 {
		t.Fatalf("expected page=2 limit=25, got page=%d limit=%d", params.Page, params.Limit)
	}
	if len(params.Select) != 1 || params.Select[0] != "name" {
		t.Fatalf("unexpected select list %v", params.Select)
	}
	if len(params.Sort) != 1 || params.Sort[0].Field != "createdAt" || !params.Sort[0].Desc {
		t.Fatalf("unexpected sort list %v", params.Sort)
	}
}

func TestParse_ComparisonOperator(t *testing.T) {
	params := mustParse(t, "averageCost[gte]=5000")

	if len(params.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(params.Conditions))
	}
	cond := params.Conditions[0]
	if got := fmt.Sprintf(cond.Format, 1); got != "average_cost >= $1" {
		t.Fatalf("unexpected condition SQL %q", got)
	}
	if cond.Arg != int64(5000) {
		t.Fatalf("expected int64 arg 5000, got %#v", cond.Arg)
	}
}

func TestParse_InOperatorOnArrayColumn(t *testing.T) {
	params := mustParse(t, "careers[in]=Business,UI/UX")

	cond := params.Conditions[0]
	if got := fmt.Sprintf(cond.Format, 1); got != "careers && $1" {
		t.Fatalf("unexpected condition SQL %q", got)
	}
	list, ok := cond.Arg.([]string)
	if !ok || len(list) != 2 || list[0] != "Business" || list[1] != "UI/UX" {
		t.Fatalf("unexpected in-list %#v", cond.Arg)
	}
}

func TestParse_InOperatorOnScalarColumn(t *testing.T) {
	params := mustParse(t, "averageCost[in]=1000,2000")

	cond := params.Conditions[0]
	if got := fmt.Sprintf(cond.Format, 1); got != "average_cost = ANY($1)" {
		t.Fatalf("unexpected condition SQL %q", got)
	}
	list, ok := cond.Arg.([]int64)
	if !ok || len(list) != 2 || list[0] != 1000 || list[1] != 2000 {
		t.Fatalf("unexpected in-list %#v", cond.Arg)
	}
}

func TestParse_RejectsUnknownField(t *testing.T) {
	values := url.Values{"passwordHash": {"x"}}
	_, err := Parse(values, testFields)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for unknown field, got %v", err)
	}
}

func TestParse_RejectsUnknownOperator(t *testing.T) {
	values := url.Values{"averageCost[regex]": {"1"}}
	_, err := Parse(values, testFields)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for unknown operator, got %v", err)
	}
}

func TestParse_RejectsUnknownSelectField(t *testing.T) {
	values := url.Values{"select": {"name,passwordHash"}}
	_, err := Parse(values, testFields)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for unknown select field, got %v", err)
	}
}

func TestParse_InvalidNumericValue(t *testing.T) {
	values := url.Values{"averageCost[lte]": {"cheap"}}
	_, err := Parse(values, testFields)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for bad numeric value, got %v", err)
	}
}

func TestParse_NonPositiveWindowFallsBack(t *testing.T) {
	params := mustParse(t, "page=-3&limit=0")

	if params.Page != 1 || params.Limit != DefaultLimit {
		t.Fatalf("expected defaults, got page=%d limit=%d", params.Page, params.Limit)
	}
}

func TestParse_LimitCapped(t *testing.T) {
	params := mustParse(t, "limit=100000")

	if params.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got %d", MaxLimit, params.Limit)
	}
}
