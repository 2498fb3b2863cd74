// Package listing implements the advanced-results pipeline shared by all
// list endpoints: a query-string translator with per-resource field
// allow-lists, a pagination window, and a single-query result assembler.
package listing

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"bootcamp_directory_backend/platform/apperr"
)

const (
	// DefaultLimit is applied when no limit parameter is present.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 100
)

// reserved parameter names stripped before filter construction.
var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// SortKey is one ORDER BY term.
type SortKey struct {
	Field string
	Desc  bool
}

// Params is the parsed form of a list request's query string.
type Params struct {
	Conditions []Condition
	Select     []string // API field names; empty means all declared fields
	Sort       []SortKey
	Page       int
	Limit      int
}

// Offset returns the number of rows skipped before the requested page.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse validates a raw query string against the resource's field
// allow-list. Reserved keys (select, sort, page, limit) are consumed
// here and never become filter conditions.
func Parse(values url.Values, fields Fields) (*Params, error) {
	params := &Params{
		Page:  intParam(values.Get("page"), 1),
		Limit: intParam(values.Get("limit"), DefaultLimit),
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}

	if raw := values.Get("select"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := fields[name]; !ok {
				return nil, apperr.BadRequest(fmt.Sprintf("cannot select field %q", name))
			}
			params.Select = append(params.Select, name)
		}
	}

	if raw := values.Get("sort"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := SortKey{Field: name}
			if strings.HasPrefix(name, "-") {
				key = SortKey{Field: name[1:], Desc: true}
			}
			if _, ok := fields[key.Field]; !ok {
				return nil, apperr.BadRequest(fmt.Sprintf("cannot sort on field %q", key.Field))
			}
			params.Sort = append(params.Sort, key)
		}
	}

	// Deterministic condition order keeps generated SQL stable for a
	// given query string.
	keys := make([]string, 0, len(values))
	for key := range values {
		name, _ := splitKey(key)
		if reserved[name] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, value := range values[key] {
			cond, err := fields.translate(key, value)
			if err != nil {
				return nil, err
			}
			params.Conditions = append(params.Conditions, cond)
		}
	}

	return params, nil
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
