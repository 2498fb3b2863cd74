package listing

import "testing"

func TestNewPagination_NextPresentWhenMoreRows(t *testing.T) {
	p := NewPagination(1, 2, 5)

	if p.Next == nil {
		t.Fatal("expected next cursor")
	}
	if p.Next.Page != 2 || p.Next.Limit != 2 {
		t.Fatalf("expected next {2 2}, got {%d %d}", p.Next.Page, p.Next.Limit)
	}
	if p.Prev != nil {
		t.Fatalf("expected no prev cursor on first page, got %+v", p.Prev)
	}
}

func TestNewPagination_PrevPresentPastFirstPage(t *testing.T) {
	p := NewPagination(3, 2, 5)

	if p.Prev == nil {
		t.Fatal("expected prev cursor")
	}
	if p.Prev.Page != 2 || p.Prev.Limit != 2 {
		t.Fatalf("expected prev {2 2}, got {%d %d}", p.Prev.Page, p.Prev.Limit)
	}
	if p.Next != nil {
		t.Fatalf("expected no next cursor on last page, got %+v", p.Next)
	}
}

func TestNewPagination_ExactBoundary(t *testing.T) {
	// endIndex == total: the current page consumes the final row, so
	// there is no next page.
	p := NewPagination(2, 5, 10)

	if p.Next != nil {
		t.Fatalf("expected no next when endIndex == total, got %+v", p.Next)
	}
	if p.Prev == nil {
		t.Fatal("expected prev cursor")
	}
}

func TestNewPagination_WindowPastEnd(t *testing.T) {
	// An empty window is not an error; prev still points backwards.
	p := NewPagination(9, 10, 3)

	if p.Next != nil {
		t.Fatalf("expected no next past end of results, got %+v", p.Next)
	}
	if p.Prev == nil || p.Prev.Page != 8 {
		t.Fatalf("expected prev page 8, got %+v", p.Prev)
	}
}

func TestNewPagination_Exhaustive(t *testing.T) {
	// next/prev presence must match the window inequalities for every
	// combination in a small grid.
	for page := 1; page <= 6; page++ {
		for limit := 1; limit <= 5; limit++ {
			for total := 0; total <= 20; total++ {
				p := NewPagination(page, limit, total)

				wantNext := page*limit < total
				wantPrev := (page-1)*limit > 0

				if (p.Next != nil) != wantNext {
					t.Fatalf("page=%d limit=%d total=%d: next presence = %v, want %v",
						page, limit, total, p.Next != nil, wantNext)
				}
				if (p.Prev != nil) != wantPrev {
					t.Fatalf("page=%d limit=%d total=%d: prev presence = %v, want %v",
						page, limit, total, p.Prev != nil, wantPrev)
				}
			}
		}
	}
}
