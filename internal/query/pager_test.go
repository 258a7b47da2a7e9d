package query

import "testing"

func tenRecords() []Record {
	out := make([]Record, 10)
	for i := range out {
		out[i] = Record{"n": float64(i)}
	}
	return out
}

func TestPaginateSlices(t *testing.T) {
	p := Paginate(tenRecords(), 2, 3)
	if p.Total != 10 {
		t.Fatalf("total: got %d want 10", p.Total)
	}
	if len(p.Records) != 3 {
		t.Fatalf("page length: got %d want 3", len(p.Records))
	}
	if p.Records[0]["n"] != float64(3) {
		t.Fatalf("page start: got %v want 3", p.Records[0]["n"])
	}
}

func TestPaginateLastPartialPage(t *testing.T) {
	p := Paginate(tenRecords(), 4, 3)
	if len(p.Records) != 1 || p.Records[0]["n"] != float64(9) {
		t.Fatalf("partial last page: got %v", p.Records)
	}
	if p.Total != 10 {
		t.Fatalf("total must ignore slicing: got %d", p.Total)
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	p := Paginate(tenRecords(), 99, 10)
	if len(p.Records) != 0 {
		t.Fatalf("out-of-range page must be empty, got %d records", len(p.Records))
	}
	if p.Total != 10 {
		t.Fatalf("total must still count the collection: got %d", p.Total)
	}
}

func TestPaginateDefaults(t *testing.T) {
	// page và pageSize không hợp lệ rơi về 1 và DefaultPageSize
	p := Paginate(tenRecords(), 0, 0)
	if len(p.Records) != DefaultPageSize {
		t.Fatalf("defaults: got %d records", len(p.Records))
	}
	if p.Records[0]["n"] != float64(0) {
		t.Fatalf("defaults should start at page 1, got %v", p.Records[0]["n"])
	}
}

func TestPaginateAnyPositivePageSize(t *testing.T) {
	p := Paginate(tenRecords(), 1, 7)
	if len(p.Records) != 7 || p.Total != 10 {
		t.Fatalf("pageSize 7: got %d records total %d", len(p.Records), p.Total)
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	p := Paginate(nil, 1, 10)
	if len(p.Records) != 0 || p.Total != 0 {
		t.Fatalf("empty collection: got %+v", p)
	}
}
