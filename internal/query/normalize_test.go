package query

import (
	"testing"
	"time"
)

func TestNormalizeParsesISOStrings(t *testing.T) {
	rec := Normalize(Record{
		"id":        "s1",
		"entryTime": "2025-05-15T08:30:00.000Z",
		"createdAt": "2025-05-15T08:30:00Z",
	})

	entry, ok := rec["entryTime"].(time.Time)
	if !ok {
		t.Fatalf("entryTime not parsed: %T", rec["entryTime"])
	}
	want := time.Date(2025, 5, 15, 8, 30, 0, 0, time.UTC)
	if !entry.Equal(want) {
		t.Fatalf("entryTime instant: got %v want %v", entry, want)
	}
	if _, ok := rec["createdAt"].(time.Time); !ok {
		t.Fatalf("createdAt not parsed: %T", rec["createdAt"])
	}
}

func TestNormalizeMillisTimestamp(t *testing.T) {
	instant := time.Date(2025, 5, 14, 10, 15, 0, 0, time.UTC)
	rec := Normalize(Record{"updatedAt": float64(instant.UnixMilli())})

	got, ok := rec["updatedAt"].(time.Time)
	if !ok || !got.Equal(instant) {
		t.Fatalf("millis timestamp: got %v (%T)", rec["updatedAt"], rec["updatedAt"])
	}
}

func TestNormalizeNullStaysNull(t *testing.T) {
	rec := Normalize(Record{"exitTime": nil, "entryTime": "2025-05-15T08:30:00Z"})
	if rec["exitTime"] != nil {
		t.Fatalf("null exitTime must stay null, got %v", rec["exitTime"])
	}
}

func TestNormalizeMalformedPassesThrough(t *testing.T) {
	rec := Normalize(Record{"entryTime": "not-a-date"})
	if rec["entryTime"] != "not-a-date" {
		t.Fatalf("malformed value must pass through, got %v", rec["entryTime"])
	}
}

func TestNormalizeNestedObjects(t *testing.T) {
	rec := Normalize(Record{
		"id": "p1",
		"session": map[string]any{
			"entryTime": "2025-05-15T08:30:00Z",
			"exitTime":  nil,
			"vehicle": map[string]any{
				"createdAt": "2025-05-10T07:00:00Z",
			},
		},
		"Payment": map[string]any{
			"createdAt": "2025-05-15T09:00:00Z",
		},
	})

	session := rec["session"].(map[string]any)
	if _, ok := session["entryTime"].(time.Time); !ok {
		t.Fatalf("nested session entryTime not parsed: %T", session["entryTime"])
	}
	if session["exitTime"] != nil {
		t.Fatal("nested null exitTime must stay null")
	}
	vehicle := session["vehicle"].(map[string]any)
	if _, ok := vehicle["createdAt"].(time.Time); !ok {
		t.Fatalf("doubly nested createdAt not parsed: %T", vehicle["createdAt"])
	}
	payment := rec["Payment"].(map[string]any)
	if _, ok := payment["createdAt"].(time.Time); !ok {
		t.Fatalf("Payment createdAt not parsed: %T", payment["createdAt"])
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := Record{"entryTime": "2025-05-15T08:30:00Z"}
	_ = Normalize(raw)
	if raw["entryTime"] != "2025-05-15T08:30:00Z" {
		t.Fatalf("input record was mutated: %v", raw["entryTime"])
	}
}

func TestNormalizeRoundTripInstant(t *testing.T) {
	iso := "2025-05-16T09:45:30.500Z"
	rec := Normalize(Record{"entryTime": iso})
	direct, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		t.Fatal(err)
	}
	got := rec["entryTime"].(time.Time)
	if !got.Equal(direct) {
		t.Fatalf("normalized instant %v differs from direct parse %v", got, direct)
	}
}
