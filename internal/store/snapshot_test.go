package store

import (
	"context"
	"testing"
	"time"

	"vehicle_pms/internal/query"
)

func records(ids ...string) []query.Record {
	out := make([]query.Record, len(ids))
	for i, id := range ids {
		out[i] = query.Record{"id": id}
	}
	return out
}

func TestInstallAndFresh(t *testing.T) {
	s := New(nil, 0)
	ctx := context.Background()

	gen := s.Begin(Sessions)
	if !s.Install(ctx, Sessions, gen, records("s1", "s2")) {
		t.Fatal("first install rejected")
	}

	got, ok := s.Fresh(Sessions, time.Minute)
	if !ok || len(got) != 2 {
		t.Fatalf("Fresh: ok=%v len=%d", ok, len(got))
	}
}

func TestSupersededFetchCannotOverwrite(t *testing.T) {
	s := New(nil, 0)
	ctx := context.Background()

	// fetch cũ bắt đầu trước nhưng hoàn thành sau fetch mới
	oldGen := s.Begin(Sessions)
	newGen := s.Begin(Sessions)

	if !s.Install(ctx, Sessions, newGen, records("new")) {
		t.Fatal("newer fetch rejected")
	}
	if s.Install(ctx, Sessions, oldGen, records("stale")) {
		t.Fatal("stale fetch overwrote a newer snapshot")
	}

	got, ok := s.Fresh(Sessions, time.Minute)
	if !ok || got[0]["id"] != "new" {
		t.Fatalf("snapshot corrupted: %v", got)
	}
}

func TestFreshExpires(t *testing.T) {
	s := New(nil, 0)
	ctx := context.Background()
	s.Install(ctx, Slots, s.Begin(Slots), records("a"))

	if _, ok := s.Fresh(Slots, 0); ok {
		t.Fatal("zero ttl must never be fresh")
	}
}

func TestInvalidateDropsSnapshot(t *testing.T) {
	s := New(nil, 0)
	ctx := context.Background()
	s.Install(ctx, Slots, s.Begin(Slots), records("a"))
	s.Install(ctx, Sessions, s.Begin(Sessions), records("b"))

	s.Invalidate(ctx, Slots, Sessions)

	if _, ok := s.Fresh(Slots, time.Minute); ok {
		t.Fatal("slots snapshot survived invalidate")
	}
	if _, ok := s.Fresh(Sessions, time.Minute); ok {
		t.Fatal("sessions snapshot survived invalidate")
	}
}

func TestEvictStale(t *testing.T) {
	s := New(nil, 0)
	ctx := context.Background()
	s.Install(ctx, Slots, s.Begin(Slots), records("a"))

	if n := s.EvictStale(time.Minute); n != 0 {
		t.Fatalf("fresh snapshot evicted: %d", n)
	}
	if n := s.EvictStale(0); n != 1 {
		t.Fatalf("stale snapshot kept: %d", n)
	}
}

func TestRestoreWithoutRedisIsMiss(t *testing.T) {
	s := New(nil, 0)
	if _, ok := s.Restore(context.Background(), Sessions); ok {
		t.Fatal("restore must miss when cache is disabled")
	}
}
