package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"vehicle_pms/internal/query"
)

type EntityKey string

const (
	Sessions EntityKey = "sessions"
	Payments EntityKey = "payments"
	Slots    EntityKey = "slots"
	Vehicles EntityKey = "vehicles"
)

type snapshot struct {
	records   []query.Record
	gen       uint64
	fetchedAt time.Time
}

// Store giữ collection đã normalize mới nhất cho từng entity. Mọi snapshot
// là immutable: các stage của pipeline trả về slice mới nên nhiều request
// đọc cùng một snapshot vẫn an toàn.
//
// Generation counter là stale-response guard: fetch nào bắt đầu sau sẽ có
// gen lớn hơn, và Install từ một fetch đã bị vượt mặt sẽ bị từ chối thay vì
// ghi đè dữ liệu mới hơn.
type Store struct {
	mu        sync.RWMutex
	snapshots map[EntityKey]snapshot
	nextGen   uint64

	// last-good cache, nil = tắt
	rdb      *redis.Client
	cacheTTL time.Duration
}

func New(rdb *redis.Client, cacheTTL time.Duration) *Store {
	return &Store{
		snapshots: make(map[EntityKey]snapshot),
		rdb:       rdb,
		cacheTTL:  cacheTTL,
	}
}

// Begin cấp generation cho một fetch sắp chạy. Phải gọi trước khi fetch để
// hai fetch chồng lấn phân định được cái nào mới hơn.
func (s *Store) Begin(key EntityKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Install ghi snapshot nếu chưa có fetch muộn hơn install trước đó.
// Trả về false khi fetch này đã bị vượt mặt; khi đó records bị bỏ qua.
func (s *Store) Install(ctx context.Context, key EntityKey, gen uint64, records []query.Record) bool {
	s.mu.Lock()
	cur, ok := s.snapshots[key]
	if ok && cur.gen >= gen {
		s.mu.Unlock()
		return false
	}
	s.snapshots[key] = snapshot{records: records, gen: gen, fetchedAt: time.Now()}
	s.mu.Unlock()

	s.cachePut(ctx, key, records)
	return true
}

// Fresh trả về snapshot nếu nó còn mới hơn ttl.
func (s *Store) Fresh(key EntityKey, ttl time.Duration) ([]query.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[key]
	if !ok || time.Since(snap.fetchedAt) > ttl {
		return nil, false
	}
	return snap.records, true
}

// Invalidate xóa snapshot (và bản cache) sau một mutating action thành
// công: collection lúc đó chắc chắn đã stale.
func (s *Store) Invalidate(ctx context.Context, keys ...EntityKey) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.snapshots, key)
	}
	s.mu.Unlock()

	if s.rdb == nil {
		return
	}
	for _, key := range keys {
		if err := s.rdb.Del(ctx, cacheKey(key)).Err(); err != nil {
			log.Printf("Không xóa được cache redis cho %s: %v", key, err)
		}
	}
}

// Restore lấy last-good collection từ redis, dùng khi fetch thất bại.
// Records lấy về được normalize lại vì redis lưu dạng JSON.
func (s *Store) Restore(ctx context.Context, key EntityKey) ([]query.Record, bool) {
	if s.rdb == nil {
		return nil, false
	}

	payload, err := s.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var raw []query.Record
	if err := json.Unmarshal(payload, &raw); err != nil {
		log.Printf("Cache redis cho %s không decode được: %v", key, err)
		return nil, false
	}
	return query.NormalizeAll(raw), true
}

// EvictStale bỏ các snapshot đã quá hạn, trả về số lượng đã bỏ.
// Chạy định kỳ từ background job.
func (s *Store) EvictStale(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key, snap := range s.snapshots {
		if time.Since(snap.fetchedAt) > ttl {
			delete(s.snapshots, key)
			count++
		}
	}
	return count
}

func (s *Store) cachePut(ctx context.Context, key EntityKey, records []query.Record) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(records)
	if err != nil {
		log.Printf("Không marshal được snapshot %s cho cache: %v", key, err)
		return
	}
	if err := s.rdb.SetEx(ctx, cacheKey(key), payload, s.cacheTTL).Err(); err != nil {
		log.Printf("Không ghi được cache redis cho %s: %v", key, err)
	}
}

func cacheKey(key EntityKey) string {
	return "pms:lastgood:" + string(key)
}
