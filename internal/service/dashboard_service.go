package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/query"
	"vehicle_pms/internal/store"
	"vehicle_pms/internal/upstream"
)

var ErrRecordNotFound = errors.New("không tìm thấy bản ghi trong snapshot hiện tại")

// Mỗi bảng trên dashboard search và filter trên đúng các field này.
var (
	SessionSchema = query.Schema{
		SearchPaths: []string{"vehicle.plateNumber"},
		StatusPath:  "status",
	}
	PaymentSchema = query.Schema{
		SearchPaths: []string{"id", "sessionId", "session.vehicle.plateNumber"},
		StatusPath:  "status",
	}
	SlotSchema = query.Schema{
		SearchPaths: []string{"slotNumber", "vehicle.plateNumber"},
		StatusPath:  "slotStatus",
	}
	VehicleSchema = query.Schema{
		SearchPaths: []string{"plateNumber", "model"},
		StatusPath:  "vehicleType",
	}
)

// Notifier báo cho các client đang mở dashboard biết collection nào vừa
// stale để họ refetch (thay cho kiểu reload cả trang).
type Notifier interface {
	NotifyRefresh(collections ...string)
}

// DashboardService ghép data source + snapshot store + query engine thành
// các thao tác mà handler gọi trực tiếp.
type DashboardService struct {
	api      upstream.Client
	store    *store.Store
	ttl      time.Duration
	notifier Notifier
}

func NewDashboardService(api upstream.Client, st *store.Store, snapshotTTL time.Duration, notifier Notifier) *DashboardService {
	return &DashboardService{api: api, store: st, ttl: snapshotTTL, notifier: notifier}
}

// Sessions chạy pipeline trên snapshot session hiện tại.
func (s *DashboardService) Sessions(ctx context.Context, token string, st query.State) (query.Page, error) {
	records, err := s.collection(ctx, token, store.Sessions)
	if err != nil {
		return query.Page{Records: []query.Record{}}, err
	}
	return query.Run(records, st, SessionSchema), nil
}

// UserSessions là view riêng của từng user, không đi qua snapshot store
// (collection phụ thuộc user nên cache chung không dùng được).
func (s *DashboardService) UserSessions(ctx context.Context, token, userID string, st query.State) (query.Page, error) {
	raw, err := s.api.FetchUserSessions(ctx, token, userID)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return query.Page{Records: []query.Record{}}, err
		}
		log.Printf("Không fetch được session của user %s: %v", userID, err)
		return query.Run(nil, st, SessionSchema), nil
	}
	return query.Run(query.NormalizeAll(raw), st, SessionSchema), nil
}

func (s *DashboardService) Payments(ctx context.Context, token string, st query.State) (query.Page, error) {
	records, err := s.collection(ctx, token, store.Payments)
	if err != nil {
		return query.Page{Records: []query.Record{}}, err
	}
	return query.Run(records, st, PaymentSchema), nil
}

func (s *DashboardService) Slots(ctx context.Context, token string, st query.State) (query.Page, error) {
	records, err := s.collection(ctx, token, store.Slots)
	if err != nil {
		return query.Page{Records: []query.Record{}}, err
	}
	return query.Run(records, st, SlotSchema), nil
}

func (s *DashboardService) Vehicles(ctx context.Context, token string, st query.State) (query.Page, error) {
	records, err := s.collection(ctx, token, store.Vehicles)
	if err != nil {
		return query.Page{Records: []query.Record{}}, err
	}
	return query.Run(records, st, VehicleSchema), nil
}

// SessionDetail là payload cho modal chi tiết, kèm duration đã tính sẵn.
type SessionDetail struct {
	domain.ParkingSession
	Duration string `json:"duration"`
}

func (s *DashboardService) SessionByID(ctx context.Context, token, id string) (*SessionDetail, error) {
	rec, err := s.findByID(ctx, token, store.Sessions, id)
	if err != nil {
		return nil, err
	}
	var session domain.ParkingSession
	if err := decodeRecord(rec, &session); err != nil {
		return nil, err
	}
	return &SessionDetail{ParkingSession: session, Duration: session.Duration(time.Now())}, nil
}

func (s *DashboardService) PaymentByID(ctx context.Context, token, id string) (*domain.Payment, error) {
	rec, err := s.findByID(ctx, token, store.Payments, id)
	if err != nil {
		return nil, err
	}
	var payment domain.Payment
	if err := decodeRecord(rec, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *DashboardService) SlotByID(ctx context.Context, token, id string) (*domain.ParkingSlot, error) {
	rec, err := s.findByID(ctx, token, store.Slots, id)
	if err != nil {
		return nil, err
	}
	var slot domain.ParkingSlot
	if err := decodeRecord(rec, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// SlotSummary đếm slot trống / đang dùng cho các card trên dashboard.
func (s *DashboardService) SlotSummary(ctx context.Context, token string) (domain.SlotSummary, error) {
	records, err := s.collection(ctx, token, store.Slots)
	if err != nil {
		return domain.SlotSummary{}, err
	}

	summary := domain.SlotSummary{Total: len(records)}
	for _, rec := range records {
		switch v := query.Resolve(rec, "slotStatus"); v.Str {
		case string(domain.SlotAvailable):
			summary.Available++
		case string(domain.SlotOccupied):
			summary.Occupied++
		}
	}
	return summary, nil
}

// CreateSession yêu cầu backend mở phiên đỗ xe mới. Thành công nghĩa là
// snapshot sessions và slots đã stale.
func (s *DashboardService) CreateSession(ctx context.Context, token string, dto domain.CreateParkingSessionDTO) error {
	if err := s.api.CreateSession(ctx, token, dto); err != nil {
		return err
	}
	s.invalidate(ctx, store.Sessions, store.Slots)
	return nil
}

// ExitSession kết thúc phiên theo biển số. Backend tạo payment khi xe ra
// nên payments cũng stale.
func (s *DashboardService) ExitSession(ctx context.Context, token, plateNumber string) error {
	if err := s.api.ExitSession(ctx, token, plateNumber); err != nil {
		return err
	}
	s.invalidate(ctx, store.Sessions, store.Slots, store.Payments)
	return nil
}

func (s *DashboardService) CreateSlot(ctx context.Context, token string, dto domain.CreateSlotDTO) error {
	if err := s.api.CreateSlot(ctx, token, dto); err != nil {
		return err
	}
	s.invalidate(ctx, store.Slots)
	return nil
}

// collection trả về snapshot còn hạn, nếu không thì fetch mới. Fetch thất
// bại không làm sập pipeline: thử last-good cache, cuối cùng là collection
// rỗng. Chỉ lỗi token là propagate để handler trả 401.
func (s *DashboardService) collection(ctx context.Context, token string, key store.EntityKey) ([]query.Record, error) {
	if records, ok := s.store.Fresh(key, s.ttl); ok {
		return records, nil
	}

	gen := s.store.Begin(key)
	raw, err := s.fetch(ctx, token, key)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return nil, err
		}
		log.Printf("Không fetch được collection %s: %v", key, err)
		if cached, ok := s.store.Restore(ctx, key); ok {
			log.Printf("Dùng last-good cache cho %s (%d records)", key, len(cached))
			return cached, nil
		}
		return nil, nil
	}

	records := query.NormalizeAll(raw)
	if records == nil {
		records = []query.Record{}
	}
	if !s.store.Install(ctx, key, gen, records) {
		// một fetch muộn hơn đã install rồi, dùng luôn kết quả của mình
		// cho request này là đủ
		log.Printf("Fetch %s gen %d bị vượt mặt, không ghi đè snapshot", key, gen)
	}
	return records, nil
}

func (s *DashboardService) fetch(ctx context.Context, token string, key store.EntityKey) ([]query.Record, error) {
	switch key {
	case store.Sessions:
		return s.api.FetchSessions(ctx, token)
	case store.Payments:
		return s.api.FetchPayments(ctx, token)
	case store.Slots:
		return s.api.FetchSlots(ctx, token)
	case store.Vehicles:
		return s.api.FetchVehicles(ctx, token)
	default:
		return nil, fmt.Errorf("entity không hỗ trợ: %s", key)
	}
}

func (s *DashboardService) findByID(ctx context.Context, token string, key store.EntityKey, id string) (query.Record, error) {
	records, err := s.collection(ctx, token, key)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if v := query.Resolve(rec, "id"); v.Kind == query.KindString && v.Str == id {
			return rec, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (s *DashboardService) invalidate(ctx context.Context, keys ...store.EntityKey) {
	s.store.Invalidate(ctx, keys...)
	if s.notifier == nil {
		return
	}
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = string(key)
	}
	s.notifier.NotifyRefresh(names...)
}

// decodeRecord chuyển raw record sang struct typed cho detail view.
// Đi vòng qua JSON để null.Time / null.Float tự xử lý các field nullable.
func decodeRecord(rec query.Record, out any) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("lỗi marshal record: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("lỗi decode record: %w", err)
	}
	return nil
}
