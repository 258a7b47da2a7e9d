package upstream

import (
	"context"
	"errors"

	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/query"
)

var ErrNotFound = errors.New("không tìm thấy bản ghi trên backend")
var ErrUnauthorized = errors.New("backend từ chối token hoặc thông tin đăng nhập")
var ErrUnavailable = errors.New("không gọi được backend API")

// DataSource là phía đọc của backend parking API. Collection trả về dạng
// raw record để query engine truy cập được các field lồng nhau; token là
// bearer token của chính người dùng, được chuyển tiếp nguyên vẹn.
type DataSource interface {
	FetchSessions(ctx context.Context, token string) ([]query.Record, error)
	FetchUserSessions(ctx context.Context, token, userID string) ([]query.Record, error)
	FetchPayments(ctx context.Context, token string) ([]query.Record, error)
	FetchSlots(ctx context.Context, token string) ([]query.Record, error)
	FetchVehicles(ctx context.Context, token string) ([]query.Record, error)
}

// Actions là các request mutating. Contract duy nhất với caller: sau khi
// một action thành công thì collection hiện tại đã stale và phải refetch,
// không có chuyện patch tại chỗ.
type Actions interface {
	CreateSession(ctx context.Context, token string, dto domain.CreateParkingSessionDTO) error
	ExitSession(ctx context.Context, token, plateNumber string) error
	CreateSlot(ctx context.Context, token string, dto domain.CreateSlotDTO) error
}

type Authenticator interface {
	Login(ctx context.Context, dto domain.LoginDTO) (*domain.AuthResponseDTO, error)
	Signup(ctx context.Context, dto domain.SignupDTO) (*domain.User, error)
}

type Client interface {
	DataSource
	Actions
	Authenticator
}
