package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"vehicle_pms/internal/api"
	"vehicle_pms/internal/api/handler"
	"vehicle_pms/internal/api/middleware"
	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/query"
	"vehicle_pms/internal/service"
	"vehicle_pms/internal/store"
	"vehicle_pms/internal/upstream"
)

const testSecret = "test-secret"

// stubAPI trả dữ liệu wire-shape cố định cho mọi collection.
type stubAPI struct{}

var _ upstream.Client = stubAPI{}

func (stubAPI) FetchSessions(ctx context.Context, token string) ([]query.Record, error) {
	return []query.Record{
		{
			"id": "s1", "status": "ACTIVE",
			"entryTime": "2025-05-15T08:30:00Z", "exitTime": nil,
			"vehicle": map[string]any{"plateNumber": "RAD123"},
		},
		{
			"id": "s2", "status": "COMPLETED",
			"entryTime": "2025-05-14T10:15:00Z", "exitTime": "2025-05-14T14:30:00Z",
			"vehicle": map[string]any{"plateNumber": "KGL789"},
		},
		{
			"id": "s3", "status": "ACTIVE",
			"entryTime": "2025-05-16T09:45:00Z", "exitTime": nil,
			"vehicle": map[string]any{"plateNumber": "RWA456"},
		},
	}, nil
}

func (s stubAPI) FetchUserSessions(ctx context.Context, token, userID string) ([]query.Record, error) {
	return s.FetchSessions(ctx, token)
}

func (stubAPI) FetchPayments(ctx context.Context, token string) ([]query.Record, error) {
	return []query.Record{}, nil
}

func (stubAPI) FetchSlots(ctx context.Context, token string) ([]query.Record, error) {
	return []query.Record{}, nil
}

func (stubAPI) FetchVehicles(ctx context.Context, token string) ([]query.Record, error) {
	return []query.Record{}, nil
}

func (stubAPI) CreateSession(ctx context.Context, token string, dto domain.CreateParkingSessionDTO) error {
	return nil
}

func (stubAPI) ExitSession(ctx context.Context, token, plateNumber string) error { return nil }

func (stubAPI) CreateSlot(ctx context.Context, token string, dto domain.CreateSlotDTO) error {
	return nil
}

func (stubAPI) Login(ctx context.Context, dto domain.LoginDTO) (*domain.AuthResponseDTO, error) {
	return &domain.AuthResponseDTO{Token: "tok"}, nil
}

func (stubAPI) Signup(ctx context.Context, dto domain.SignupDTO) (*domain.User, error) {
	return &domain.User{ID: "u1"}, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(stubAPI{}, testSecret)
	dashboardService := service.NewDashboardService(stubAPI{}, store.New(nil, 0), time.Minute, nil)
	authMw := middleware.NewAuthMiddleware(authService)
	wsManager := handler.NewWebSocketManager()
	return api.SetupRouter(authService, dashboardService, authMw, wsManager)
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type pageBody struct {
	Records      []map[string]any `json:"records"`
	TotalRecords int              `json:"totalRecords"`
	Page         int              `json:"page"`
	PageSize     int              `json:"pageSize"`
}

func TestListSessionsQueryParams(t *testing.T) {
	r := newRouter(t)
	token := signToken(t, "ADMIN")

	w := doRequest(t, r, http.MethodGet,
		"/api/v1/parking-sessions?status=ACTIVE&sortBy=entryTime&order=asc&page=1&pageSize=10", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var body pageBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.TotalRecords != 2 {
		t.Fatalf("totalRecords: %d", body.TotalRecords)
	}
	if body.Records[0]["id"] != "s1" || body.Records[1]["id"] != "s3" {
		t.Fatalf("order: %v %v", body.Records[0]["id"], body.Records[1]["id"])
	}
}

func TestListSessionsDefaultSortIsEntryTimeDesc(t *testing.T) {
	r := newRouter(t)
	token := signToken(t, "ADMIN")

	w := doRequest(t, r, http.MethodGet, "/api/v1/parking-sessions", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var body pageBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.TotalRecords != 3 || body.Records[0]["id"] != "s3" {
		t.Fatalf("default sort: total=%d first=%v", body.TotalRecords, body.Records[0]["id"])
	}
}

func TestListSessionsSearchByPlate(t *testing.T) {
	r := newRouter(t)
	token := signToken(t, "ADMIN")

	w := doRequest(t, r, http.MethodGet, "/api/v1/parking-sessions?search=kgl", token, "")
	var body pageBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.TotalRecords != 1 || body.Records[0]["id"] != "s2" {
		t.Fatalf("search: %+v", body)
	}
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r := newRouter(t)
	w := doRequest(t, r, http.MethodGet, "/api/v1/parking-sessions", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", w.Code)
	}
}

func TestUserRoleCannotListAllSessions(t *testing.T) {
	r := newRouter(t)
	token := signToken(t, "USER")

	w := doRequest(t, r, http.MethodGet, "/api/v1/parking-sessions", token, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d", w.Code)
	}
}

func TestUserRoleCanListOwnSessions(t *testing.T) {
	r := newRouter(t)
	token := signToken(t, "USER")

	w := doRequest(t, r, http.MethodGet, "/api/v1/parking-sessions/user/u1", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateSlotRequiresAdmin(t *testing.T) {
	r := newRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/parking-slots", signToken(t, "USER"), `{"slotNumber":"A-09"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user role: status %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/api/v1/parking-slots", signToken(t, "ADMIN"), `{"slotNumber":"A-09"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin role: status %d: %s", w.Code, w.Body.String())
	}
}

func TestGetSessionDetail(t *testing.T) {
	r := newRouter(t)
	token := signToken(t, "ADMIN")

	w := doRequest(t, r, http.MethodGet, "/api/v1/parking-sessions/s2", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var detail map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail["status"] != "COMPLETED" || detail["duration"] != "4h 15m" {
		t.Fatalf("detail: %v", detail)
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/parking-sessions/nope", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id: status %d", w.Code)
	}
}
