package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/query"
	"vehicle_pms/internal/upstream"
)

// Client gọi backend parking API qua HTTP. Backend bọc mọi response trong
// envelope {message, data: {<collection>: [...]}}.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("lỗi marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("lỗi tạo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upstream.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, upstream.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, upstream.ErrNotFound
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", upstream.ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: response không decode được: %v", upstream.ErrUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("backend trả về lỗi %d: %s", resp.StatusCode, env.Message)
	}
	return &env, nil
}

func (c *Client) getCollection(ctx context.Context, token, path, key string) ([]query.Record, error) {
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	raw, ok := env.Data[key]
	if !ok || len(raw) == 0 {
		return []query.Record{}, nil
	}
	var records []query.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: collection %q không decode được: %v", upstream.ErrUnavailable, key, err)
	}
	return records, nil
}

func (c *Client) FetchSessions(ctx context.Context, token string) ([]query.Record, error) {
	return c.getCollection(ctx, token, "/parkingSession/all", "parkingSessions")
}

func (c *Client) FetchUserSessions(ctx context.Context, token, userID string) ([]query.Record, error) {
	return c.getCollection(ctx, token, "/parkingSession/getUserSessions/"+userID, "parkingSessions")
}

func (c *Client) FetchPayments(ctx context.Context, token string) ([]query.Record, error) {
	return c.getCollection(ctx, token, "/payment/all", "payments")
}

func (c *Client) FetchSlots(ctx context.Context, token string) ([]query.Record, error) {
	return c.getCollection(ctx, token, "/slot/all", "slots")
}

func (c *Client) FetchVehicles(ctx context.Context, token string) ([]query.Record, error) {
	return c.getCollection(ctx, token, "/vehicle/all", "vehicles")
}

func (c *Client) CreateSession(ctx context.Context, token string, dto domain.CreateParkingSessionDTO) error {
	_, err := c.do(ctx, http.MethodPost, "/parkingSession/create", token, dto)
	return err
}

func (c *Client) ExitSession(ctx context.Context, token, plateNumber string) error {
	_, err := c.do(ctx, http.MethodPut, "/parkingSession/exit/"+plateNumber, token, nil)
	return err
}

func (c *Client) CreateSlot(ctx context.Context, token string, dto domain.CreateSlotDTO) error {
	_, err := c.do(ctx, http.MethodPost, "/slot/register", token, dto)
	return err
}

func (c *Client) Login(ctx context.Context, dto domain.LoginDTO) (*domain.AuthResponseDTO, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", "", dto)
	if err != nil {
		return nil, err
	}

	var out domain.AuthResponseDTO
	if raw, ok := env.Data["token"]; ok {
		if err := json.Unmarshal(raw, &out.Token); err != nil {
			return nil, fmt.Errorf("token không decode được: %w", err)
		}
	}
	if raw, ok := env.Data["user"]; ok {
		if err := json.Unmarshal(raw, &out.User); err != nil {
			return nil, fmt.Errorf("user không decode được: %w", err)
		}
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: response login thiếu token", upstream.ErrUnavailable)
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, dto domain.SignupDTO) (*domain.User, error) {
	// backend yêu cầu role đi kèm, dashboard chỉ đăng ký role USER
	body := struct {
		domain.SignupDTO
		Role domain.Role `json:"role"`
	}{SignupDTO: dto, Role: domain.RoleUser}

	env, err := c.do(ctx, http.MethodPost, "/auth/register", "", body)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	if raw, ok := env.Data["user"]; ok {
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("user không decode được: %w", err)
		}
	}
	return user, nil
}
