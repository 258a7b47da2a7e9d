package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/upstream"
)

var ErrInvalidCredentials = errors.New("email hoặc mật khẩu không đúng")
var ErrTokenInvalid = errors.New("token không hợp lệ hoặc đã hết hạn")

// AuthService chuyển tiếp login/signup lên backend (backend mới là nơi giữ
// user và hash mật khẩu) và verify cục bộ các JWT backend đã phát hành
// bằng secret dùng chung.
type AuthService struct {
	api       upstream.Authenticator
	jwtSecret string
}

func NewAuthService(api upstream.Authenticator, jwtSecret string) *AuthService {
	return &AuthService{api: api, jwtSecret: jwtSecret}
}

func (s *AuthService) Login(ctx context.Context, dto domain.LoginDTO) (*domain.AuthResponseDTO, error) {
	res, err := s.api.Login(ctx, dto)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) || errors.Is(err, upstream.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lỗi khi đăng nhập: %w", err)
	}
	return res, nil
}

func (s *AuthService) Signup(ctx context.Context, dto domain.SignupDTO) (*domain.User, error) {
	user, err := s.api.Signup(ctx, dto)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi đăng ký: %w", err)
	}
	return user, nil
}

// ValidateToken dùng cho middleware.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không mong muốn: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fmt.Errorf("%w: token có định dạng sai", ErrTokenInvalid)
		} else if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token đã hết hạn", ErrTokenInvalid)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
