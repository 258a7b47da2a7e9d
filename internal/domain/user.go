package domain

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type User struct {
	ID    string `json:"id"`
	Names string `json:"names"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role,omitempty"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupDTO struct {
	Names    string `json:"names" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// AuthResponseDTO là envelope backend trả về sau khi login thành công.
type AuthResponseDTO struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// QueryDTO là toàn bộ view state mà một bảng gửi lên cho mỗi lần query:
// search text, equality filter, cột sort, chiều sort và trang. Không có state ẩn nào
// khác tham gia vào pipeline.
type QueryDTO struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	SortBy   string `form:"sortBy"`
	Order    string `form:"order"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`
}
