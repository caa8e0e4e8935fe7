package userservice

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Session сессия пользователя из UserService
type Session struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin проверяет роль администратора
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// User профиль жильца из UserService
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	FlatNo        string `json:"flatNo"`
	ContactNumber string `json:"contactNumber"`
	Role          string `json:"role"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Error string `json:"error"`
}
