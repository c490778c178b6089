package service

import (
	"time"

	"github.com/iliyamo/todo-list-api/internal/model"
)

// UserCreateRequest is the sign-up payload. New registrations always receive
// the base User role; escalation goes through the admin surface only.
type UserCreateRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	UserName    string `json:"user_name" validate:"required,max=50,username_chars"`
	Email       string `json:"email" validate:"required,max=320,email"`
	PhoneNumber string `json:"phone_number" validate:"required,phone_number"`
	Password    string `json:"password" validate:"required,min=8,max=128,has_upper,has_lower,has_digit"`
}

// UserLoginRequest is the login payload.
type UserLoginRequest struct {
	UserName string `json:"user_name" validate:"required,max=50,username_chars"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries the possibly-expired access token together with the
// refresh token to exchange.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LoginResponse is returned by login and refresh. Expires is the access
// token lifetime in hours.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Expires      int    `json:"expires"`
}

// UserUpdateRequest carries a profile update for the calling user.
type UserUpdateRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	UserName    string `json:"user_name" validate:"required,max=50,username_chars"`
	Email       string `json:"email" validate:"required,max=320,email"`
	PhoneNumber string `json:"phone_number" validate:"required,phone_number"`
}

// UserView is the public projection of a user.
type UserView struct {
	UserID      int64  `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

func toUserView(u model.User) UserView {
	return UserView{
		UserID:      u.UserID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
}

// ToDoItemCreateRequest is the create payload for a to-do item. The due date
// must lie more than five minutes ahead.
type ToDoItemCreateRequest struct {
	Title       string    `json:"title" validate:"required,max=100"`
	Description string    `json:"description" validate:"required,max=250"`
	DueDate     time.Time `json:"due_date" validate:"required,future_5m"`
}

// ToDoItemUpdateRequest is the update payload for a to-do item.
type ToDoItemUpdateRequest struct {
	ToDoItemID  int64     `json:"todo_item_id" validate:"required,gt=0"`
	Title       string    `json:"title" validate:"required,max=100"`
	Description string    `json:"description" validate:"required,max=250"`
	IsCompleted bool      `json:"is_completed"`
	DueDate     time.Time `json:"due_date" validate:"required,future_5m"`
}
