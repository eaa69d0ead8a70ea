package request

type RegisterUserRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Username  *string `json:"username,omitempty" validate:"omitempty,max=64"`
}
