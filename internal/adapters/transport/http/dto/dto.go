package dto

type RegisterDTO struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginDTO struct {
	Email      string `json:"email"    validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type CreatePostDTO struct {
	Content string `json:"content" validate:"required,min=1"`
}

type UpdatePostDTO struct {
	Content string `json:"content" validate:"required,min=1"`
}
