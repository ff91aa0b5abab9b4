package dto

import "gearguard/internal/entities"

type SignupDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponseDTO struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

type VerifyResponseDTO struct {
	Valid bool           `json:"valid"`
	User  *entities.User `json:"user"`
}
