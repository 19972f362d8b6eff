package auth

import "github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

type RegisterInput struct {
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=6"`
	FullName  string      `json:"full_name" binding:"required,max=120"`
	Role      models.Role `json:"role" binding:"omitempty,oneof=dealer contractor sub_dealer"`
	District  string      `json:"district" binding:"max=100"`
	City      string      `json:"city" binding:"max=100"`
	Address   string      `json:"address"`
	GSTNumber string      `json:"gst_number" binding:"max=20"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
