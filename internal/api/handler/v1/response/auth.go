package response

import "github.com/skillswap/skillswap-api/internal/domain"

type SignupResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}
