package response

import "github.com/skillswap/skillswap-api/internal/domain"

type ClassResponse struct {
	Message string       `json:"message"`
	Class   domain.Class `json:"class"`
}

type ClassListResponse struct {
	Classes []domain.Class `json:"classes"`
}

type ClassCompletionResponse struct {
	Message          string `json:"message"`
	CreditsEarned    int    `json:"credits_earned"`
	InstructorCredit int    `json:"total_credits"`
}

type RosterResponse struct {
	Students []domain.User `json:"students"`
}

type ClassPostResponse struct {
	Message string           `json:"message"`
	Post    domain.ClassPost `json:"post"`
}

type ClassPostListResponse struct {
	Posts []domain.ClassPost `json:"posts"`
}
