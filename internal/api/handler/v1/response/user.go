package response

import "github.com/skillswap/skillswap-api/internal/domain"

type UserResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SkillResponse struct {
	Message string       `json:"message"`
	Skill   domain.Skill `json:"skill"`
}

type SkillListResponse struct {
	Skills []domain.Skill `json:"skills"`
}

type FeedbackResponse struct {
	Message  string          `json:"message"`
	Feedback domain.Feedback `json:"feedback"`
}

type FeedbackListResponse struct {
	Feedbacks []domain.Feedback `json:"feedbacks"`
}
