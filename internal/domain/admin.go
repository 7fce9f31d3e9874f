package domain

// AdminStats is the moderation dashboard aggregate.
type AdminStats struct {
	TotalUsers       int64            `json:"total_users"`
	TotalSkills      int64            `json:"total_skills"`
	TotalLearners    int64            `json:"total_learners"`
	TotalTeachers    int64            `json:"total_teachers"`
	TotalAdmins      int64            `json:"total_admins"`
	RecentUsers      int64            `json:"recent_users"`
	RecentSkills     int64            `json:"recent_skills"`
	SkillsByCategory map[string]int64 `json:"skills_by_category"`
	SkillsByLevel    map[string]int64 `json:"skills_by_level"`
}

// Page wraps a paginated listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalPages int64 `json:"total_pages"`
	Page       int   `json:"current_page"`
	Total      int64 `json:"total"`
}
