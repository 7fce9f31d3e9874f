package domain

import "time"

type Role string

const (
	RoleLearner Role = "learner"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleLearner, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Role           Role      `json:"role"`
	Credits        int       `json:"credits"`
	PendingCredits int       `json:"pending_credits"`
	Skills         []Skill   `json:"skills,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CreditSnapshot is the per-user balance view returned alongside
// booking and enrollment responses.
type CreditSnapshot struct {
	Available int `json:"available"`
	Pending   int `json:"pending"`
}

func (u User) CreditBalance() CreditSnapshot {
	return CreditSnapshot{Available: u.Credits, Pending: u.PendingCredits}
}

// UserStats summarizes a user's credits and owned skills.
type UserStats struct {
	Credits       int            `json:"credits"`
	TotalSkills   int            `json:"total_skills"`
	SkillsByLevel map[string]int `json:"skills_by_level"`
}

// CreditAuditEntry is one row of the reconciliation report: a user whose
// pending balance does not match their outstanding holds.
type CreditAuditEntry struct {
	UserID         uint
	PendingCredits int
	OpenHolds      int
}
