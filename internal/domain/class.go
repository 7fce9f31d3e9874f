package domain

import "time"

type Class struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	SkillID        uint      `json:"skill_id"`
	Skill          *Skill    `json:"skill,omitempty"`
	InstructorID   uint      `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	Date           time.Time `json:"date"`
	MaxStudents    int       `json:"max_students"`
	Students       []User    `json:"students,omitempty"`
	Completed      bool      `json:"completed"`
	Rating         float64   `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c Class) IsEnrolled(userID uint) bool {
	for _, s := range c.Students {
		if s.ID == userID {
			return true
		}
	}
	return false
}

func (c Class) IsFull() bool {
	return len(c.Students) >= c.MaxStudents
}

// ClassCompletionResult reports the batch credit transfer performed when an
// instructor marks a class complete.
type ClassCompletionResult struct {
	CreditsEarned    int `json:"credits_earned"`
	InstructorCredit int `json:"total_credits"`
}
