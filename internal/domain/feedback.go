package domain

import "time"

type Feedback struct {
	ID           uint      `json:"id"`
	ClassID      uint      `json:"class_id"`
	Class        *Class    `json:"class,omitempty"`
	StudentID    uint      `json:"student_id"`
	Student      *User     `json:"student,omitempty"`
	InstructorID uint      `json:"instructor_id"`
	Instructor   *User     `json:"instructor,omitempty"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionHeart ReactionKind = "heart"
	ReactionLaugh ReactionKind = "laugh"
	ReactionWow   ReactionKind = "wow"
)

func (k ReactionKind) IsValid() bool {
	switch k {
	case ReactionLike, ReactionHeart, ReactionLaugh, ReactionWow:
		return true
	}
	return false
}

type Reactions struct {
	Like  int `json:"like"`
	Heart int `json:"heart"`
	Laugh int `json:"laugh"`
	Wow   int `json:"wow"`
}

type ClassPost struct {
	ID        uint      `json:"id"`
	ClassID   uint      `json:"class_id"`
	UserID    uint      `json:"user_id"`
	Author    *User     `json:"author,omitempty"`
	Message   string    `json:"message"`
	Reactions Reactions `json:"reactions"`
	CreatedAt time.Time `json:"created_at"`
}
