package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrClassFull       = errors.New("class is full")
	ErrAlreadyEnrolled = errors.New("already enrolled in class")
	ErrOwnClass        = errors.New("cannot join own class")
	ErrClassCompleted  = errors.New("class already completed")
)

type Class struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string

	SkillID uint `gorm:"not null"`
	Skill   Skill

	InstructorID   uint   `gorm:"not null;index"`
	Instructor     User   `gorm:"foreignKey:InstructorID"`
	InstructorName string `gorm:"not null"` // denormalized for listings

	Date        time.Time `gorm:"not null"`
	MaxStudents int       `gorm:"not null"`

	Students []User `gorm:"many2many:class_students;"`

	Completed bool    `gorm:"not null;default:false"`
	Rating    float64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ClassDAO struct {
	db *gorm.DB
}

func NewClassDAO(db *gorm.DB) *ClassDAO {
	return &ClassDAO{
		db: db,
	}
}

func (d *ClassDAO) Insert(ctx context.Context, class Class) (Class, error) {
	result := d.db.WithContext(ctx).Create(&class)
	if result.Error != nil {
		return Class{}, result.Error
	}

	return class, nil
}

func (d *ClassDAO) FindByID(ctx context.Context, id uint) (Class, error) {
	var class Class

	result := d.db.WithContext(ctx).
		Preload("Skill").
		Preload("Students").
		First(&class, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Class{}, ErrClassNotFound
		}

		return Class{}, result.Error
	}

	return class, nil
}

func (d *ClassDAO) FindAll(ctx context.Context) ([]Class, error) {
	var classes []Class

	err := d.db.WithContext(ctx).
		Preload("Skill").
		Order("date ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (d *ClassDAO) FindByInstructorID(ctx context.Context, instructorID uint) ([]Class, error) {
	var classes []Class

	err := d.db.WithContext(ctx).
		Preload("Skill").
		Preload("Students").
		Where("instructor_id = ?", instructorID).
		Order("date ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (d *ClassDAO) FindByStudentID(ctx context.Context, studentID uint) ([]Class, error) {
	var classes []Class

	err := d.db.WithContext(ctx).
		Preload("Skill").
		Joins("JOIN class_students cs ON cs.class_id = classes.id").
		Where("cs.user_id = ?", studentID).
		Order("date ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (d *ClassDAO) Update(ctx context.Context, class Class) (Class, error) {
	result := d.db.WithContext(ctx).Omit("Students", "Skill", "Instructor").Save(&class)
	if result.Error != nil {
		return Class{}, result.Error
	}

	return class, nil
}

func (d *ClassDAO) Delete(ctx context.Context, id, instructorID uint) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND instructor_id = ?", id, instructorID).
		Delete(&Class{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

// AddStudentWithHold enrolls the user and moves one credit into pending in a
// single transaction. The class row is locked so capacity checks cannot race
// with a concurrent join.
func (d *ClassDAO) AddStudentWithHold(ctx context.Context, classID, userID uint, cost int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var class Class
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&class, classID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		if class.InstructorID == userID {
			return ErrOwnClass
		}

		var enrolled int64
		err = tx.Table("class_students").
			Where("class_id = ? AND user_id = ?", classID, userID).
			Count(&enrolled).Error
		if err != nil {
			return err
		}
		if enrolled > 0 {
			return ErrAlreadyEnrolled
		}

		var roster int64
		err = tx.Table("class_students").Where("class_id = ?", classID).Count(&roster).Error
		if err != nil {
			return err
		}
		if roster >= int64(class.MaxStudents) {
			return ErrClassFull
		}

		result := tx.Model(&User{}).
			Where("id = ? AND credits >= ?", userID, cost).
			Updates(map[string]any{
				"credits":         gorm.Expr("credits - ?", cost),
				"pending_credits": gorm.Expr("pending_credits + ?", cost),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientCredits
		}

		return tx.Exec("INSERT INTO class_students (class_id, user_id) VALUES (?, ?)", classID, userID).Error
	})
}

// AddStudentIfAbsent appends the user to the roster without touching
// credits. Used when a teacher accepts a booking linked to a class; the
// booking already holds the learner's credit.
func (d *ClassDAO) AddStudentIfAbsent(ctx context.Context, classID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var class Class
		err := tx.First(&class, classID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		var enrolled int64
		err = tx.Table("class_students").
			Where("class_id = ? AND user_id = ?", classID, userID).
			Count(&enrolled).Error
		if err != nil {
			return err
		}
		if enrolled > 0 {
			return nil
		}

		return tx.Exec("INSERT INTO class_students (class_id, user_id) VALUES (?, ?)", classID, userID).Error
	})
}

// CompleteWithTransfer marks the class completed and settles the ledger in
// one transaction: every enrolled student with a positive pending balance
// pays one pending credit, and the instructor gains one credit per payer.
// Students whose pending balance already reached zero are skipped, matching
// the historical per-student behavior, but the batch is all-or-nothing.
func (d *ClassDAO) CompleteWithTransfer(ctx context.Context, classID, instructorID uint) (int, error) {
	var earned int

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var class Class
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&class, classID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		if class.Completed {
			return ErrClassCompleted
		}

		result := tx.Model(&User{}).
			Where("id IN (SELECT user_id FROM class_students WHERE class_id = ?) AND pending_credits > 0", classID).
			Update("pending_credits", gorm.Expr("pending_credits - 1"))
		if result.Error != nil {
			return result.Error
		}
		earned = int(result.RowsAffected)

		if earned > 0 {
			err = tx.Model(&User{}).
				Where("id = ?", instructorID).
				Update("credits", gorm.Expr("credits + ?", earned)).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&Class{}).Where("id = ?", classID).Update("completed", true).Error
	})
	if err != nil {
		return 0, err
	}

	return earned, nil
}

func (d *ClassDAO) Roster(ctx context.Context, classID uint) ([]User, error) {
	var class Class

	result := d.db.WithContext(ctx).Preload("Students").First(&class, classID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}

		return nil, result.Error
	}

	return class.Students, nil
}
