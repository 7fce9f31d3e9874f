package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"unique;not null"`
	Password  string `gorm:"not null"`

	Bio            string
	ProfilePicture string

	Role string `gorm:"not null;default:learner"` // "learner", "teacher", or "admin"

	// Credits is the spendable balance; PendingCredits holds credits tied
	// up in open bookings and class enrollments. PendingCredits carries no
	// lower bound on purpose, matching the historical ledger semantics.
	Credits        int `gorm:"not null;default:1"`
	PendingCredits int `gorm:"not null;default:0"`

	Skills []Skill `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByIDWithSkills(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Skills").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Save(&user)
	if result.Error != nil {
		return User{}, result.Error
	}

	return user, nil
}

// UpdateFields applies a partial update to a single user row.
func (d *UserDAO) UpdateFields(ctx context.Context, id uint, fields map[string]any) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *UserDAO) AddCredits(ctx context.Context, id uint, amount int) (User, error) {
	return d.UpdateFields(ctx, id, map[string]any{
		"credits": gorm.Expr("credits + ?", amount),
	})
}

// DeleteWithSkills removes the user together with every skill they own.
func (d *UserDAO) DeleteWithSkills(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&Skill{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

// List returns a page of users, optionally filtered by role and a
// case-insensitive name/email search.
func (d *UserDAO) List(ctx context.Context, offset, limit int, role, search string) ([]User, int64, error) {
	query := d.db.WithContext(ctx).Model(&User{})

	if role != "" {
		query = query.Where("role = ?", role)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := query.Preload("Skills").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (d *UserDAO) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	query := d.db.WithContext(ctx).Model(&User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (d *UserDAO) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&User{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

type CreditAuditRow struct {
	UserID         uint
	PendingCredits int
	OpenHolds      int
}

// CreditAudit lists users whose pending balance disagrees with the sum of
// their open booking holds and uncompleted class enrollments. Read-only:
// drift is reported, never repaired.
func (d *UserDAO) CreditAudit(ctx context.Context) ([]CreditAuditRow, error) {
	var rows []CreditAuditRow

	err := d.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id,
		       u.pending_credits,
		       COALESCE(b.cnt, 0) + COALESCE(e.cnt, 0) AS open_holds
		FROM users u
		LEFT JOIN (
			SELECT learner_id, COUNT(*) AS cnt
			FROM bookings
			WHERE status IN ('pending', 'accepted')
			GROUP BY learner_id
		) b ON b.learner_id = u.id
		LEFT JOIN (
			SELECT cs.user_id, COUNT(*) AS cnt
			FROM class_students cs
			JOIN classes c ON c.id = cs.class_id
			WHERE c.completed = FALSE
			GROUP BY cs.user_id
		) e ON e.user_id = u.id
		WHERE u.pending_credits <> COALESCE(b.cnt, 0) + COALESCE(e.cnt, 0)
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
