package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Bio       string
	Location  string

	// PointsBalance is a materialized view over completed points
	// transactions; it changes only inside the same transaction that
	// appends the ledger row. The totals are reporting-only.
	PointsBalance     int `gorm:"not null;default:0;check:points_balance >= 0"`
	TotalEarnedPoints int `gorm:"not null;default:0"`
	TotalSpentPoints  int `gorm:"not null;default:0"`

	Rating       float64 `gorm:"not null;default:0"`
	TotalReviews int     `gorm:"not null;default:0"`

	PreferredLanguage  string `gorm:"not null;default:en"`
	EmailNotifications bool   `gorm:"not null;default:true"`
	PushNotifications  bool   `gorm:"not null;default:true"`

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

// UpdateRatingStats recomputes the user's aggregate from reviews received
// as a seller. Called by the rating collaborator after a review commits,
// never from inside a persistence hook.
func (d *UserDAO) UpdateRatingStats(ctx context.Context, userID uint) error {
	result := d.db.WithContext(ctx).Exec(`
		UPDATE users SET
			rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE reviewee_id = ?), 0),
			total_reviews = (SELECT COUNT(*) FROM reviews WHERE reviewee_id = ?)
		WHERE id = ?`,
		userID, userID, userID,
	)

	return result.Error
}
