package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/skillswap/skillswap-api/internal/domain"
)

var (
	ErrSkillNotFound    = errors.New("skill not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Description string
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
}

type Skill struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;index"`
	CategoryID uint `gorm:"not null;index:idx_skills_category_status"`

	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`

	PointsRequired    int    `gorm:"not null;index"`
	EstimatedDuration string `gorm:"not null"`
	Language          string `gorm:"not null;default:en"`
	Difficulty        string `gorm:"not null;default:beginner"`

	Status        string  `gorm:"not null;default:active;index:idx_skills_category_status"`
	TotalOrders   int     `gorm:"not null;default:0"`
	AverageRating float64 `gorm:"not null;default:0;index"`
	TotalReviews  int     `gorm:"not null;default:0"`

	Tags string

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SkillDAO struct {
	db *gorm.DB
}

func NewSkillDAO(db *gorm.DB) *SkillDAO {
	return &SkillDAO{
		db: db,
	}
}

func (d *SkillDAO) Insert(ctx context.Context, skill Skill) (Skill, error) {
	result := d.db.WithContext(ctx).Create(&skill)
	if result.Error != nil {
		return Skill{}, result.Error
	}

	return skill, nil
}

func (d *SkillDAO) FindByID(ctx context.Context, id uint) (Skill, error) {
	var skill Skill

	result := d.db.WithContext(ctx).First(&skill, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Skill{}, ErrSkillNotFound
		}

		return Skill{}, result.Error
	}

	return skill, nil
}

func (d *SkillDAO) FindByIDs(ctx context.Context, ids []uint) ([]Skill, error) {
	var skills []Skill

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills)
	if result.Error != nil {
		return nil, result.Error
	}

	return skills, nil
}

// Search runs the skill filter chain over active listings.
func (d *SkillDAO) Search(ctx context.Context, search domain.SkillSearch) ([]Skill, error) {
	query := d.db.WithContext(ctx).
		Model(&Skill{}).
		Where("status = ?", string(domain.SkillActive))

	if search.Query != "" {
		like := "%" + search.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR tags ILIKE ?", like, like, like)
	}
	if search.CategoryID != 0 {
		query = query.Where("category_id = ?", search.CategoryID)
	}
	if search.Difficulty != "" {
		query = query.Where("difficulty = ?", string(search.Difficulty))
	}
	if search.MinPoints > 0 {
		query = query.Where("points_required >= ?", search.MinPoints)
	}
	if search.MaxPoints > 0 {
		query = query.Where("points_required <= ?", search.MaxPoints)
	}

	switch search.SortBy {
	case "price_asc":
		query = query.Order("points_required ASC")
	case "price_desc":
		query = query.Order("points_required DESC")
	case "rating":
		query = query.Order("average_rating DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if search.Limit > 0 {
		query = query.Limit(search.Limit)
	}
	query = query.Offset(search.Offset)

	var skills []Skill
	if err := query.Find(&skills).Error; err != nil {
		return nil, err
	}

	return skills, nil
}

func (d *SkillDAO) FindActiveCategories(ctx context.Context) ([]Category, error) {
	var categories []Category

	result := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *SkillDAO) InsertCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		return Category{}, result.Error
	}

	return category, nil
}

// UpdateRatingStats recomputes the skill's aggregate from its reviews.
// Called by the rating collaborator after a review commits.
func (d *SkillDAO) UpdateRatingStats(ctx context.Context, skillID uint) error {
	result := d.db.WithContext(ctx).Exec(`
		UPDATE skills SET
			average_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE skill_id = ?), 0),
			total_reviews = (SELECT COUNT(*) FROM reviews WHERE skill_id = ?)
		WHERE id = ?`,
		skillID, skillID, skillID,
	)

	return result.Error
}
