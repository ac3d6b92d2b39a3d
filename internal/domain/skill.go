package domain

import (
	"strings"
	"time"
)

type SkillStatus string

const (
	SkillActive    SkillStatus = "active"
	SkillPaused    SkillStatus = "paused"
	SkillCompleted SkillStatus = "completed"
)

type SkillDifficulty string

const (
	DifficultyBeginner     SkillDifficulty = "beginner"
	DifficultyIntermediate SkillDifficulty = "intermediate"
	DifficultyAdvanced     SkillDifficulty = "advanced"
)

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Skill struct {
	ID         uint `json:"id"`
	UserID     uint `json:"user_id"`
	CategoryID uint `json:"category_id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	PointsRequired    int             `json:"points_required"`
	EstimatedDuration string          `json:"estimated_duration"`
	Language          string          `json:"language"`
	Difficulty        SkillDifficulty `json:"difficulty"`

	Status        SkillStatus `json:"status"`
	TotalOrders   int         `json:"total_orders"`
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`

	Tags string `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Skill) TagList() []string {
	var tags []string
	for _, t := range strings.Split(s.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SkillSearch carries the filter chain for skill listing.
type SkillSearch struct {
	Query      string
	CategoryID uint
	Difficulty SkillDifficulty
	MinPoints  int
	MaxPoints  int
	SortBy     string // "recent", "price_asc", "price_desc", "rating"
	Limit      int
	Offset     int
}
