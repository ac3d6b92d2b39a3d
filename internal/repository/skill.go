package repository

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
)

var (
	ErrSkillNotFound    = dao.ErrSkillNotFound
	ErrCategoryNotFound = dao.ErrCategoryNotFound
)

type SkillDAO interface {
	Insert(ctx context.Context, skill dao.Skill) (dao.Skill, error)
	FindByID(ctx context.Context, id uint) (dao.Skill, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Skill, error)
	Search(ctx context.Context, search domain.SkillSearch) ([]dao.Skill, error)
	FindActiveCategories(ctx context.Context) ([]dao.Category, error)
	InsertCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	UpdateRatingStats(ctx context.Context, skillID uint) error
}

type SkillRepository struct {
	dao SkillDAO
}

func NewSkillRepository(dao SkillDAO) *SkillRepository {
	return &SkillRepository{
		dao: dao,
	}
}

func (r *SkillRepository) domainToDao(s domain.Skill) dao.Skill {
	return dao.Skill{
		ID:                s.ID,
		UserID:            s.UserID,
		CategoryID:        s.CategoryID,
		Title:             s.Title,
		Description:       s.Description,
		PointsRequired:    s.PointsRequired,
		EstimatedDuration: s.EstimatedDuration,
		Language:          s.Language,
		Difficulty:        string(s.Difficulty),
		Status:            string(s.Status),
		TotalOrders:       s.TotalOrders,
		AverageRating:     s.AverageRating,
		TotalReviews:      s.TotalReviews,
		Tags:              s.Tags,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (r *SkillRepository) daoToDomain(s dao.Skill) domain.Skill {
	return domain.Skill{
		ID:                s.ID,
		UserID:            s.UserID,
		CategoryID:        s.CategoryID,
		Title:             s.Title,
		Description:       s.Description,
		PointsRequired:    s.PointsRequired,
		EstimatedDuration: s.EstimatedDuration,
		Language:          s.Language,
		Difficulty:        domain.SkillDifficulty(s.Difficulty),
		Status:            domain.SkillStatus(s.Status),
		TotalOrders:       s.TotalOrders,
		AverageRating:     s.AverageRating,
		TotalReviews:      s.TotalReviews,
		Tags:              s.Tags,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (r *SkillRepository) categoryDaoToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *SkillRepository) Create(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(skill))
	if err != nil {
		return domain.Skill{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id uint) (domain.Skill, error) {
	skill, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if err == dao.ErrSkillNotFound {
			return domain.Skill{}, ErrSkillNotFound
		}

		return domain.Skill{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(skill), nil
}

func (r *SkillRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Skill, error) {
	skillsDAO, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	skills := make([]domain.Skill, len(skillsDAO))
	for i, s := range skillsDAO {
		skills[i] = r.daoToDomain(s)
	}

	return skills, nil
}

func (r *SkillRepository) Search(ctx context.Context, search domain.SkillSearch) ([]domain.Skill, error) {
	skillsDAO, err := r.dao.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Search -> %w", err)
	}

	skills := make([]domain.Skill, len(skillsDAO))
	for i, s := range skillsDAO {
		skills[i] = r.daoToDomain(s)
	}

	return skills, nil
}

func (r *SkillRepository) FindActiveCategories(ctx context.Context) ([]domain.Category, error) {
	categoriesDAO, err := r.dao.FindActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveCategories -> %w", err)
	}

	categories := make([]domain.Category, len(categoriesDAO))
	for i, c := range categoriesDAO {
		categories[i] = r.categoryDaoToDomain(c)
	}

	return categories, nil
}

func (r *SkillRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.InsertCategory(ctx, dao.Category{
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return r.categoryDaoToDomain(created), nil
}

func (r *SkillRepository) UpdateRatingStats(ctx context.Context, skillID uint) error {
	if err := r.dao.UpdateRatingStats(ctx, skillID); err != nil {
		return fmt.Errorf("r.dao.UpdateRatingStats -> %w", err)
	}

	return nil
}
