package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

var ErrSkillNotFound = repository.ErrSkillNotFound

type SkillRepository interface {
	Create(ctx context.Context, skill domain.Skill) (domain.Skill, error)
	FindByID(ctx context.Context, id uint) (domain.Skill, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Skill, error)
	Search(ctx context.Context, search domain.SkillSearch) ([]domain.Skill, error)
	FindActiveCategories(ctx context.Context) ([]domain.Category, error)
}

// TrendingCache tracks skill views so the marketplace can surface what
// people are looking at right now.
type TrendingCache interface {
	Record(ctx context.Context, skillID uint) error
	Top(ctx context.Context, limit int) ([]uint, error)
}

type SkillService struct {
	repo     SkillRepository
	trending TrendingCache
}

func NewSkillService(repo SkillRepository, trending TrendingCache) *SkillService {
	return &SkillService{
		repo:     repo,
		trending: trending,
	}
}

func (s *SkillService) CreateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	if skill.PointsRequired <= 0 {
		return domain.Skill{}, domain.ErrInvalidAmount
	}
	skill.Status = domain.SkillActive

	created, err := s.repo.Create(ctx, skill)
	if err != nil {
		return domain.Skill{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GetSkill also counts the view towards trending. A cache failure is
// logged and swallowed; reads never depend on Redis.
func (s *SkillService) GetSkill(ctx context.Context, id uint) (domain.Skill, error) {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return domain.Skill{}, ErrSkillNotFound
		}

		return domain.Skill{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if s.trending != nil {
		if err := s.trending.Record(ctx, skill.ID); err != nil {
			zap.L().Warn("failed to record skill view",
				zap.Uint("skill_id", skill.ID),
				zap.Error(err))
		}
	}

	return skill, nil
}

func (s *SkillService) SearchSkills(ctx context.Context, search domain.SkillSearch) ([]domain.Skill, error) {
	skills, err := s.repo.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Search -> %w", err)
	}

	return skills, nil
}

func (s *SkillService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.FindActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveCategories -> %w", err)
	}

	return categories, nil
}

// GetTrending returns the most viewed skills, preserving the view-count
// order from the cache.
func (s *SkillService) GetTrending(ctx context.Context, limit int) ([]domain.Skill, error) {
	if s.trending == nil {
		return []domain.Skill{}, nil
	}

	ids, err := s.trending.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.trending.Top -> %w", err)
	}
	if len(ids) == 0 {
		return []domain.Skill{}, nil
	}

	skills, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByIDs -> %w", err)
	}

	byID := make(map[uint]domain.Skill, len(skills))
	for _, skill := range skills {
		byID[skill.ID] = skill
	}

	ordered := make([]domain.Skill, 0, len(ids))
	for _, id := range ids {
		if skill, ok := byID[id]; ok {
			ordered = append(ordered, skill)
		}
	}

	return ordered, nil
}
