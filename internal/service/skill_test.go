package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

type fakeSkillRepo struct {
	skills map[uint]domain.Skill
	nextID uint
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{skills: map[uint]domain.Skill{}, nextID: 1}
}

func (r *fakeSkillRepo) Create(_ context.Context, skill domain.Skill) (domain.Skill, error) {
	skill.ID = r.nextID
	r.nextID++
	r.skills[skill.ID] = skill
	return skill, nil
}

func (r *fakeSkillRepo) FindByID(_ context.Context, id uint) (domain.Skill, error) {
	skill, ok := r.skills[id]
	if !ok {
		return domain.Skill{}, service.ErrSkillNotFound
	}
	return skill, nil
}

func (r *fakeSkillRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.Skill, error) {
	var found []domain.Skill
	for _, id := range ids {
		if skill, ok := r.skills[id]; ok {
			found = append(found, skill)
		}
	}
	return found, nil
}

func (r *fakeSkillRepo) Search(_ context.Context, _ domain.SkillSearch) ([]domain.Skill, error) {
	var all []domain.Skill
	for _, skill := range r.skills {
		all = append(all, skill)
	}
	return all, nil
}

func (r *fakeSkillRepo) FindActiveCategories(_ context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Music"}}, nil
}

type fakeTrendingCache struct {
	views     map[uint]int
	top       []uint
	recordErr error
	topErr    error
}

func (c *fakeTrendingCache) Record(_ context.Context, skillID uint) error {
	if c.recordErr != nil {
		return c.recordErr
	}
	if c.views == nil {
		c.views = map[uint]int{}
	}
	c.views[skillID]++
	return nil
}

func (c *fakeTrendingCache) Top(_ context.Context, _ int) ([]uint, error) {
	if c.topErr != nil {
		return nil, c.topErr
	}
	return c.top, nil
}

func TestCreateSkill(t *testing.T) {
	repo := newFakeSkillRepo()
	svc := service.NewSkillService(repo, nil)

	t.Run("new skills start active", func(t *testing.T) {
		created, err := svc.CreateSkill(context.Background(), domain.Skill{
			UserID:         1,
			Title:          "Guitar lessons",
			PointsRequired: 50,
			Status:         domain.SkillPaused,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.SkillActive, created.Status)
	})

	t.Run("a non-positive price is rejected", func(t *testing.T) {
		_, err := svc.CreateSkill(context.Background(), domain.Skill{UserID: 1, Title: "Free"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestGetSkillRecordsView(t *testing.T) {
	repo := newFakeSkillRepo()
	cache := &fakeTrendingCache{}
	svc := service.NewSkillService(repo, cache)

	created, err := svc.CreateSkill(context.Background(), domain.Skill{UserID: 1, Title: "Guitar", PointsRequired: 50})
	require.NoError(t, err)

	_, err = svc.GetSkill(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.views[created.ID])

	t.Run("a cache failure does not fail the read", func(t *testing.T) {
		cache.recordErr = errors.New("redis down")

		skill, err := svc.GetSkill(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, skill.ID)
	})

	t.Run("unknown skill", func(t *testing.T) {
		_, err := svc.GetSkill(context.Background(), 999)
		assert.ErrorIs(t, err, service.ErrSkillNotFound)
	})
}

func TestGetTrending(t *testing.T) {
	repo := newFakeSkillRepo()

	var ids []uint
	for _, title := range []string{"Guitar", "Pasta", "Chess"} {
		created, err := repo.Create(context.Background(), domain.Skill{UserID: 1, Title: title, PointsRequired: 10})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	t.Run("preserves the cache view-count order", func(t *testing.T) {
		cache := &fakeTrendingCache{top: []uint{ids[2], ids[0], ids[1]}}
		svc := service.NewSkillService(repo, cache)

		trending, err := svc.GetTrending(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, trending, 3)
		assert.Equal(t, "Chess", trending[0].Title)
		assert.Equal(t, "Guitar", trending[1].Title)
		assert.Equal(t, "Pasta", trending[2].Title)
	})

	t.Run("skips ids whose skill no longer exists", func(t *testing.T) {
		cache := &fakeTrendingCache{top: []uint{999, ids[0]}}
		svc := service.NewSkillService(repo, cache)

		trending, err := svc.GetTrending(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, trending, 1)
		assert.Equal(t, "Guitar", trending[0].Title)
	})

	t.Run("empty without a cache", func(t *testing.T) {
		svc := service.NewSkillService(repo, nil)

		trending, err := svc.GetTrending(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, trending)
	})
}
