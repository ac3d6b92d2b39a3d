package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/request"
	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

type SkillService interface {
	CreateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error)
	GetSkill(ctx context.Context, id uint) (domain.Skill, error)
	SearchSkills(ctx context.Context, search domain.SkillSearch) ([]domain.Skill, error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetTrending(ctx context.Context, limit int) ([]domain.Skill, error)
}

type SkillHandler struct {
	svc SkillService
}

func NewSkillHandler(svc SkillService) *SkillHandler {
	return &SkillHandler{
		svc: svc,
	}
}

// HandleCreateSkill godoc
// @Summary      Offer a new skill
// @Tags         skills
// @Produce      json
// @Param        request   body      request.CreateSkillRequest true "request body"
// @Success      201      {object}   domain.Skill
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /skills [post]
func (h *SkillHandler) HandleCreateSkill(ctx *gin.Context) {
	userID, err := getUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	var req request.CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	skill, err := h.svc.CreateSkill(ctx.Request.Context(), domain.Skill{
		UserID:            userID,
		CategoryID:        req.CategoryID,
		Title:             req.Title,
		Description:       req.Description,
		PointsRequired:    req.PointsRequired,
		EstimatedDuration: req.EstimatedDuration,
		Language:          req.Language,
		Difficulty:        domain.SkillDifficulty(req.Difficulty),
		Tags:              req.Tags,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateSkill -> h.svc.CreateSkill -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, skill)
}

// HandleGetSkill godoc
// @Summary      Get a skill by ID
// @Tags         skills
// @Produce      json
// @Param        skillID   path      int  true  "skill ID"
// @Success      200      {object}   domain.Skill
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /skills/{skillID} [get]
func (h *SkillHandler) HandleGetSkill(ctx *gin.Context) {
	skillID, err := parseUintParam(ctx, "skillID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	skill, err := h.svc.GetSkill(ctx.Request.Context(), skillID)
	if err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", skillID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSkill -> h.svc.GetSkill -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, skill)
}

// HandleSearchSkills godoc
// @Summary      Search active skills
// @Tags         skills
// @Produce      json
// @Param        q           query     string false "free-text query"
// @Param        category_id query     int    false "category filter"
// @Param        difficulty  query     string false "difficulty filter"
// @Param        min_points  query     int    false "minimum price"
// @Param        max_points  query     int    false "maximum price"
// @Param        sort_by     query     string false "recent|price_asc|price_desc|rating"
// @Success      200        {array}    domain.Skill
// @Failure      500        {object}   response.Err
// @Router       /skills [get]
func (h *SkillHandler) HandleSearchSkills(ctx *gin.Context) {
	limit, offset := parsePagination(ctx)
	categoryID, _ := strconv.ParseUint(ctx.Query("category_id"), 10, 64)
	minPoints, _ := strconv.Atoi(ctx.Query("min_points"))
	maxPoints, _ := strconv.Atoi(ctx.Query("max_points"))

	skills, err := h.svc.SearchSkills(ctx.Request.Context(), domain.SkillSearch{
		Query:      ctx.Query("q"),
		CategoryID: uint(categoryID),
		Difficulty: domain.SkillDifficulty(ctx.Query("difficulty")),
		MinPoints:  minPoints,
		MaxPoints:  maxPoints,
		SortBy:     ctx.DefaultQuery("sort_by", "recent"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleSearchSkills -> h.svc.SearchSkills -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, skills)
}

// HandleGetCategories godoc
// @Summary      List active skill categories
// @Tags         skills
// @Produce      json
// @Success      200      {array}    domain.Category
// @Failure      500      {object}   response.Err
// @Router       /skills/categories [get]
func (h *SkillHandler) HandleGetCategories(ctx *gin.Context) {
	categories, err := h.svc.GetCategories(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCategories -> h.svc.GetCategories -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleGetTrending godoc
// @Summary      List the most viewed skills
// @Tags         skills
// @Produce      json
// @Param        limit     query     int false "max results"
// @Success      200      {array}    domain.Skill
// @Failure      500      {object}   response.Err
// @Router       /skills/trending [get]
func (h *SkillHandler) HandleGetTrending(ctx *gin.Context) {
	limit, _ := parsePagination(ctx)

	skills, err := h.svc.GetTrending(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTrending -> h.svc.GetTrending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, skills)
}
