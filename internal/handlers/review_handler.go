package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type ReviewHandler struct {
	resumeService services.ResumeService
}

func NewReviewHandler(resumeService services.ResumeService) *ReviewHandler {
	return &ReviewHandler{
		resumeService: resumeService,
	}
}

// HandleListResumes handles GET /resumes
func (h *ReviewHandler) HandleListResumes(c *fiber.Ctx) error {
	filter := models.ReviewFilter{
		JobRole:  c.Query("job_role"),
		Location: c.Query("location"),
	}

	var err error
	if filter.MinScore, err = scoreParam(c, "min_score"); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.MaxScore, err = scoreParam(c, "max_score"); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	reviews, err := h.resumeService.ListReviews(c.UserContext(), filter)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.ResumesResponse{Resumes: reviews})
}

// HandleSearchResumes handles GET /resumes/search
func (h *ReviewHandler) HandleSearchResumes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	reviews, err := h.resumeService.SearchReviews(c.UserContext(), c.Query("q"), limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.ResumesResponse{Resumes: reviews})
}

func scoreParam(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}
