package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

type ResumeHandler struct {
	resumeService  services.ResumeService
	storageService services.StorageService
	log            *logrus.Logger
}

func NewResumeHandler(
	resumeService services.ResumeService,
	storageService services.StorageService,
	log *logrus.Logger,
) *ResumeHandler {
	return &ResumeHandler{
		resumeService:  resumeService,
		storageService: storageService,
		log:            log,
	}
}

// HandleCheckResume handles POST /check_resume
func (h *ResumeHandler) HandleCheckResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	jobDescription := c.FormValue("job_description")
	if err != nil || strings.TrimSpace(jobDescription) == "" {
		return respondError(c, fiber.StatusBadRequest, "Missing resume file or job description")
	}

	filename := filepath.Base(file.Filename)
	if _, err := services.KindFromFilename(filename); err != nil {
		return serviceError(c, err)
	}

	path, err := h.storageService.Save(file)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.storageService.Remove(path); err != nil {
			h.log.WithError(err).WithField("path", path).Warn("Failed to remove scratch file")
		}
	}()

	review, err := h.resumeService.CheckResume(c.UserContext(), services.CheckResumeRequest{
		Filename:       filename,
		FilePath:       path,
		JobDescription: jobDescription,
		JobRole:        c.FormValue("job_role"),
		Location:       c.FormValue("location"),
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.CheckResumeResponse{Result: review.ReviewResult})
}
