package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/handlers"
	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

// Dependencies is everything the HTTP layer needs. It is built once at
// startup and never mutated.
type Dependencies struct {
	Config         *config.Config
	Log            *logrus.Logger
	AuthService    services.AuthService
	Tokens         services.TokenIssuer
	ResumeService  services.ResumeService
	StorageService services.StorageService
}

func New(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Resume Reviewer API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          2 * deps.Config.Gemini.Timeout,
		BodyLimit:             int(deps.Config.Storage.MaxFileSize),
		ErrorHandler:          errorHandler(deps.Log),
		DisableStartupMessage: !deps.Config.IsDevelopment(),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     deps.Log.Out,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.Config.Server.CORSOrigin,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	resumeHandler := handlers.NewResumeHandler(deps.ResumeService, deps.StorageService, deps.Log)
	reviewHandler := handlers.NewReviewHandler(deps.ResumeService)
	requireAuth := handlers.RequireAuth(deps.Tokens)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/signup", authHandler.HandleSignup)
	api.Post("/login", authHandler.HandleLogin)
	api.Post("/check_resume", resumeHandler.HandleCheckResume)
	api.Get("/resumes", requireAuth, reviewHandler.HandleListResumes)
	api.Get("/resumes/search", requireAuth, reviewHandler.HandleSearchResumes)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Reviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/signup",
				"POST /api/login",
				"POST /api/check_resume",
				"GET /api/resumes",
				"GET /api/resumes/search",
			},
		})
	})

	return app
}

// errorHandler renders every error as {"error", "code"}. Errors that are not
// fiber errors are logged and reported without detail.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			}).Error("Request failed")
		}

		return c.Status(code).JSON(models.ErrorResponse{
			Error: message,
			Code:  code,
		})
	}
}
