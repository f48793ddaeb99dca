package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"cherybd/config"
	controller "cherybd/controllers"
	"cherybd/middleware"
	"cherybd/utils"
)

// SetupRoutes wires the form-submission endpoints. Every endpoint is a
// public POST accepting a JSON body; the rate limiter is the only gate.
func SetupRoutes(app *fiber.App, db *gorm.DB, mailer utils.MailSender, crm utils.LeadSyncer) {
	cfg := config.AppConfig

	adminEmails := []string{cfg.AdminEmail1}
	if cfg.AdminEmail2 != "" {
		adminEmails = append(adminEmails, cfg.AdminEmail2)
	}

	bookingController := controller.NewBookingController(mailer, log.New(os.Stdout, "BOOKING: ", log.LstdFlags))
	assistanceController := controller.NewAssistanceController(db, mailer, log.New(os.Stdout, "ASSISTANCE: ", log.LstdFlags), cfg.EmergencyHotline)
	brochureController := controller.NewBrochureController(mailer, crm, log.New(os.Stdout, "BROCHURE: ", log.LstdFlags), adminEmails)
	testDriveController := controller.NewTestDriveController(mailer, crm, log.New(os.Stdout, "TESTDRIVE: ", log.LstdFlags), adminEmails)
	complaintController := controller.NewComplaintController(mailer, crm, log.New(os.Stdout, "COMPLAINT: ", log.LstdFlags), adminEmails)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api",
		logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}),
		middleware.SubmissionRateLimiter(
			cfg.RateLimitSubmissions,
			middleware.NewRateLimitStorage(cfg.Redis),
		),
	)

	api.Post("/service-booking", bookingController.CreateBooking)
	api.Post("/roadside-assistance", assistanceController.CreateAssistanceRequest)
	api.Post("/brochure-request", brochureController.CreateBrochureRequest)
	api.Post("/test-drive", testDriveController.CreateTestDriveBooking)
	api.Post("/complaints", complaintController.CreateComplaint)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	log.Println("Form submission routes initialized successfully")
}
