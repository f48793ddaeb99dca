package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"cherybd/utils"
)

// BrochureController handles brochure requests. This endpoint predates the
// others and keeps its original response envelope: errors come back under an
// "error" key instead of success/message.
type BrochureController struct {
	Mailer      utils.MailSender
	CRM         utils.LeadSyncer
	Logger      *log.Logger
	AdminEmails []string
}

func NewBrochureController(mailer utils.MailSender, crm utils.LeadSyncer, logger *log.Logger, adminEmails []string) *BrochureController {
	return &BrochureController{
		Mailer:      mailer,
		CRM:         crm,
		Logger:      logger,
		AdminEmails: adminEmails,
	}
}

type brochureInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	CarModel string `json:"carModel" validate:"required,max=100"`
}

func (brc *BrochureController) CreateBrochureRequest(c *fiber.Ctx) error {
	var input brochureInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	now := time.Now()
	reference := utils.GenerateReference("BRO", now, utils.BrochureRefDigits, "")

	data := utils.BrochureEmailData{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		CarModel:        input.CarModel,
		ReferenceNumber: reference,
		SubmittedAt:     now.Format(displayTimeLayout),
		Year:            now.Year(),
	}

	adminHTML, err := utils.RenderEmail("brochure_admin", data)
	if err != nil {
		utils.LogError("brochure_render_failed", err, map[string]interface{}{"reference": reference})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process brochure request"})
	}
	customerHTML, err := utils.RenderEmail("brochure_customer", data)
	if err != nil {
		utils.LogError("brochure_render_failed", err, map[string]interface{}{"reference": reference})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process brochure request"})
	}

	if err := brc.Mailer.Send(utils.OutgoingMail{
		To:      brc.AdminEmails,
		Subject: "New Brochure Request: " + input.CarModel + " | " + reference,
		HTML:    adminHTML,
	}); err != nil {
		utils.LogError("brochure_admin_mail_failed", err, map[string]interface{}{"reference": reference})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process brochure request"})
	}

	if err := brc.Mailer.Send(utils.OutgoingMail{
		To:      []string{input.Email},
		Subject: "Your " + input.CarModel + " Brochure Request",
		HTML:    customerHTML,
	}); err != nil {
		utils.LogError("brochure_customer_mail_failed", err, map[string]interface{}{"reference": reference})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process brochure request"})
	}

	// Best-effort side channel: a CRM failure is logged and swallowed, the
	// brochure request itself already succeeded.
	sync := brc.CRM.SyncLead(c.UserContext(), utils.CRMLead{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		VehicleModel: input.CarModel,
		Source:       "Website - Brochure Request",
		Description:  "Requested brochure for " + input.CarModel,
		IPAddress:    c.IP(),
		UserAgent:    c.Get("User-Agent"),
	})
	if sync.Success {
		utils.LogEvent("brochure_lead_synced", map[string]interface{}{
			"reference": reference,
			"action":    sync.Action,
		})
	} else {
		brc.Logger.Printf("CRM sync failed for brochure request %s: %s", reference, sync.Error)
	}

	return c.JSON(fiber.Map{"success": true})
}
