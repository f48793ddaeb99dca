package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"cherybd/utils"
)

type TestDriveController struct {
	Mailer      utils.MailSender
	CRM         utils.LeadSyncer
	Logger      *log.Logger
	AdminEmails []string
}

func NewTestDriveController(mailer utils.MailSender, crm utils.LeadSyncer, logger *log.Logger, adminEmails []string) *TestDriveController {
	return &TestDriveController{
		Mailer:      mailer,
		CRM:         crm,
		Logger:      logger,
		AdminEmails: adminEmails,
	}
}

type testDriveInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	ContactNumber string `json:"contactNumber" validate:"required,max=20"`
	VehicleModel  string `json:"vehicleModel" validate:"required,max=100"`
	PreferredDate string `json:"preferredDate" validate:"required,max=50"`
	PreferredTime string `json:"preferredTime" validate:"required,max=50"`
	Location      string `json:"location" validate:"required,max=300"`
	Notes         string `json:"notes" validate:"omitempty,max=2000"`
}

func (tc *TestDriveController) CreateTestDriveBooking(c *fiber.Ctx) error {
	var input testDriveInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationFailedMsg)
	}

	now := time.Now()
	reference := utils.GenerateReference("TD", now, utils.TestDriveRefDigits, "")

	notes := input.Notes
	if notes == "" {
		notes = utils.NoNotesFallback
	}

	data := utils.TestDriveEmailData{
		Name:            input.Name,
		Email:           input.Email,
		ContactNumber:   input.ContactNumber,
		VehicleModel:    input.VehicleModel,
		PreferredDate:   input.PreferredDate,
		PreferredTime:   input.PreferredTime,
		Location:        input.Location,
		Notes:           notes,
		ReferenceNumber: reference,
		SubmittedAt:     now.Format(displayTimeLayout),
		Year:            now.Year(),
	}

	adminHTML, err := utils.RenderEmail("testdrive_admin", data)
	if err != nil {
		utils.LogError("testdrive_render_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your test drive booking right now. Please try again later.")
	}
	customerHTML, err := utils.RenderEmail("testdrive_customer", data)
	if err != nil {
		utils.LogError("testdrive_render_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your test drive booking right now. Please try again later.")
	}

	if err := tc.Mailer.Send(utils.OutgoingMail{
		To:      tc.AdminEmails,
		Subject: "New Test Drive Booking: " + reference + " | " + input.VehicleModel,
		HTML:    adminHTML,
	}); err != nil {
		utils.LogError("testdrive_admin_mail_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your test drive booking right now. Please try again later.")
	}

	if err := tc.Mailer.Send(utils.OutgoingMail{
		To:      []string{input.Email},
		Subject: "Your Test Drive Booking Confirmation - " + reference,
		HTML:    customerHTML,
	}); err != nil {
		utils.LogError("testdrive_customer_mail_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your test drive booking right now. Please try again later.")
	}

	sync := tc.CRM.SyncLead(c.UserContext(), utils.CRMLead{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.ContactNumber,
		VehicleModel: input.VehicleModel,
		Source:       "Website - Test Drive",
		Description:  "Requested a test drive at " + input.Location + " on " + input.PreferredDate,
		IPAddress:    c.IP(),
		UserAgent:    c.Get("User-Agent"),
	})
	if sync.Success {
		utils.LogEvent("testdrive_lead_synced", map[string]interface{}{
			"reference": reference,
			"action":    sync.Action,
		})
	} else {
		tc.Logger.Printf("CRM sync failed for test drive booking %s: %s", reference, sync.Error)
	}

	return c.JSON(utils.SuccessResponse("Your test drive booking has been received. Our team will call you to confirm the slot."))
}
