package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cherybd/models"
	"cherybd/utils"
)

type AssistanceController struct {
	DB      *gorm.DB
	Mailer  utils.MailSender
	Logger  *log.Logger
	Hotline string
}

func NewAssistanceController(db *gorm.DB, mailer utils.MailSender, logger *log.Logger, hotline string) *AssistanceController {
	return &AssistanceController{
		DB:      db,
		Mailer:  mailer,
		Logger:  logger,
		Hotline: hotline,
	}
}

type assistanceInput struct {
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	ContactNumber    string `json:"contactNumber" validate:"required,max=20"`
	VehicleModel     string `json:"vehicleModel" validate:"required,max=100"`
	VehicleRegNumber string `json:"vehicleRegNumber" validate:"required,max=30"`
	AssistanceType   string `json:"assistanceType" validate:"required,max=100"`
	Location         string `json:"location" validate:"required,max=300"`
	AdminEmail1      string `json:"adminEmail1" validate:"required,email"`
	AdminEmail2      string `json:"adminEmail2" validate:"required,email"`
	Description      string `json:"description" validate:"omitempty,max=2000"`
}

// CreateAssistanceRequest handles a roadside-assistance submission. This is
// the one workflow that persists a record: the reference and row are written
// before any mail goes out, so a failed notification still leaves a pending
// request for manual follow-up.
func (ac *AssistanceController) CreateAssistanceRequest(c *fiber.Ctx) error {
	var input assistanceInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationFailedMsg)
	}

	now := time.Now()
	reference := utils.GenerateReference("RSA", now, utils.AssistanceRefDigits, input.Location)

	request := models.AssistanceRequest{
		ReferenceNumber:  reference,
		Name:             input.Name,
		Email:            input.Email,
		ContactNumber:    input.ContactNumber,
		VehicleModel:     input.VehicleModel,
		VehicleRegNumber: input.VehicleRegNumber,
		AssistanceType:   input.AssistanceType,
		Location:         input.Location,
		Description:      input.Description,
		Status:           models.StatusPending,
	}

	if err := ac.DB.WithContext(c.UserContext()).Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, validationFailedMsg)
		}
		utils.LogError("assistance_persist_failed", err, map[string]interface{}{"reference": reference})
		return ac.failureResponse(c)
	}

	ac.Logger.Printf("Assistance request %s stored (id %d)", reference, request.ID)

	description := input.Description
	if description == "" {
		description = utils.NoNotesFallback
	}

	data := utils.AssistanceEmailData{
		Name:             input.Name,
		Email:            input.Email,
		ContactNumber:    input.ContactNumber,
		VehicleModel:     input.VehicleModel,
		VehicleRegNumber: input.VehicleRegNumber,
		AssistanceType:   input.AssistanceType,
		Location:         input.Location,
		Description:      description,
		ReferenceNumber:  reference,
		Hotline:          ac.Hotline,
		SubmittedAt:      now.Format(displayTimeLayout),
		Year:             now.Year(),
	}

	adminHTML, err := utils.RenderEmail("assistance_admin", data)
	if err != nil {
		utils.LogError("assistance_render_failed", err, map[string]interface{}{"reference": reference})
		return ac.failureResponse(c)
	}
	customerHTML, err := utils.RenderEmail("assistance_customer", data)
	if err != nil {
		utils.LogError("assistance_render_failed", err, map[string]interface{}{"reference": reference})
		return ac.failureResponse(c)
	}

	// Urgent workflow: both notifications carry high-priority headers. If a
	// send fails the stored record stays pending; there is no automated
	// reconciliation, the hotline is the fallback channel.
	if err := ac.Mailer.Send(utils.OutgoingMail{
		To:           []string{input.AdminEmail1, input.AdminEmail2},
		Subject:      "URGENT Roadside Assistance: " + reference + " | " + input.AssistanceType,
		HTML:         adminHTML,
		HighPriority: true,
	}); err != nil {
		utils.LogError("assistance_admin_mail_failed", err, map[string]interface{}{"reference": reference})
		return ac.failureResponse(c)
	}

	if err := ac.Mailer.Send(utils.OutgoingMail{
		To:           []string{input.Email},
		Subject:      "Roadside Assistance Confirmation - " + reference,
		HTML:         customerHTML,
		HighPriority: true,
	}); err != nil {
		utils.LogError("assistance_customer_mail_failed", err, map[string]interface{}{"reference": reference})
		return ac.failureResponse(c)
	}

	utils.LogEvent("assistance_request_received", map[string]interface{}{
		"reference":       reference,
		"assistance_type": input.AssistanceType,
		"location":        input.Location,
	})

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Your roadside assistance request has been received. Our team is being notified now.",
		"assistanceId":    request.ID,
		"referenceNumber": reference,
	})
}

func (ac *AssistanceController) failureResponse(c *fiber.Ctx) error {
	message := fmt.Sprintf(
		"We could not process your request online. Please call our 24/7 emergency hotline at %s for immediate help.",
		ac.Hotline,
	)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, message)
}
