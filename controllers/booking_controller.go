package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"cherybd/utils"
)

// displayTimeLayout is the human-readable timestamp embedded in every email.
const displayTimeLayout = "Monday, 2 January 2006 at 3:04 PM"

// validationFailedMsg is the generic message for missing/invalid fields.
const validationFailedMsg = "Please check all fields and try again."

type BookingController struct {
	Mailer utils.MailSender
	Logger *log.Logger
}

func NewBookingController(mailer utils.MailSender, logger *log.Logger) *BookingController {
	return &BookingController{
		Mailer: mailer,
		Logger: logger,
	}
}

type bookingInput struct {
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	ContactNumber    string `json:"contactNumber" validate:"required,max=20"`
	VehicleModel     string `json:"vehicleModel" validate:"required,max=100"`
	VehicleRegNumber string `json:"vehicleRegNumber" validate:"required,max=30"`
	ServiceType      string `json:"serviceType" validate:"required,max=100"`
	PreferredDate    string `json:"preferredDate" validate:"required,max=50"`
	PreferredTime    string `json:"preferredTime" validate:"required,max=50"`
	AdminEmail1      string `json:"adminEmail1" validate:"required,email"`
	AdminEmail2      string `json:"adminEmail2" validate:"required,email"`
	Notes            string `json:"notes" validate:"omitempty,max=2000"`
}

// CreateBooking handles a service-booking submission: validate, derive the
// reference, render and send the admin and customer notifications. Nothing
// is persisted for this workflow.
func (bc *BookingController) CreateBooking(c *fiber.Ctx) error {
	var input bookingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationFailedMsg)
	}

	now := time.Now()
	reference := utils.GenerateReference("SRV", now, utils.BookingRefDigits, "")

	notes := input.Notes
	if notes == "" {
		notes = utils.NoNotesFallback
	}

	data := utils.BookingEmailData{
		Name:             input.Name,
		Email:            input.Email,
		ContactNumber:    input.ContactNumber,
		VehicleModel:     input.VehicleModel,
		VehicleRegNumber: input.VehicleRegNumber,
		ServiceType:      input.ServiceType,
		PreferredDate:    input.PreferredDate,
		PreferredTime:    input.PreferredTime,
		Notes:            notes,
		ReferenceNumber:  reference,
		SubmittedAt:      now.Format(displayTimeLayout),
		Year:             now.Year(),
	}

	adminHTML, err := utils.RenderEmail("booking_admin", data)
	if err != nil {
		utils.LogError("booking_render_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your booking right now. Please try again later.")
	}
	customerHTML, err := utils.RenderEmail("booking_customer", data)
	if err != nil {
		utils.LogError("booking_render_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your booking right now. Please try again later.")
	}

	if err := bc.Mailer.Send(utils.OutgoingMail{
		To:      []string{input.AdminEmail1, input.AdminEmail2},
		Subject: "New Service Booking: " + reference + " | " + input.VehicleModel,
		HTML:    adminHTML,
	}); err != nil {
		utils.LogError("booking_admin_mail_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your booking right now. Please try again later.")
	}

	// A customer-send failure after the admin mail went out is reported as
	// total failure; a resubmission will duplicate the admin notification.
	if err := bc.Mailer.Send(utils.OutgoingMail{
		To:      []string{input.Email},
		Subject: "Your Service Booking Confirmation - " + reference,
		HTML:    customerHTML,
	}); err != nil {
		utils.LogError("booking_customer_mail_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not process your booking right now. Please try again later.")
	}

	bc.Logger.Printf("Service booking %s accepted for %s", reference, input.VehicleModel)
	utils.LogEvent("service_booking_received", map[string]interface{}{
		"reference":     reference,
		"vehicle_model": input.VehicleModel,
		"service_type":  input.ServiceType,
	})

	return c.JSON(utils.SuccessResponse("Your service booking has been received. Our team will contact you shortly to confirm the slot."))
}
