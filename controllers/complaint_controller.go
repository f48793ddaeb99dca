package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"cherybd/utils"
)

type ComplaintController struct {
	Mailer      utils.MailSender
	CRM         utils.LeadSyncer
	Logger      *log.Logger
	AdminEmails []string
}

func NewComplaintController(mailer utils.MailSender, crm utils.LeadSyncer, logger *log.Logger, adminEmails []string) *ComplaintController {
	return &ComplaintController{
		Mailer:      mailer,
		CRM:         crm,
		Logger:      logger,
		AdminEmails: adminEmails,
	}
}

type complaintInput struct {
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	ContactNumber    string `json:"contactNumber" validate:"required,max=20"`
	ComplaintType    string `json:"complaintType" validate:"required,max=100"`
	Description      string `json:"description" validate:"required,max=5000"`
	VehicleModel     string `json:"vehicleModel" validate:"omitempty,max=100"`
	VehicleRegNumber string `json:"vehicleRegNumber" validate:"omitempty,max=30"`
	AdminEmail1      string `json:"adminEmail1" validate:"omitempty,email"`
	AdminEmail2      string `json:"adminEmail2" validate:"omitempty,email"`
}

// CreateComplaint handles a customer complaint: acknowledgement mails to
// both sides, then the complaint is forwarded into the CRM under the
// customer's email so repeat complaints land on one record.
func (cc *ComplaintController) CreateComplaint(c *fiber.Ctx) error {
	var input complaintInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationFailedMsg)
	}

	now := time.Now()
	reference := utils.GenerateReference("CMP", now, utils.ComplaintRefDigits, input.Name)

	vehicleModel := input.VehicleModel
	if vehicleModel == "" {
		vehicleModel = "Not provided"
	}
	vehicleReg := input.VehicleRegNumber
	if vehicleReg == "" {
		vehicleReg = "Not provided"
	}

	data := utils.ComplaintEmailData{
		Name:             input.Name,
		Email:            input.Email,
		ContactNumber:    input.ContactNumber,
		ComplaintType:    input.ComplaintType,
		VehicleModel:     vehicleModel,
		VehicleRegNumber: vehicleReg,
		Description:      input.Description,
		ReferenceNumber:  reference,
		SubmittedAt:      now.Format(displayTimeLayout),
		Year:             now.Year(),
	}

	adminHTML, err := utils.RenderEmail("complaint_admin", data)
	if err != nil {
		utils.LogError("complaint_render_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not submit your complaint right now. Please try again later.")
	}
	customerHTML, err := utils.RenderEmail("complaint_customer", data)
	if err != nil {
		utils.LogError("complaint_render_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not submit your complaint right now. Please try again later.")
	}

	// Either payload override replaces the configured recipients.
	var adminTo []string
	if input.AdminEmail1 != "" {
		adminTo = append(adminTo, input.AdminEmail1)
	}
	if input.AdminEmail2 != "" {
		adminTo = append(adminTo, input.AdminEmail2)
	}
	if len(adminTo) == 0 {
		adminTo = cc.AdminEmails
	}

	if err := cc.Mailer.Send(utils.OutgoingMail{
		To:      adminTo,
		Subject: "New Customer Complaint: " + reference + " | " + input.ComplaintType,
		HTML:    adminHTML,
	}); err != nil {
		utils.LogError("complaint_admin_mail_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not submit your complaint right now. Please try again later.")
	}

	if err := cc.Mailer.Send(utils.OutgoingMail{
		To:      []string{input.Email},
		Subject: "We Received Your Complaint - " + reference,
		HTML:    customerHTML,
	}); err != nil {
		utils.LogError("complaint_customer_mail_failed", err, map[string]interface{}{"reference": reference})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "We could not submit your complaint right now. Please try again later.")
	}

	sync := cc.CRM.SyncLead(c.UserContext(), utils.CRMLead{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.ContactNumber,
		VehicleModel: input.VehicleModel,
		Source:       "Website - Complaint",
		Description:  input.ComplaintType + ": " + input.Description,
		IPAddress:    c.IP(),
		UserAgent:    c.Get("User-Agent"),
	})
	if sync.Success {
		utils.LogEvent("complaint_lead_synced", map[string]interface{}{
			"reference": reference,
			"action":    sync.Action,
		})
	} else {
		cc.Logger.Printf("CRM sync failed for complaint %s: %s", reference, sync.Error)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Your complaint has been logged. Our customer care team will contact you within 48 hours.",
		"referenceNumber": reference,
	})
}
