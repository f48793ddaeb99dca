package utils

import (
	"bytes"
	"fmt"
	"html/template"
)

// NoNotesFallback is rendered in place of an empty optional notes field.
const NoNotesFallback = "No additional notes provided"

// BookingEmailData feeds the service-booking email pair.
type BookingEmailData struct {
	Name             string
	Email            string
	ContactNumber    string
	VehicleModel     string
	VehicleRegNumber string
	ServiceType      string
	PreferredDate    string
	PreferredTime    string
	Notes            string
	ReferenceNumber  string
	SubmittedAt      string
	Year             int
}

// AssistanceEmailData feeds the roadside-assistance email pair.
type AssistanceEmailData struct {
	Name             string
	Email            string
	ContactNumber    string
	VehicleModel     string
	VehicleRegNumber string
	AssistanceType   string
	Location         string
	Description      string
	ReferenceNumber  string
	Hotline          string
	SubmittedAt      string
	Year             int
}

// BrochureEmailData feeds the brochure-request email pair.
type BrochureEmailData struct {
	Name            string
	Email           string
	Phone           string
	CarModel        string
	ReferenceNumber string
	SubmittedAt     string
	Year            int
}

// TestDriveEmailData feeds the test-drive email pair.
type TestDriveEmailData struct {
	Name            string
	Email           string
	ContactNumber   string
	VehicleModel    string
	PreferredDate   string
	PreferredTime   string
	Location        string
	Notes           string
	ReferenceNumber string
	SubmittedAt     string
	Year            int
}

// ComplaintEmailData feeds the complaint email pair.
type ComplaintEmailData struct {
	Name             string
	Email            string
	ContactNumber    string
	ComplaintType    string
	VehicleModel     string
	VehicleRegNumber string
	Description      string
	ReferenceNumber  string
	SubmittedAt      string
	Year             int
}

// Embedded email templates. Rendered with html/template, so every
// interpolated field is escaped; form input can never inject markup into
// the notification mails.
var emailTemplates = map[string]string{
	"booking_admin": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Service Booking</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .ref { font-size: 18px; font-weight: bold; color: #b01c2e; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Chery Bangladesh | New Service Booking</h2>
    </div>

    <div class="section">
        <div class="row"><span class="label">Reference Number:</span> <span class="ref">{{.ReferenceNumber}}</span></div>
        <div class="row"><span class="label">Submitted:</span> {{.SubmittedAt}}</div>
    </div>

    <div class="section">
        <h3>Vehicle Information</h3>
        <div class="row"><span class="label">Vehicle Model:</span> {{.VehicleModel}}</div>
        <div class="row"><span class="label">Registration Number:</span> {{.VehicleRegNumber}}</div>
    </div>

    <div class="section">
        <h3>Service Details</h3>
        <div class="row"><span class="label">Service Type:</span> {{.ServiceType}}</div>
        <div class="row"><span class="label">Preferred Date:</span> {{.PreferredDate}}</div>
        <div class="row"><span class="label">Preferred Time:</span> {{.PreferredTime}}</div>
        <div class="row"><span class="label">Notes:</span> {{.Notes}}</div>
    </div>

    <div class="section">
        <h3>Customer Information</h3>
        <div class="row"><span class="label">Name:</span> {{.Name}}</div>
        <div class="row"><span class="label">Email:</span> {{.Email}}</div>
        <div class="row"><span class="label">Contact Number:</span> {{.ContactNumber}}</div>
    </div>

    <div class="footer">
        <p>Internal notification. Please contact the customer to confirm the booking slot.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"booking_customer": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Service Booking Confirmation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .ref-box { background-color: #f7f7f9; border: 1px dashed #b01c2e; padding: 12px; text-align: center; font-size: 18px; font-weight: bold; color: #b01c2e; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Your Service Booking is Received</h2>
    </div>

    <div class="section">
        <p>Dear {{.Name}},</p>
        <p>Thank you for booking a service with Chery Bangladesh. Please keep your reference number for any follow-up:</p>
        <div class="ref-box">{{.ReferenceNumber}}</div>
    </div>

    <div class="section">
        <h3>Booking Summary</h3>
        <div class="row"><span class="label">Vehicle Model:</span> {{.VehicleModel}}</div>
        <div class="row"><span class="label">Registration Number:</span> {{.VehicleRegNumber}}</div>
        <div class="row"><span class="label">Service Type:</span> {{.ServiceType}}</div>
        <div class="row"><span class="label">Preferred Date:</span> {{.PreferredDate}}</div>
        <div class="row"><span class="label">Preferred Time:</span> {{.PreferredTime}}</div>
        <div class="row"><span class="label">Notes:</span> {{.Notes}}</div>
    </div>

    <p>Our service team will call you at {{.ContactNumber}} to confirm your slot.</p>

    <div class="footer">
        <p>This is an automated confirmation sent on {{.SubmittedAt}}.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"assistance_admin": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Roadside Assistance Request</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .urgent { background-color: #b01c2e; color: #ffffff; text-align: center; padding: 10px; font-weight: bold; letter-spacing: 1px; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .ref { font-size: 18px; font-weight: bold; color: #b01c2e; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Chery Bangladesh | Roadside Assistance</h2>
    </div>

    <div class="urgent">URGENT: CUSTOMER STRANDED - DISPATCH REQUIRED</div>

    <div class="section">
        <div class="row"><span class="label">Reference Number:</span> <span class="ref">{{.ReferenceNumber}}</span></div>
        <div class="row"><span class="label">Submitted:</span> {{.SubmittedAt}}</div>
    </div>

    <div class="section">
        <h3>Assistance Details</h3>
        <div class="row"><span class="label">Assistance Type:</span> {{.AssistanceType}}</div>
        <div class="row"><span class="label">Location:</span> {{.Location}}</div>
        <div class="row"><span class="label">Description:</span> {{.Description}}</div>
    </div>

    <div class="section">
        <h3>Vehicle Information</h3>
        <div class="row"><span class="label">Vehicle Model:</span> {{.VehicleModel}}</div>
        <div class="row"><span class="label">Registration Number:</span> {{.VehicleRegNumber}}</div>
    </div>

    <div class="section">
        <h3>Customer Information</h3>
        <div class="row"><span class="label">Name:</span> {{.Name}}</div>
        <div class="row"><span class="label">Email:</span> {{.Email}}</div>
        <div class="row"><span class="label">Contact Number:</span> {{.ContactNumber}}</div>
    </div>

    <div class="footer">
        <p>Dispatch a technician and update the request status in the back office.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"assistance_customer": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Roadside Assistance Confirmation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .ref-box { background-color: #f7f7f9; border: 1px dashed #b01c2e; padding: 12px; text-align: center; font-size: 18px; font-weight: bold; color: #b01c2e; }
        .hotline { background-color: #fdf1f2; padding: 10px; text-align: center; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Help is on the Way</h2>
    </div>

    <div class="section">
        <p>Dear {{.Name}},</p>
        <p>We have received your roadside assistance request and our team is being notified right now. Your reference number:</p>
        <div class="ref-box">{{.ReferenceNumber}}</div>
    </div>

    <div class="section">
        <h3>Request Summary</h3>
        <div class="row"><span class="label">Assistance Type:</span> {{.AssistanceType}}</div>
        <div class="row"><span class="label">Location:</span> {{.Location}}</div>
        <div class="row"><span class="label">Vehicle Model:</span> {{.VehicleModel}}</div>
        <div class="row"><span class="label">Registration Number:</span> {{.VehicleRegNumber}}</div>
    </div>

    <div class="hotline">
        <p>Need to speak to someone immediately? Call our 24/7 hotline:<br><strong>{{.Hotline}}</strong></p>
    </div>

    <div class="footer">
        <p>This is an automated confirmation sent on {{.SubmittedAt}}. Please stay with your vehicle if it is safe to do so.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"brochure_admin": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Brochure Request</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Chery Bangladesh | Brochure Request</h2>
    </div>

    <div class="section">
        <div class="row"><span class="label">Reference Number:</span> {{.ReferenceNumber}}</div>
        <div class="row"><span class="label">Requested Model:</span> {{.CarModel}}</div>
        <div class="row"><span class="label">Submitted:</span> {{.SubmittedAt}}</div>
    </div>

    <div class="section">
        <h3>Customer Information</h3>
        <div class="row"><span class="label">Name:</span> {{.Name}}</div>
        <div class="row"><span class="label">Email:</span> {{.Email}}</div>
        <div class="row"><span class="label">Phone:</span> {{.Phone}}</div>
    </div>

    <div class="footer">
        <p>The lead has been forwarded to the CRM. Follow up within one business day.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"brochure_customer": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your Brochure Request</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Thank You for Your Interest</h2>
    </div>

    <div class="section">
        <p>Dear {{.Name}},</p>
        <p>Thank you for requesting the brochure for the <strong>{{.CarModel}}</strong>. Our team will send it to this email address shortly.</p>
        <div class="row"><span class="label">Reference Number:</span> {{.ReferenceNumber}}</div>
        <div class="row"><span class="label">Requested Model:</span> {{.CarModel}}</div>
    </div>

    <p>Want to experience the {{.CarModel}} in person? Reply to this email or call us to arrange a test drive.</p>

    <div class="footer">
        <p>This is an automated confirmation sent on {{.SubmittedAt}}.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"testdrive_admin": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Test Drive Booking</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .ref { font-size: 18px; font-weight: bold; color: #b01c2e; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Chery Bangladesh | Test Drive Booking</h2>
    </div>

    <div class="section">
        <div class="row"><span class="label">Reference Number:</span> <span class="ref">{{.ReferenceNumber}}</span></div>
        <div class="row"><span class="label">Submitted:</span> {{.SubmittedAt}}</div>
    </div>

    <div class="section">
        <h3>Test Drive Details</h3>
        <div class="row"><span class="label">Vehicle Model:</span> {{.VehicleModel}}</div>
        <div class="row"><span class="label">Preferred Date:</span> {{.PreferredDate}}</div>
        <div class="row"><span class="label">Preferred Time:</span> {{.PreferredTime}}</div>
        <div class="row"><span class="label">Showroom / Location:</span> {{.Location}}</div>
        <div class="row"><span class="label">Notes:</span> {{.Notes}}</div>
    </div>

    <div class="section">
        <h3>Customer Information</h3>
        <div class="row"><span class="label">Name:</span> {{.Name}}</div>
        <div class="row"><span class="label">Email:</span> {{.Email}}</div>
        <div class="row"><span class="label">Contact Number:</span> {{.ContactNumber}}</div>
    </div>

    <div class="footer">
        <p>Confirm vehicle availability before calling the customer back.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"testdrive_customer": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Test Drive Booking Confirmation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .ref-box { background-color: #f7f7f9; border: 1px dashed #b01c2e; padding: 12px; text-align: center; font-size: 18px; font-weight: bold; color: #b01c2e; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Your Test Drive is Booked</h2>
    </div>

    <div class="section">
        <p>Dear {{.Name}},</p>
        <p>Thank you for booking a test drive of the <strong>{{.VehicleModel}}</strong>. Your reference number:</p>
        <div class="ref-box">{{.ReferenceNumber}}</div>
    </div>

    <div class="section">
        <h3>Booking Summary</h3>
        <div class="row"><span class="label">Vehicle Model:</span> {{.VehicleModel}}</div>
        <div class="row"><span class="label">Preferred Date:</span> {{.PreferredDate}}</div>
        <div class="row"><span class="label">Preferred Time:</span> {{.PreferredTime}}</div>
        <div class="row"><span class="label">Showroom / Location:</span> {{.Location}}</div>
    </div>

    <p>Our team will call you at {{.ContactNumber}} to confirm the slot. Please bring a valid driving licence.</p>

    <div class="footer">
        <p>This is an automated confirmation sent on {{.SubmittedAt}}.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"complaint_admin": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Customer Complaint</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .notice { background-color: #f39c12; color: #ffffff; text-align: center; padding: 8px; font-weight: bold; }
        .section { margin: 20px 0; }
        .section h3 { color: #b01c2e; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>Chery Bangladesh | Customer Complaint</h2>
    </div>

    <div class="notice">REQUIRES RESPONSE WITHIN 48 HOURS</div>

    <div class="section">
        <div class="row"><span class="label">Reference Number:</span> {{.ReferenceNumber}}</div>
        <div class="row"><span class="label">Complaint Type:</span> {{.ComplaintType}}</div>
        <div class="row"><span class="label">Submitted:</span> {{.SubmittedAt}}</div>
    </div>

    <div class="section">
        <h3>Complaint Details</h3>
        <div class="row"><span class="label">Vehicle Model:</span> {{.VehicleModel}}</div>
        <div class="row"><span class="label">Registration Number:</span> {{.VehicleRegNumber}}</div>
        <div class="row"><span class="label">Description:</span> {{.Description}}</div>
    </div>

    <div class="section">
        <h3>Customer Information</h3>
        <div class="row"><span class="label">Name:</span> {{.Name}}</div>
        <div class="row"><span class="label">Email:</span> {{.Email}}</div>
        <div class="row"><span class="label">Contact Number:</span> {{.ContactNumber}}</div>
    </div>

    <div class="footer">
        <p>The complaint has been forwarded to the CRM under the customer's email address.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,

	"complaint_customer": `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>We Received Your Complaint</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a1a2e; color: #ffffff; padding: 16px 20px; }
        .header h2 { margin: 0; }
        .section { margin: 20px 0; }
        .row { padding: 4px 0; }
        .label { font-weight: bold; color: #555; display: inline-block; min-width: 170px; }
        .ref-box { background-color: #f7f7f9; border: 1px dashed #b01c2e; padding: 12px; text-align: center; font-size: 18px; font-weight: bold; color: #b01c2e; }
        .footer { margin-top: 30px; font-size: 12px; color: #7f8c8d; text-align: center; border-top: 1px solid #eee; padding-top: 10px; }
    </style>
</head>
<body>
    <div class="header">
        <h2>We Are On It</h2>
    </div>

    <div class="section">
        <p>Dear {{.Name}},</p>
        <p>We are sorry to hear about your experience. Your complaint has been logged and our customer care team will contact you within 48 hours. Your reference number:</p>
        <div class="ref-box">{{.ReferenceNumber}}</div>
        <div class="row"><span class="label">Complaint Type:</span> {{.ComplaintType}}</div>
    </div>

    <div class="footer">
        <p>This is an automated confirmation sent on {{.SubmittedAt}}.</p>
        <p>© {{.Year}} Chery Bangladesh. All rights reserved.</p>
    </div>
</body>
</html>`,
}

var parsedTemplates = map[string]*template.Template{}

func init() {
	for name, tmpl := range emailTemplates {
		parsedTemplates[name] = template.Must(template.New(name).Parse(tmpl))
	}
}

// RenderEmail executes the named embedded template against data and returns
// the HTML document. Pure string construction, no I/O.
func RenderEmail(name string, data interface{}) (string, error) {
	tmpl, ok := parsedTemplates[name]
	if !ok {
		return "", fmt.Errorf("template '%s' not found", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("error executing template '%s': %w", name, err)
	}
	return body.String(), nil
}
