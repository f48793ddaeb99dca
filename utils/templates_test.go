package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingData() BookingEmailData {
	return BookingEmailData{
		Name:             "Jane Doe",
		Email:            "jane@example.com",
		ContactNumber:    "01712345678",
		VehicleModel:     "Tiggo 8 Pro",
		VehicleRegNumber: "DHK-1234",
		ServiceType:      "Periodic Maintenance",
		PreferredDate:    "2026-09-05",
		PreferredTime:    "10:30 AM",
		Notes:            NoNotesFallback,
		ReferenceNumber:  "SRV-20260829-0042",
		SubmittedAt:      "Saturday, 29 August 2026 at 2:30 PM",
		Year:             2026,
	}
}

func TestRenderEmail_Deterministic(t *testing.T) {
	first, err := RenderEmail("booking_admin", bookingData())
	require.NoError(t, err)
	second, err := RenderEmail("booking_admin", bookingData())
	require.NoError(t, err)

	assert.Equal(t, first, second, "rendering the same input twice must be byte-identical")
}

func TestRenderEmail_UnknownTemplate(t *testing.T) {
	_, err := RenderEmail("no_such_template", bookingData())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRenderEmail_EscapesUntrustedInput(t *testing.T) {
	data := bookingData()
	data.Name = `<script>alert("x")</script>`

	html, err := RenderEmail("booking_admin", data)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderEmail_ReferenceInBothVariants(t *testing.T) {
	data := AssistanceEmailData{
		Name:             "Jane Doe",
		Email:            "jane@x.com",
		ContactNumber:    "01712345678",
		VehicleModel:     "Tiggo 8",
		VehicleRegNumber: "DHK-1234",
		AssistanceType:   "Flat Tire",
		Location:         "Gulshan, Dhaka",
		Description:      NoNotesFallback,
		ReferenceNumber:  "RSA-202608291430-0007-GUL",
		Hotline:          "+880 9666 700 700",
		SubmittedAt:      "Saturday, 29 August 2026 at 2:30 PM",
		Year:             2026,
	}

	adminHTML, err := RenderEmail("assistance_admin", data)
	require.NoError(t, err)
	customerHTML, err := RenderEmail("assistance_customer", data)
	require.NoError(t, err)

	assert.Contains(t, adminHTML, data.ReferenceNumber)
	assert.Contains(t, customerHTML, data.ReferenceNumber)
	assert.Contains(t, adminHTML, "URGENT")
	// html/template escapes "+" to &#43;, which mail clients render back
	// as the literal plus sign.
	assert.Contains(t, customerHTML, "&#43;880 9666 700 700")
	assert.NotContains(t, customerHTML, "+880")
}

func TestRenderEmail_BrochureContainsModel(t *testing.T) {
	data := BrochureEmailData{
		Name:            "Karim Rahman",
		Email:           "karim@example.com",
		Phone:           "01812345678",
		CarModel:        "Arrizo 6",
		ReferenceNumber: "BRO-20260829-1234",
		SubmittedAt:     "Saturday, 29 August 2026 at 2:30 PM",
		Year:            2026,
	}

	for _, name := range []string{"brochure_admin", "brochure_customer"} {
		html, err := RenderEmail(name, data)
		require.NoError(t, err)
		assert.Contains(t, html, "Arrizo 6", "template %s should include the requested model", name)
	}
}

func TestRenderEmail_AllTemplatesSelfContained(t *testing.T) {
	for name := range emailTemplates {
		tmpl := emailTemplates[name]
		assert.True(t, strings.Contains(tmpl, "<style>"), "template %s should carry inline styles", name)
		assert.False(t, strings.Contains(tmpl, "stylesheet"), "template %s must not reference external stylesheets", name)
	}
}
