package controller

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDriveRefPattern = regexp.MustCompile(`TD-\d{6}-\d{4}`)

func newTestDriveApp(mailer *stubMailer, syncer *stubSyncer) *fiber.App {
	app := fiber.New()
	tc := NewTestDriveController(mailer, syncer, testLogger(),
		[]string{"sales@cherybd.com", "showroom@cherybd.com"})
	app.Post("/api/test-drive", tc.CreateTestDriveBooking)
	return app
}

func validTestDrivePayload() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Karim Rahman",
		"email":         "karim@example.com",
		"contactNumber": "01712345678",
		"vehicleModel":  "Tiggo 8",
		"preferredDate": "2026-09-10",
		"preferredTime": "3:00 PM",
		"location":      "Tejgaon Showroom, Dhaka",
	}
}

func TestCreateTestDriveBooking_SendsMailsAndSyncsLead(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newTestDriveApp(mailer, syncer)

	resp := postJSON(t, app, "/api/test-drive", validTestDrivePayload())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "test drive booking has been received")

	require.Len(t, mailer.sent, 2)
	admin := mailer.sent[0]
	assert.Equal(t, []string{"sales@cherybd.com", "showroom@cherybd.com"}, admin.To)
	assert.Regexp(t, testDriveRefPattern, admin.Subject)

	ref := testDriveRefPattern.FindString(admin.Subject)
	require.NotEmpty(t, ref)
	assert.Contains(t, mailer.sent[1].Subject, ref)

	require.Len(t, syncer.leads, 1)
	lead := syncer.leads[0]
	assert.Equal(t, "Website - Test Drive", lead.Source)
	assert.Equal(t, "Tiggo 8", lead.VehicleModel)
	assert.Contains(t, lead.Description, "Tejgaon Showroom, Dhaka")
	assert.Contains(t, lead.Description, "2026-09-10")
}

func TestCreateTestDriveBooking_ValidationFailureTouchesNothing(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newTestDriveApp(mailer, syncer)

	payload := validTestDrivePayload()
	payload["email"] = "not-an-email"

	resp := postJSON(t, app, "/api/test-drive", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Please check all fields and try again.", body["message"])
	assert.Empty(t, mailer.sent)
	assert.Empty(t, syncer.leads)
}

func TestCreateTestDriveBooking_AdminMailFailure(t *testing.T) {
	mailer := newStubMailer()
	mailer.failAfter = 0
	syncer := newStubSyncer()
	app := newTestDriveApp(mailer, syncer)

	resp := postJSON(t, app, "/api/test-drive", validTestDrivePayload())
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()

	assert.Empty(t, mailer.sent)
	assert.Empty(t, syncer.leads)
}
