package controller

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var complaintRefPattern = regexp.MustCompile(`^CMP-\d{8}-\d{4}-[A-Z]{3}$`)

func newComplaintApp(mailer *stubMailer, syncer *stubSyncer) *fiber.App {
	app := fiber.New()
	cc := NewComplaintController(mailer, syncer, testLogger(),
		[]string{"care@cherybd.com", "manager@cherybd.com"})
	app.Post("/api/complaints", cc.CreateComplaint)
	return app
}

func validComplaintPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Farhana Akter",
		"email":         "farhana@example.com",
		"contactNumber": "01812345678",
		"complaintType": "Service Quality",
		"description":   "The promised delivery date was missed twice.",
	}
}

func TestCreateComplaint_ReturnsReferenceWithNameFragment(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newComplaintApp(mailer, syncer)

	resp := postJSON(t, app, "/api/complaints", validComplaintPayload())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "48 hours")

	ref, _ := body["referenceNumber"].(string)
	assert.Regexp(t, complaintRefPattern, ref)
	assert.Contains(t, ref, "-FAR", "fragment comes from the complainant's name")

	require.Len(t, mailer.sent, 2)
	admin := mailer.sent[0]
	assert.Equal(t, []string{"care@cherybd.com", "manager@cherybd.com"}, admin.To)
	assert.Contains(t, admin.Subject, "Service Quality")
	assert.Contains(t, admin.Subject, ref)

	require.Len(t, syncer.leads, 1)
	lead := syncer.leads[0]
	assert.Equal(t, "Website - Complaint", lead.Source)
	assert.Contains(t, lead.Description, "Service Quality: The promised delivery date was missed twice.")
}

func TestCreateComplaint_OptionalVehicleFieldsFallback(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newComplaintApp(mailer, syncer)

	resp := postJSON(t, app, "/api/complaints", validComplaintPayload())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, mailer.sent, 2)
	assert.Contains(t, mailer.sent[0].HTML, "Not provided")
}

func TestCreateComplaint_PayloadAdminEmailsOverrideDefaults(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newComplaintApp(mailer, syncer)

	payload := validComplaintPayload()
	payload["adminEmail1"] = "escalations@cherybd.com"
	payload["adminEmail2"] = "director@cherybd.com"

	resp := postJSON(t, app, "/api/complaints", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, []string{"escalations@cherybd.com", "director@cherybd.com"}, mailer.sent[0].To)
}

func TestCreateComplaint_SecondAdminEmailAloneOverridesDefaults(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newComplaintApp(mailer, syncer)

	payload := validComplaintPayload()
	payload["adminEmail2"] = "director@cherybd.com"

	resp := postJSON(t, app, "/api/complaints", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, []string{"director@cherybd.com"}, mailer.sent[0].To)
}

func TestCreateComplaint_MissingDescriptionRejected(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newComplaintApp(mailer, syncer)

	payload := validComplaintPayload()
	delete(payload, "description")

	resp := postJSON(t, app, "/api/complaints", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Please check all fields and try again.", body["message"])
	assert.Empty(t, mailer.sent)
	assert.Empty(t, syncer.leads)
}
