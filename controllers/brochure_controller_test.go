package controller

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cherybd/utils"
)

var brochureRefPattern = regexp.MustCompile(`BRO-\d{8}-\d{4}`)

func newBrochureApp(mailer *stubMailer, syncer *stubSyncer) *fiber.App {
	app := fiber.New()
	brc := NewBrochureController(mailer, syncer, testLogger(),
		[]string{"sales@cherybd.com", "marketing@cherybd.com"})
	app.Post("/api/brochure-request", brc.CreateBrochureRequest)
	return app
}

func validBrochurePayload() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Farhana Akter",
		"email":    "farhana@example.com",
		"phone":    "01812345678",
		"carModel": "Arrizo 6",
	}
}

func TestCreateBrochureRequest_SendsMailsAndSyncsLead(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newBrochureApp(mailer, syncer)

	resp := postJSON(t, app, "/api/brochure-request", validBrochurePayload())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	require.Len(t, mailer.sent, 2)
	admin := mailer.sent[0]
	assert.Equal(t, []string{"sales@cherybd.com", "marketing@cherybd.com"}, admin.To)
	assert.Contains(t, admin.Subject, "Arrizo 6")
	assert.Regexp(t, brochureRefPattern, admin.Subject)
	assert.Contains(t, admin.HTML, "Arrizo 6")
	assert.Contains(t, mailer.sent[1].HTML, "Arrizo 6")

	require.Len(t, syncer.leads, 1)
	lead := syncer.leads[0]
	assert.Equal(t, "farhana@example.com", lead.Email)
	assert.Equal(t, "Arrizo 6", lead.VehicleModel)
	assert.Equal(t, "Website - Brochure Request", lead.Source)
	assert.NotEmpty(t, lead.IPAddress)
}

func TestCreateBrochureRequest_UsesLegacyErrorEnvelope(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	app := newBrochureApp(mailer, syncer)

	payload := validBrochurePayload()
	delete(payload, "carModel")

	resp := postJSON(t, app, "/api/brochure-request", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Missing required fields", body["error"])
	_, hasSuccess := body["success"]
	assert.False(t, hasSuccess, "failures on this endpoint carry only the error key")

	assert.Empty(t, mailer.sent)
	assert.Empty(t, syncer.leads)
}

func TestCreateBrochureRequest_CRMFailureDoesNotFailRequest(t *testing.T) {
	mailer := newStubMailer()
	syncer := newStubSyncer()
	syncer.result = utils.SyncResult{Success: false, Error: "token refresh failed"}
	app := newBrochureApp(mailer, syncer)

	resp := postJSON(t, app, "/api/brochure-request", validBrochurePayload())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	require.Len(t, mailer.sent, 2)
}

func TestCreateBrochureRequest_MailFailureSkipsCRM(t *testing.T) {
	mailer := newStubMailer()
	mailer.failAfter = 0
	syncer := newStubSyncer()
	app := newBrochureApp(mailer, syncer)

	resp := postJSON(t, app, "/api/brochure-request", validBrochurePayload())
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Failed to process brochure request", body["error"])
	assert.Empty(t, syncer.leads, "lead sync runs only after the notifications succeed")
}
