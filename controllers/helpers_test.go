package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"cherybd/utils"
)

// stubMailer records outgoing mail and can be told to fail after a number
// of successful sends, so tests can break the customer mail while the admin
// mail goes through.
type stubMailer struct {
	sent      []utils.OutgoingMail
	failAfter int // fail on send number failAfter+1; -1 never fails
}

func newStubMailer() *stubMailer {
	return &stubMailer{failAfter: -1}
}

func (m *stubMailer) Send(mail utils.OutgoingMail) error {
	if m.failAfter >= 0 && len(m.sent) >= m.failAfter {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, mail)
	return nil
}

// stubSyncer records the leads it was asked to sync.
type stubSyncer struct {
	leads  []utils.CRMLead
	result utils.SyncResult
}

func newStubSyncer() *stubSyncer {
	return &stubSyncer{result: utils.SyncResult{Success: true, Action: "created"}}
}

func (s *stubSyncer) SyncLead(_ context.Context, lead utils.CRMLead) utils.SyncResult {
	s.leads = append(s.leads, lead)
	return s.result
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
