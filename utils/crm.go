package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/oauth2"
)

const (
	// Refresh the cached access token five minutes before the provider's
	// stated expiry so an in-flight request never crosses the boundary.
	tokenExpiryMargin = 5 * time.Minute

	crmRequestTimeout = 10 * time.Second

	// Default region for normalizing contact numbers submitted without a
	// country prefix.
	phoneRegion = "BD"
)

// CRMLead is the normalized lead forwarded to the remote CRM.
type CRMLead struct {
	Name         string
	Email        string
	Phone        string
	VehicleModel string
	Source       string
	Description  string
	IPAddress    string
	UserAgent    string
}

// SyncResult reports the outcome of a best-effort CRM sync. A failed sync is
// data, not an error: the primary notification path must not be affected.
type SyncResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action,omitempty"` // "created" or "updated"
	Error   string `json:"error,omitempty"`
}

// LeadSyncer forwards a lead to the CRM.
type LeadSyncer interface {
	SyncLead(ctx context.Context, lead CRMLead) SyncResult
}

// CRMClient talks to the CRM REST API. The CRM keys leads by email: sync
// searches first and then creates or updates. Search-then-write is not
// atomic; two concurrent submissions from the same address can still race
// into duplicate remote records, which is acceptable at this volume.
type CRMClient struct {
	httpClient *http.Client
	apiBase    string
}

func NewCRMClient(clientID, clientSecret, refreshToken, tokenURL, apiBase string) *CRMClient {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	// The token source is the only process-wide mutable state in the core:
	// an access token cached for the process lifetime and refreshed lazily
	// from the long-lived refresh token. ReuseTokenSourceWithExpiry
	// serializes concurrent refreshes and backdates expiry by the margin.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: crmRequestTimeout})
	src := oauth2.ReuseTokenSourceWithExpiry(nil,
		conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}),
		tokenExpiryMargin)

	client := oauth2.NewClient(ctx, src)
	client.Timeout = crmRequestTimeout

	return &CRMClient{
		httpClient: client,
		apiBase:    strings.TrimRight(apiBase, "/"),
	}
}

type remoteLead struct {
	ID          string `json:"id"`
	Description string `json:"Description"`
}

type searchResponse struct {
	Data []remoteLead `json:"data"`
}

// SyncLead looks the submitter up by email and either appends to the
// existing remote record or creates a new one. It never returns an error:
// failures are logged and reported in the result so handlers can treat the
// sync as a side channel.
func (c *CRMClient) SyncLead(ctx context.Context, lead CRMLead) SyncResult {
	existing, err := c.searchLeadByEmail(ctx, lead.Email)
	if err != nil {
		LogError("crm_search_failed", err, map[string]interface{}{
			"email":  lead.Email,
			"source": lead.Source,
		})
		return SyncResult{Success: false, Error: err.Error()}
	}

	if existing != nil {
		if err := c.updateLead(ctx, existing, lead); err != nil {
			LogError("crm_update_failed", err, map[string]interface{}{
				"email":   lead.Email,
				"lead_id": existing.ID,
			})
			return SyncResult{Success: false, Error: err.Error()}
		}
		return SyncResult{Success: true, Action: "updated"}
	}

	if err := c.createLead(ctx, lead); err != nil {
		LogError("crm_create_failed", err, map[string]interface{}{
			"email":  lead.Email,
			"source": lead.Source,
		})
		return SyncResult{Success: false, Error: err.Error()}
	}
	return SyncResult{Success: true, Action: "created"}
}

func (c *CRMClient) searchLeadByEmail(ctx context.Context, email string) (*remoteLead, error) {
	criteria := url.QueryEscape(fmt.Sprintf("(Email:equals:%s)", email))
	endpoint := fmt.Sprintf("%s/Leads/search?criteria=%s", c.apiBase, criteria)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lead search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("lead search returned %d: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

func (c *CRMClient) createLead(ctx context.Context, lead CRMLead) error {
	first, last := splitName(lead.Name)
	fields := map[string]interface{}{
		"First_Name":  first,
		"Last_Name":   last,
		"Email":       lead.Email,
		"Phone":       normalizePhone(lead.Phone),
		"Lead_Source": lead.Source,
		"Description": descriptionEntry(lead, time.Now()),
	}
	if lead.VehicleModel != "" {
		fields["Vehicle_Model"] = lead.VehicleModel
	}
	if lead.IPAddress != "" {
		fields["IP_Address"] = lead.IPAddress
	}
	if lead.UserAgent != "" {
		fields["User_Agent"] = lead.UserAgent
	}

	return c.writeLead(ctx, http.MethodPost, c.apiBase+"/Leads", fields)
}

// updateLead appends to the remote description log and refreshes a small
// whitelist of fields; everything else on the record is left alone.
func (c *CRMClient) updateLead(ctx context.Context, existing *remoteLead, lead CRMLead) error {
	entry := descriptionEntry(lead, time.Now())
	description := entry
	if existing.Description != "" {
		description = existing.Description + "\n\n---\n" + entry
	}

	fields := map[string]interface{}{
		"Description": description,
		"Phone":       normalizePhone(lead.Phone),
		"Lead_Source": lead.Source,
	}

	return c.writeLead(ctx, http.MethodPut, fmt.Sprintf("%s/Leads/%s", c.apiBase, existing.ID), fields)
}

func (c *CRMClient) writeLead(ctx context.Context, method, endpoint string, fields map[string]interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{
		"data": []map[string]interface{}{fields},
	})
	if err != nil {
		return fmt.Errorf("encoding lead payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building lead request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lead write failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("lead write returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// descriptionEntry builds one timestamped line of the remote lead's
// append-only description log.
func descriptionEntry(lead CRMLead, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", now.Format("2006-01-02 15:04"), lead.Source)
	if lead.VehicleModel != "" {
		fmt.Fprintf(&b, " | Vehicle: %s", lead.VehicleModel)
	}
	if lead.Description != "" {
		fmt.Fprintf(&b, "\n%s", lead.Description)
	}
	return b.String()
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", "Unknown"
	case 1:
		return "", parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// normalizePhone formats the contact number as E.164 when it parses,
// otherwise passes the raw input through.
func normalizePhone(raw string) string {
	if raw == "" {
		return raw
	}
	num, err := phonenumbers.Parse(raw, phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
