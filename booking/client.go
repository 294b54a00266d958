// Package booking is the thin client for the external reservation API.
// It owns the wire shapes of the five endpoints and nothing else; all
// decision logic lives with the caller.
package booking

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
)

const channelCode = "ONLINE"

// maxErrorDetail caps how much of an error response body is surfaced to the user.
const maxErrorDetail = 200

// APIError is a non-2xx response from the booking API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking api error %d: %s", e.Status, e.Detail)
}

// Slot is one entry of an availability search result.
type Slot struct {
	Time      string `json:"time"` // HH:MM:SS
	Available bool   `json:"available"`
}

// AvailabilityResult is the response of an availability search.
type AvailabilityResult struct {
	AvailableSlots []Slot         `json:"available_slots"`
	Raw            map[string]any `json:"-"` // Full decoded response, echoed to clients
}

// OpenTimes returns the times marked available, in response order.
func (r *AvailabilityResult) OpenTimes() []string {
	var times []string
	for _, s := range r.AvailableSlots {
		if s.Available {
			times = append(times, s.Time)
		}
	}
	return times
}

// Contains reports whether the given HH:MM:SS time is open.
func (r *AvailabilityResult) Contains(t string) bool {
	for _, s := range r.AvailableSlots {
		if s.Available && s.Time == t {
			return true
		}
	}
	return false
}

// CreateRequest carries everything needed to create a booking.
type CreateRequest struct {
	VisitDate       string // YYYY-MM-DD
	VisitTime       string // HH:MM:SS
	PartySize       int
	SpecialRequests string
	FirstName       string
	Surname         string
	Email           string
	Mobile          string
}

// Patch is a partial booking update; zero-valued fields are omitted.
type Patch struct {
	VisitDate string
	VisitTime string
	PartySize int
}

// Client talks to the reservation API with bearer auth and form-encoded bodies.
type Client struct {
	baseURL    string
	microsite  string
	token      string
	httpClient *http.Client
	log        *logging.Logger
}

// NewClient creates a booking API client from config.
func NewClient(cfg *config.Config, log *logging.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL(),
		microsite:  cfg.Restaurant,
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		log:        log.Sub("booking"),
	}
}

// SearchAvailability queries open slots for a date and party size.
func (c *Client) SearchAvailability(ctx context.Context, visitDate string, partySize int) (*AvailabilityResult, error) {
	form := url.Values{}
	form.Set("VisitDate", visitDate)
	form.Set("PartySize", strconv.Itoa(partySize))
	form.Set("ChannelCode", channelCode)

	body, err := c.do(ctx, http.MethodPost, "/AvailabilitySearch", form)
	if err != nil {
		return nil, err
	}

	var result AvailabilityResult
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode availability response: %w", err)
	}
	if err := sonic.Unmarshal(body, &result.Raw); err != nil {
		return nil, fmt.Errorf("decode availability response: %w", err)
	}
	c.log.Debug().Str("date", visitDate).Int("party", partySize).
		Int("slots", len(result.AvailableSlots)).Msg("availability search")
	return &result, nil
}

// CreateBooking creates a reservation and returns the decoded response plus
// the booking reference.
func (c *Client) CreateBooking(ctx context.Context, req CreateRequest) (map[string]any, string, error) {
	form := url.Values{}
	form.Set("VisitDate", req.VisitDate)
	form.Set("VisitTime", req.VisitTime)
	form.Set("PartySize", strconv.Itoa(req.PartySize))
	form.Set("ChannelCode", channelCode)
	form.Set("SpecialRequests", req.SpecialRequests)
	form.Set("Customer[FirstName]", req.FirstName)
	form.Set("Customer[Surname]", req.Surname)
	form.Set("Customer[Email]", req.Email)
	form.Set("Customer[Mobile]", req.Mobile)

	body, err := c.do(ctx, http.MethodPost, "/BookingWithStripeToken", form)
	if err != nil {
		return nil, "", err
	}

	var data map[string]any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return nil, "", fmt.Errorf("decode booking response: %w", err)
	}
	ref, _ := data["booking_reference"].(string)
	c.log.Info().Str("reference", ref).Str("date", req.VisitDate).
		Str("time", req.VisitTime).Int("party", req.PartySize).Msg("booking created")
	return data, ref, nil
}

// GetBooking fetches the booking record for a reference.
func (c *Client) GetBooking(ctx context.Context, reference string) (map[string]any, error) {
	body, err := c.do(ctx, http.MethodGet, "/Booking/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}
	return data, nil
}

// UpdateBooking patches a booking with the non-zero fields of the patch.
func (c *Client) UpdateBooking(ctx context.Context, reference string, patch Patch) (map[string]any, error) {
	form := url.Values{}
	if patch.VisitDate != "" {
		form.Set("VisitDate", patch.VisitDate)
	}
	if patch.VisitTime != "" {
		form.Set("VisitTime", patch.VisitTime)
	}
	if patch.PartySize > 0 {
		form.Set("PartySize", strconv.Itoa(patch.PartySize))
	}

	body, err := c.do(ctx, http.MethodPatch, "/Booking/"+url.PathEscape(reference), form)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}
	c.log.Info().Str("reference", reference).Msg("booking updated")
	return data, nil
}

// CancelBooking cancels a booking with the given reason id.
func (c *Client) CancelBooking(ctx context.Context, reference string, reasonID int) (map[string]any, error) {
	form := url.Values{}
	form.Set("micrositeName", c.microsite)
	form.Set("bookingReference", reference)
	form.Set("cancellationReasonId", strconv.Itoa(reasonID))

	body, err := c.do(ctx, http.MethodPost, "/Booking/"+url.PathEscape(reference)+"/Cancel", form)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode cancellation response: %w", err)
	}
	c.log.Info().Str("reference", reference).Msg("booking cancelled")
	return data, nil
}

// Ping probes the service root, used by the /status endpoint and the
// terminal client's status command.
func (c *Client) Ping(ctx context.Context) error {
	root, err := serviceRoot(c.baseURL)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// do issues one form-encoded request and returns the response body, or an
// *APIError for non-2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := string(body)
		if len(detail) > maxErrorDetail {
			detail = detail[:maxErrorDetail]
		}
		return nil, &APIError{Status: resp.StatusCode, Detail: detail}
	}
	return body, nil
}

// serviceRoot strips the API path from the base URL, leaving scheme://host.
func serviceRoot(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.Path = ""
	u.RawQuery = ""
	return u.String(), nil
}
