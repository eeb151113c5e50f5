// Package client is a typed Go client for the perimeter console REST API.
// Every method unwraps the {code, message, data} envelope; a non-zero code
// comes back as *envelope.Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tfortune6/perimeter-security/envelope"
	"github.com/tfortune6/perimeter-security/models"
)

// Client talks to one backend instance
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for baseURL, e.g. "http://localhost:3001"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use
func (c *Client) Token() string {
	return c.token
}

// AlarmFilter mirrors the GET /api/alarms query
type AlarmFilter struct {
	Query     string
	Level     string
	StartDate string
	EndDate   string
	Page      int
	PageSize  int
}

func (f AlarmFilter) values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("query", f.Query)
	set("level", f.Level)
	set("startDate", f.StartDate)
	set("endDate", f.EndDate)
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	return v
}

// Login exchanges credentials for the session token and keeps it for
// subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var res models.LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", nil, body, &res); err != nil {
		return "", err
	}
	c.token = res.Token
	return res.Token, nil
}

// Me returns the operator profile
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SystemStatus returns the system status
func (c *Client) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	var s models.SystemStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/system/status", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateCurrentSource switches the current source
func (c *Client) UpdateCurrentSource(ctx context.Context, sourceID string) (*models.SystemStatus, error) {
	var s models.SystemStatus
	body := map[string]string{"currentSourceId": sourceID}
	if err := c.doJSON(ctx, http.MethodPut, "/api/system/status", nil, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Sources lists the selectable sources
func (c *Client) Sources(ctx context.Context) ([]models.Source, error) {
	var out []models.Source
	if err := c.doJSON(ctx, http.MethodGet, "/api/sources", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardEvents fetches a fresh batch of live events. limit <= 0 uses the
// server default.
func (c *Client) DashboardEvents(ctx context.Context, limit int) ([]models.LiveEvent, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []models.LiveEvent
	if err := c.doJSON(ctx, http.MethodGet, "/api/dashboard/events", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Overlays returns the detection boxes of sourceID, or of the current
// source when sourceID is empty.
func (c *Client) Overlays(ctx context.Context, sourceID string) (*models.Overlay, error) {
	var o models.Overlay
	if err := c.doJSON(ctx, http.MethodGet, "/api/dashboard/overlays", sourceQuery(sourceID), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Zones lists the zones of sourceID
func (c *Client) Zones(ctx context.Context, sourceID string) ([]models.Zone, error) {
	var out []models.Zone
	if err := c.doJSON(ctx, http.MethodGet, "/api/zones", sourceQuery(sourceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateZone creates a zone on sourceID
func (c *Client) CreateZone(ctx context.Context, sourceID string, p models.ZonePatch) (*models.Zone, error) {
	var z models.Zone
	if err := c.doJSON(ctx, http.MethodPost, "/api/zones", sourceQuery(sourceID), p, &z); err != nil {
		return nil, err
	}
	return &z, nil
}

// UpdateZone patches a zone
func (c *Client) UpdateZone(ctx context.Context, id string, p models.ZonePatch) (*models.Zone, error) {
	var z models.Zone
	if err := c.doJSON(ctx, http.MethodPut, "/api/zones/"+url.PathEscape(id), nil, p, &z); err != nil {
		return nil, err
	}
	return &z, nil
}

// DeleteZone removes a zone
func (c *Client) DeleteZone(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/zones/"+url.PathEscape(id), nil, nil, nil)
}

// SaveConfig acknowledges the zone configuration of sourceID
func (c *Client) SaveConfig(ctx context.Context, sourceID string) (*models.ConfigSaveResult, error) {
	var res models.ConfigSaveResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/config/save", sourceQuery(sourceID), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Alarms returns one page of alarm summaries
func (c *Client) Alarms(ctx context.Context, f AlarmFilter) (*models.AlarmPage, error) {
	var page models.AlarmPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/alarms", f.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Alarm returns the full alarm. id may carry the '#' display prefix.
func (c *Client) Alarm(ctx context.Context, id string) (*models.Alarm, error) {
	var a models.Alarm
	if err := c.doJSON(ctx, http.MethodGet, "/api/alarms/"+url.PathEscape(id), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ResolveAlarm marks an alarm done
func (c *Client) ResolveAlarm(ctx context.Context, id string) (*models.Alarm, error) {
	var a models.Alarm
	if err := c.doJSON(ctx, http.MethodPatch, "/api/alarms/"+url.PathEscape(id)+"/resolve", nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Videos lists videos whose name contains keyword
func (c *Client) Videos(ctx context.Context, keyword string) ([]models.Video, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	var out []models.Video
	if err := c.doJSON(ctx, http.MethodGet, "/api/videos", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DemoVideo returns the demo video, or nil when no video exists
func (c *Client) DemoVideo(ctx context.Context) (*models.Video, error) {
	var v *models.Video
	if err := c.doJSON(ctx, http.MethodGet, "/api/videos/demo", nil, nil, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// UploadVideo sends filename and its content as a multipart upload. A nil
// content reader sends no file part.
func (c *Client) UploadVideo(ctx context.Context, filename string, content io.Reader) (*models.Video, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if content != nil {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, content); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	var v models.Video
	if err := c.do(ctx, http.MethodPost, "/api/videos/upload", nil, &body, writer.FormDataContentType(), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// SetDemo flags id as the demo video
func (c *Client) SetDemo(ctx context.Context, id string) (*models.Video, error) {
	var v models.Video
	if err := c.doJSON(ctx, http.MethodPost, "/api/videos/"+url.PathEscape(id)+"/set-demo", nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVideo removes a video
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/videos/"+url.PathEscape(id), nil, nil, nil)
}

func sourceQuery(sourceID string) url.Values {
	q := url.Values{}
	if sourceID != "" {
		q.Set("sourceId", sourceID)
	}
	return q
}

func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, in, out any) error {
	if in == nil {
		return c.do(ctx, method, path, q, nil, "", out)
	}
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, method, path, q, bytes.NewReader(data), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	return envelope.Decode(respBody, out)
}
