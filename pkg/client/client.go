package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/pkg/utils"
)

const walletHeader = "X-Wallet-Address"

// APIError is a non-2xx response. Message is the server's {"error"} text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a typed client for the marketplace API
type Client struct {
	baseURL    string
	httpClient *http.Client
	wallet     string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithWalletAddress sends address as the caller identity
func WithWalletAddress(address string) Option {
	return func(c *Client) { c.wallet = address }
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WalletAddress returns the identity the client sends
func (c *Client) WalletAddress() string {
	return c.wallet
}

// SetWalletAddress changes the identity sent on later requests
func (c *Client) SetWalletAddress(address string) {
	c.wallet = address
}

// OfferQuery filters ListOffers and OfferMarkers
type OfferQuery struct {
	Type     entities.OfferType
	IsActive *bool
	UserID   *uuid.UUID
}

func (q OfferQuery) values() url.Values {
	v := url.Values{}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*q.IsActive))
	}
	if q.UserID != nil {
		v.Set("userId", q.UserID.String())
	}
	return v
}

func (c *Client) Connect(ctx context.Context, address string) (*entities.User, error) {
	var user entities.User
	err := c.do(ctx, http.MethodPost, "/api/auth/connect", nil, entities.ConnectWalletInput{WalletAddress: address}, &user)
	return &user, err
}

func (c *Client) Me(ctx context.Context) (*entities.User, error) {
	var user entities.User
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &user)
	return &user, err
}

func (c *Client) UpdateMe(ctx context.Context, input *entities.UpdateProfileInput) (*entities.User, error) {
	var user entities.User
	err := c.do(ctx, http.MethodPatch, "/api/users/me", nil, input, &user)
	return &user, err
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	err := c.do(ctx, http.MethodGet, "/api/users/"+id.String(), nil, nil, &user)
	return &user, err
}

func (c *Client) ListOffers(ctx context.Context, q OfferQuery) ([]*entities.Offer, error) {
	var offers []*entities.Offer
	err := c.do(ctx, http.MethodGet, "/api/offers", q.values(), nil, &offers)
	return offers, err
}

func (c *Client) OfferMarkers(ctx context.Context, q OfferQuery) ([]*entities.OfferMarker, error) {
	var markers []*entities.OfferMarker
	err := c.do(ctx, http.MethodGet, "/api/offers/map", q.values(), nil, &markers)
	return markers, err
}

func (c *Client) GetOffer(ctx context.Context, id uuid.UUID) (*entities.Offer, error) {
	var offer entities.Offer
	err := c.do(ctx, http.MethodGet, "/api/offers/"+id.String(), nil, nil, &offer)
	return &offer, err
}

func (c *Client) CreateOffer(ctx context.Context, input *entities.CreateOfferInput) (*entities.Offer, error) {
	var offer entities.Offer
	err := c.do(ctx, http.MethodPost, "/api/offers", nil, input, &offer)
	return &offer, err
}

func (c *Client) UpdateOffer(ctx context.Context, id uuid.UUID, input *entities.UpdateOfferInput) (*entities.Offer, error) {
	var offer entities.Offer
	err := c.do(ctx, http.MethodPatch, "/api/offers/"+id.String(), nil, input, &offer)
	return &offer, err
}

func (c *Client) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/offers/"+id.String(), nil, nil, nil)
}

func (c *Client) ListDeals(ctx context.Context, status entities.DealStatus) ([]*entities.Deal, error) {
	v := url.Values{}
	if status != "" {
		v.Set("status", string(status))
	}
	var deals []*entities.Deal
	err := c.do(ctx, http.MethodGet, "/api/deals", v, nil, &deals)
	return deals, err
}

func (c *Client) GetDeal(ctx context.Context, id uuid.UUID) (*entities.Deal, error) {
	var deal entities.Deal
	err := c.do(ctx, http.MethodGet, "/api/deals/"+id.String(), nil, nil, &deal)
	return &deal, err
}

func (c *Client) CreateDeal(ctx context.Context, input *entities.CreateDealInput) (*entities.Deal, error) {
	var deal entities.Deal
	err := c.do(ctx, http.MethodPost, "/api/deals", nil, input, &deal)
	return &deal, err
}

func (c *Client) UpdateDeal(ctx context.Context, id uuid.UUID, input *entities.UpdateDealInput) (*entities.Deal, error) {
	var deal entities.Deal
	err := c.do(ctx, http.MethodPatch, "/api/deals/"+id.String(), nil, input, &deal)
	return &deal, err
}

func (c *Client) CreateReport(ctx context.Context, input *entities.CreateReportInput) (*entities.Report, error) {
	var report entities.Report
	err := c.do(ctx, http.MethodPost, "/api/reports", nil, input, &report)
	return &report, err
}

func (c *Client) AdminStats(ctx context.Context) (*entities.Stats, error) {
	var stats entities.Stats
	err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, nil, &stats)
	return &stats, err
}

func (c *Client) AdminReports(ctx context.Context, status entities.ReportStatus) ([]*entities.Report, error) {
	v := url.Values{}
	if status != "" {
		v.Set("status", string(status))
	}
	var reports []*entities.Report
	err := c.do(ctx, http.MethodGet, "/api/admin/reports", v, nil, &reports)
	return reports, err
}

func (c *Client) AdminAdvanceReport(ctx context.Context, id uuid.UUID, status entities.ReportStatus) (*entities.Report, error) {
	var report entities.Report
	err := c.do(ctx, http.MethodPatch, "/api/admin/reports/"+id.String(), nil, entities.AdvanceReportInput{Status: status}, &report)
	return &report, err
}

func (c *Client) AdminSuspendUser(ctx context.Context, id uuid.UUID, suspended bool) (*entities.User, error) {
	var user entities.User
	err := c.do(ctx, http.MethodPatch, "/api/admin/users/"+id.String()+"/suspend", nil, entities.SuspendUserInput{IsSuspended: &suspended}, &user)
	return &user, err
}

func (c *Client) AdminVerifyUser(ctx context.Context, id uuid.UUID, verified bool) (*entities.User, error) {
	var user entities.User
	err := c.do(ctx, http.MethodPatch, "/api/admin/users/"+id.String()+"/verify", nil, entities.VerifyUserInput{IsVerified: &verified}, &user)
	return &user, err
}

func (c *Client) AdminAuditLogs(ctx context.Context, page, limit int) (*utils.Page[*entities.AuditLog], error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	var out utils.Page[*entities.AuditLog]
	err := c.do(ctx, http.MethodGet, "/api/admin/audit-logs", v, nil, &out)
	return &out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.wallet != "" {
		req.Header.Set(walletHeader, c.wallet)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
