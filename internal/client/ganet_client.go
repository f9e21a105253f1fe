package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tourze/ganet-tracking-service/internal/domain"
)

const defaultRequestTimeout = 10 * time.Second

// GANetClient talks to the GA-Net partner HTTP API. Only the slices the
// tracking core consumes are implemented: transaction and campaign listings.
type GANetClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGANetClient(baseURL, apiKey string) *GANetClient {
	return &GANetClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

type transactionPayload struct {
	OrderID      string `json:"order_id"`
	WebsiteID    string `json:"website_id"`
	TotalPrice   string `json:"total_price"`
	Commission   string `json:"commission"`
	CampaignID   string `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	Status       string `json:"status"`
	Currency     string `json:"currency"`
	UserID       string `json:"user_id"`
	Tag          string `json:"tag"`
	OrderTime    string `json:"order_time"`
}

type campaignPayload struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type listResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
}

func (c *GANetClient) GetTransactions(ctx context.Context, since time.Time) ([]*domain.Transaction, error) {
	query := url.Values{}
	if !since.IsZero() {
		query.Set("since", since.UTC().Format(time.RFC3339))
	}

	var payload listResponse[transactionPayload]
	if err := c.get(ctx, "/api/transactions", query, &payload); err != nil {
		return nil, err
	}
	if payload.Code != 0 {
		return nil, fmt.Errorf("ga-net transactions: code %d: %s", payload.Code, payload.Message)
	}

	transactions := make([]*domain.Transaction, 0, len(payload.Data))
	for _, item := range payload.Data {
		transactions = append(transactions, toDomainTransaction(item))
	}
	return transactions, nil
}

func (c *GANetClient) GetCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	var payload listResponse[campaignPayload]
	if err := c.get(ctx, "/api/campaigns", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Code != 0 {
		return nil, fmt.Errorf("ga-net campaigns: code %d: %s", payload.Code, payload.Message)
	}

	campaigns := make([]*domain.Campaign, 0, len(payload.Data))
	for _, item := range payload.Data {
		campaigns = append(campaigns, &domain.Campaign{
			ID:        item.CampaignID,
			Name:      item.Name,
			StartDate: parseTimePtr(item.StartDate),
			EndDate:   parseTimePtr(item.EndDate),
		})
	}
	return campaigns, nil
}

func (c *GANetClient) get(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build ga-net request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ga-net request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ga-net request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ga-net response %s: %w", path, err)
	}
	return nil
}

func toDomainTransaction(item transactionPayload) *domain.Transaction {
	tx := &domain.Transaction{
		OrderID:      item.OrderID,
		WebsiteID:    item.WebsiteID,
		TotalPrice:   item.TotalPrice,
		Commission:   item.Commission,
		CampaignID:   item.CampaignID,
		CampaignName: item.CampaignName,
		Status:       toStatus(item.Status),
		Currency:     item.Currency,
		Tag:          item.Tag,
	}
	if item.UserID != "" {
		userID := item.UserID
		tx.UserID = &userID
	}
	if orderTime := parseTimePtr(item.OrderTime); orderTime != nil {
		tx.OrderTime = *orderTime
	}
	return tx
}

func toStatus(raw string) domain.TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confirmed", "approved":
		return domain.StatusConfirmed
	case "rejected", "declined":
		return domain.StatusRejected
	default:
		return domain.StatusPending
	}
}

func parseTimePtr(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &parsed
}
