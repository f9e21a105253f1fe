package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tourze/ganet-tracking-service/internal/domain"
)

func TestGetTransactions(t *testing.T) {
	var gotPath, gotKey, gotSince string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotSince = r.URL.Query().Get("since")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": 0,
			"data": [
				{
					"order_id": "ord-1",
					"website_id": "site-1",
					"total_price": "125.50",
					"commission": "12.55",
					"campaign_id": "camp-1",
					"campaign_name": "Spring Sale",
					"status": "approved",
					"currency": "CNY",
					"user_id": "42",
					"tag": "abc123",
					"order_time": "2024-03-01T10:30:00Z"
				},
				{
					"order_id": "ord-2",
					"status": "declined",
					"total_price": "10.00"
				},
				{
					"order_id": "ord-3",
					"status": "something-new"
				}
			]
		}`))
	}))
	defer server.Close()

	cli := NewGANetClient(server.URL+"/", "secret-key")
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	transactions, err := cli.GetTransactions(context.Background(), since)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}

	if gotPath != "/api/transactions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotSince != "2024-03-01T00:00:00Z" {
		t.Errorf("since = %q", gotSince)
	}

	if len(transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(transactions))
	}

	first := transactions[0]
	if first.OrderID != "ord-1" || first.WebsiteID != "site-1" {
		t.Errorf("identity mismatch: %+v", first)
	}
	if first.TotalPrice != "125.50" || first.Commission != "12.55" {
		t.Errorf("amounts not kept verbatim: %q / %q", first.TotalPrice, first.Commission)
	}
	if first.Status != domain.StatusConfirmed {
		t.Errorf("approved must map to confirmed, got %s", first.Status)
	}
	if first.UserID == nil || *first.UserID != "42" {
		t.Errorf("user id = %v", first.UserID)
	}
	if !first.OrderTime.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("order time = %v", first.OrderTime)
	}

	if transactions[1].Status != domain.StatusRejected {
		t.Errorf("declined must map to rejected, got %s", transactions[1].Status)
	}
	if transactions[1].UserID != nil {
		t.Error("blank user id must stay nil")
	}
	if transactions[2].Status != domain.StatusPending {
		t.Errorf("unknown status must default to pending, got %s", transactions[2].Status)
	}
}

func TestGetTransactionsZeroSinceOmitsQuery(t *testing.T) {
	var hadSince bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadSince = r.URL.Query().Has("since")
		w.Write([]byte(`{"code":0,"data":[]}`))
	}))
	defer server.Close()

	cli := NewGANetClient(server.URL, "k")
	if _, err := cli.GetTransactions(context.Background(), time.Time{}); err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if hadSince {
		t.Error("zero since must not be sent upstream")
	}
}

func TestGetTransactionsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":1002,"message":"invalid api key"}`))
	}))
	defer server.Close()

	cli := NewGANetClient(server.URL, "bad")
	if _, err := cli.GetTransactions(context.Background(), time.Time{}); err == nil {
		t.Fatal("non-zero api code must fail")
	}
}

func TestGetTransactionsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cli := NewGANetClient(server.URL, "k")
	if _, err := cli.GetTransactions(context.Background(), time.Time{}); err == nil {
		t.Fatal("non-200 status must fail")
	}
}

func TestGetCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/campaigns" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"code": 0,
			"data": [
				{"campaign_id": "camp-1", "name": "Spring Sale", "start_date": "2024-03-01T00:00:00Z", "end_date": "2024-04-01T00:00:00Z"},
				{"campaign_id": "camp-2", "name": "Evergreen", "start_date": "not-a-date"}
			]
		}`))
	}))
	defer server.Close()

	cli := NewGANetClient(server.URL, "k")
	campaigns, err := cli.GetCampaigns(context.Background())
	if err != nil {
		t.Fatalf("GetCampaigns: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("got %d campaigns, want 2", len(campaigns))
	}
	if campaigns[0].ID != "camp-1" || campaigns[0].Name != "Spring Sale" {
		t.Errorf("campaign mismatch: %+v", campaigns[0])
	}
	if campaigns[0].StartDate == nil || campaigns[0].EndDate == nil {
		t.Error("campaign window not parsed")
	}
	if campaigns[1].StartDate != nil {
		t.Error("unparseable start date must stay nil")
	}
}
