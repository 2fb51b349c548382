package stripe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dan9191/stripe-report/internal/models"
	"github.com/sirupsen/logrus"
)

func testClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(baseURL, "sk_test_abc", logger)
}

func writeEventPage(w http.ResponseWriter, hasMore bool, events ...string) {
	fmt.Fprintf(w, `{"object":"list","data":[%s],"has_more":%t}`, joinJSON(events), hasMore)
}

func joinJSON(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ","
		}
		out += item
	}
	return out
}

func TestListEventsPagination(t *testing.T) {
	var requests []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Clone(r.Context()))
		if r.URL.Path != "/v1/charges" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("starting_after") == "" {
			writeEventPage(w, true,
				`{"id":"ch_1","created":1704196800,"amount":1000,"status":"succeeded"}`,
				`{"id":"ch_2","created":1704196900,"amount":2000,"status":"succeeded"}`)
			return
		}
		writeEventPage(w, false,
			`{"id":"ch_3","created":1704197000,"amount":3000,"status":"succeeded"}`)
	}))
	defer server.Close()

	events, err := testClient(server.URL).ListEvents(context.Background(), models.EventTypeCharge, "acct_1", 1704153600, 1704239999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events across pages, got %d", len(events))
	}
	if events[2].ID != "ch_3" || events[2].Amount != 3000 {
		t.Errorf("unexpected last event: %+v", events[2])
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 page requests, got %d", len(requests))
	}
	first := requests[0]
	if got := first.Header.Get("Authorization"); got != "Bearer sk_test_abc" {
		t.Errorf("Authorization=%q", got)
	}
	if got := first.Header.Get("Stripe-Account"); got != "acct_1" {
		t.Errorf("Stripe-Account=%q, want acct_1", got)
	}
	q := first.URL.Query()
	if q.Get("limit") != "100" || q.Get("created[gte]") != "1704153600" || q.Get("created[lte]") != "1704239999" {
		t.Errorf("unexpected query on first page: %v", q)
	}
	if got := requests[1].URL.Query().Get("starting_after"); got != "ch_2" {
		t.Errorf("starting_after=%q, want last id of previous page ch_2", got)
	}
}

func TestListEventsStatusSplit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEventPage(w, false,
			`{"id":"ch_ok","created":1704196800,"amount":1000,"status":"succeeded"}`,
			`{"id":"ch_bad","created":1704196900,"amount":2000,"status":"failed"}`)
	}))
	defer server.Close()
	client := testClient(server.URL)
	ctx := context.Background()

	charges, err := client.ListEvents(ctx, models.EventTypeCharge, "acct_1", 0, 2000000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(charges) != 1 || charges[0].ID != "ch_ok" {
		t.Errorf("charge stream should exclude failed charges, got %+v", charges)
	}

	declines, err := client.ListEvents(ctx, models.EventTypeFailedCharge, "acct_1", 0, 2000000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(declines) != 1 || declines[0].ID != "ch_bad" {
		t.Errorf("failed-charge stream should only keep failed charges, got %+v", declines)
	}
}

func TestListEventsPartialFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeEventPage(w, true, `{"id":"re_1","created":1704196800,"amount":1000,"status":"succeeded"}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"type":"api_error","message":"boom"}}`)
	}))
	defer server.Close()

	events, err := testClient(server.URL).ListEvents(context.Background(), models.EventTypeRefund, "acct_1", 0, 2000000000)
	if err == nil {
		t.Fatal("expected an error for the failing page")
	}
	if len(events) != 1 || events[0].ID != "re_1" {
		t.Errorf("expected the accumulated prefix alongside the error, got %+v", events)
	}
	var apiErr *ErrorResponse
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected wrapped ErrorResponse with status 500, got %v", err)
	}
}

func TestListEventsUnknownType(t *testing.T) {
	if _, err := testClient("http://unused").ListEvents(context.Background(), "payout", "acct_1", 0, 1); err == nil {
		t.Fatal("expected an error for an unknown event type")
	}
}

func TestListAccountsPaginationAndDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Stripe-Account") != "" {
			t.Error("account listing must not carry a Stripe-Account header")
		}
		if r.URL.Query().Get("starting_after") == "" {
			fmt.Fprint(w, `{"object":"list","data":[{"id":"acct_1","business_type":"company","country":"DE","charges_enabled":true,"payouts_enabled":true,"email":"a@b.co","type":"standard"}],"has_more":true}`)
			return
		}
		fmt.Fprint(w, `{"object":"list","data":[{"id":"acct_2"}],"has_more":false}`)
	}))
	defer server.Close()

	accounts, err := testClient(server.URL).ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts across pages, got %d", len(accounts))
	}
	if accounts[0].BusinessType != "company" || accounts[0].Country != "DE" || !accounts[0].ChargesEnabled {
		t.Errorf("populated fields were not preserved: %+v", accounts[0])
	}
	sparse := accounts[1]
	if sparse.BusinessType != "individual" || sparse.Country != "US" || sparse.Type != "express" || sparse.Email != "" {
		t.Errorf("missing optional fields were not defaulted: %+v", sparse)
	}
	if sparse.ChargesEnabled || sparse.PayoutsEnabled {
		t.Errorf("missing capability flags should default to false: %+v", sparse)
	}
}

func TestGetAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/accounts/acct_1":
			fmt.Fprint(w, `{"id":"acct_1","country":"CA","charges_enabled":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"type":"invalid_request_error","message":"No such account"}}`)
		}
	}))
	defer server.Close()
	client := testClient(server.URL)
	ctx := context.Background()

	info, err := client.GetAccount(ctx, "acct_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != "acct_1" || info.Country != "CA" || info.BusinessType != "individual" {
		t.Errorf("unexpected account info: %+v", info)
	}

	if _, err := client.GetAccount(ctx, "acct_missing"); err == nil {
		t.Fatal("expected not-found error")
	}
}
