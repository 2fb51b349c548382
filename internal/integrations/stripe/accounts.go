package stripe

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Dan9191/stripe-report/internal/models"
)

type accountPayload struct {
	ID             string `json:"id"`
	BusinessType   string `json:"business_type"`
	Country        string `json:"country"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
	Email          string `json:"email"`
	Type           string `json:"type"`
}

type accountListResponse struct {
	Data    []accountPayload `json:"data"`
	HasMore bool             `json:"has_more"`
}

// toInfo applies the documented defaults for optional fields so downstream
// consumers never see missing values.
func (p accountPayload) toInfo() models.AccountInfo {
	info := models.AccountInfo{
		ID:             p.ID,
		BusinessType:   p.BusinessType,
		Country:        p.Country,
		ChargesEnabled: p.ChargesEnabled,
		PayoutsEnabled: p.PayoutsEnabled,
		Email:          p.Email,
		Type:           p.Type,
	}
	if info.BusinessType == "" {
		info.BusinessType = "individual"
	}
	if info.Country == "" {
		info.Country = "US"
	}
	if info.Type == "" {
		info.Type = "express"
	}
	return info
}

// GetAccount retrieves metadata for a single connected account.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*models.AccountInfo, error) {
	var payload accountPayload
	if err := c.get(ctx, "/v1/accounts/"+accountID, nil, "", &payload); err != nil {
		return nil, fmt.Errorf("failed to retrieve account %s: %w", accountID, err)
	}
	info := payload.toInfo()
	return &info, nil
}

// ListAccounts retrieves all connected accounts visible to the credential,
// following the cursor until every page has been read.
func (c *Client) ListAccounts(ctx context.Context) ([]models.AccountInfo, error) {
	var accounts []models.AccountInfo
	cursor := ""
	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageLimit))
		if cursor != "" {
			query.Set("starting_after", cursor)
		}

		var page accountListResponse
		if err := c.get(ctx, "/v1/accounts", query, "", &page); err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		for _, payload := range page.Data {
			accounts = append(accounts, payload.toInfo())
		}

		if !page.HasMore || len(page.Data) == 0 {
			break
		}
		cursor = page.Data[len(page.Data)-1].ID
	}

	c.log.Debugf("Listed %d connected accounts", len(accounts))
	return accounts, nil
}
