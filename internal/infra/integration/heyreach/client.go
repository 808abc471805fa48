package heyreach

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultPageSize = 100

// TransportError: the HeyReach API could not be reached or answered with a
// failure status. Aborts a backfill run; nothing has been written yet at
// that point.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("heyreach: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetCampaignLeads fetches one page of leads for a campaign.
func (c *Client) GetCampaignLeads(ctx context.Context, campaignID string, page, limit int) (*LeadsPage, error) {
	endpoint := fmt.Sprintf("%s/campaign/GetLeadsForCampaign", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}

	params := url.Values{}
	params.Set("campaignId", campaignID)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = params.Encode()

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch leads", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Op:  "fetch leads",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result LeadsPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &TransportError{Op: "decode response", Err: err}
	}
	return &result, nil
}

// GetAllCampaignLeads pages through the whole campaign. Pagination metadata
// from upstream is not reliable, so three stop conditions race: an empty
// page, an exhausted totalPages marker, or a short page.
func (c *Client) GetAllCampaignLeads(ctx context.Context, campaignID string) ([]map[string]any, error) {
	var all []map[string]any

	for page := 1; ; page++ {
		log.Printf("heyreach: fetching campaign %s page %d", campaignID, page)

		result, err := c.GetCampaignLeads(ctx, campaignID, page, defaultPageSize)
		if err != nil {
			return nil, err
		}

		leads := result.Items()
		if len(leads) == 0 {
			break
		}
		all = append(all, leads...)

		if total := result.PageCount(); total > 0 && page >= total {
			break
		}
		if len(leads) < defaultPageSize {
			break
		}
	}

	log.Printf("heyreach: fetched %d leads from campaign %s", len(all), campaignID)
	return all, nil
}
