package contributions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultGraphQLURL = "https://api.github.com/graphql"
	userAgent         = "contrib-service/1.0"
)

// Sentinel errors let the service distinguish fallback causes without
// surfacing any of them to callers.
var (
	ErrUnauthorized     = errors.New("github: unauthorized")
	ErrUserNotFound     = errors.New("github: user not found")
	ErrBadShape         = errors.New("github: response missing calendar")
	ErrUnexpectedStatus = errors.New("github: unexpected status")
)

// Client issues the contribution calendar query against the GitHub
// GraphQL endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
}

// NewClient builds a client with the given bearer token. An empty url
// selects the public GitHub endpoint.
func NewClient(token, url string, timeout time.Duration) *Client {
	if url == "" {
		url = defaultGraphQLURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		token:      token,
	}
}

const calendarQuery = `
query($username: String!, $from: DateTime, $to: DateTime) {
	user(login: $username) {
		contributionsCollection(from: $from, to: $to) {
			contributionCalendar {
				totalContributions
				weeks {
					contributionDays {
						date
						contributionCount
						contributionLevel
					}
				}
			}
		}
	}
}`

type graphQLResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int            `json:"totalContributions"`
					Weeks              []CalendarWeek `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchCalendar retrieves the raw contribution calendar for username.
// A non-zero year constrains the query to Jan 1 00:00:00 - Dec 31
// 23:59:59 UTC of that year; a zero year uses the source's default
// trailing window.
func (c *Client) FetchCalendar(ctx context.Context, username string, year int) (int, []CalendarWeek, error) {
	variables := map[string]any{"username": username}
	if year != 0 {
		variables["from"] = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
		variables["to"] = time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC).Format(time.RFC3339)
	}

	body, err := json.Marshal(map[string]any{
		"query":     calendarQuery,
		"variables": variables,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return 0, nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var result graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, nil, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Errors) > 0 || result.Data.User == nil {
		return 0, nil, ErrUserNotFound
	}

	calendar := result.Data.User.ContributionsCollection.ContributionCalendar
	if calendar.Weeks == nil {
		return 0, nil, ErrBadShape
	}

	return calendar.TotalContributions, calendar.Weeks, nil
}
