// Package websearch backs the search_web tool with the DuckDuckGo instant
// answer API, which needs no credentials.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type DuckDuckGoClient struct {
	BaseURL string
	Client  *http.Client
}

func NewDuckDuckGoClient() *DuckDuckGoClient {
	return &DuckDuckGoClient{
		BaseURL: "https://api.duckduckgo.com",
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type instantAnswer struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

func (c *DuckDuckGoClient) Search(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		c.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search error: status %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	var lines []string
	if answer.Answer != "" {
		lines = append(lines, answer.Answer)
	}
	if answer.AbstractText != "" {
		line := answer.AbstractText
		if answer.Heading != "" {
			line = answer.Heading + ": " + line
		}
		if answer.AbstractURL != "" {
			line += " (" + answer.AbstractURL + ")"
		}
		lines = append(lines, line)
	}
	for _, topic := range answer.RelatedTopics {
		if len(lines) >= 4 {
			break
		}
		if topic.Text != "" {
			lines = append(lines, "- "+topic.Text)
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("No results found for %q.", query), nil
	}
	return strings.Join(lines, "\n"), nil
}
