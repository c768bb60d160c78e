// Package scryfall is a minimal client for the Scryfall card database,
// covering exact-name lookup and printings retrieval. All calls share a rate
// limiter so consecutive requests stay at least the configured interval
// apart, per Scryfall's API guidelines.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotFound means Scryfall has no card with the requested name. Callers
// treat it as a normal miss, not a failure.
var ErrNotFound = errors.New("scryfall: card not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string, minInterval time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Card is the subset of a Scryfall card object the league cares about. ID is
// the printing ID; OracleID is the stable cross-printing identifier.
type Card struct {
	ID            string     `json:"id"`
	OracleID      string     `json:"oracle_id"`
	Name          string     `json:"name"`
	TypeLine      string     `json:"type_line"`
	OracleText    string     `json:"oracle_text"`
	CMC           float64    `json:"cmc"`
	ManaCost      string     `json:"mana_cost"`
	ColorIdentity []string   `json:"color_identity"`
	SetType       string     `json:"set_type"`
	ReleasedAt    string     `json:"released_at"`
	ImageURIs     *ImageURIs `json:"image_uris"`
	CardFaces     []CardFace `json:"card_faces"`
}

type CardFace struct {
	Name      string     `json:"name"`
	ManaCost  string     `json:"mana_cost"`
	ImageURIs *ImageURIs `json:"image_uris"`
}

type ImageURIs struct {
	Normal  string `json:"normal"`
	ArtCrop string `json:"art_crop"`
}

// IsToken reports whether the lookup hit a non-playable game token rather
// than a real card.
func (c *Card) IsToken() bool { return c.SetType == "token" }

type list struct {
	Data    []Card `json:"data"`
	HasMore bool   `json:"has_more"`
}

type apiError struct {
	Status int    `json:"status"`
	Code   string `json:"code"`
}

// FindByExactName looks up a card by its exact (trimmed) name.
func (c *Client) FindByExactName(ctx context.Context, name string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, url.QueryEscape(name))

	var card Card
	if err := c.get(ctx, endpoint, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// FindPrintings returns every printing of the card with the given oracle ID,
// newest first.
func (c *Client) FindPrintings(ctx context.Context, oracleID string) ([]Card, error) {
	query := url.QueryEscape(fmt.Sprintf("oracleid:%s", oracleID))
	endpoint := fmt.Sprintf("%s/cards/search?unique=prints&order=released&q=%s", c.baseURL, query)

	var printings []Card
	for endpoint != "" {
		var page struct {
			list
			NextPage string `json:"next_page"`
		}
		if err := c.get(ctx, endpoint, &page); err != nil {
			return nil, err
		}
		printings = append(printings, page.Data...)
		endpoint = ""
		if page.HasMore {
			endpoint = page.NextPage
		}
	}
	return printings, nil
}

func (c *Client) get(ctx context.Context, endpoint string, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scryfall request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("scryfall returned status %d (%s)", resp.StatusCode, apiErr.Code)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode scryfall response: %w", err)
	}
	return nil
}
