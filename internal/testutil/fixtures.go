package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mike/commander-league-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
	admin    bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.username = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// AsAdmin marks the user as a league admin
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.admin = true
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		PublicID:     uuid.New(),
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		Admin:        b.admin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       uint   `json:"id"`
		PublicID string `json:"publicId"`
		Username string `json:"username"`
		Admin    bool   `json:"admin"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndLogin creates the user in the database and logs in via the API,
// returning the user and an access token.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"username": user.Username,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return user, authResp.AccessToken
}

// CardBuilder creates canonical card records directly in the database,
// bypassing resolution.
type CardBuilder struct {
	name       string
	typeLine   string
	identityID uint
	banned     bool
	watchlist  bool
}

// NewCardBuilder creates a new CardBuilder with default values
func NewCardBuilder(name string) *CardBuilder {
	return &CardBuilder{
		name:       name,
		typeLine:   "Artifact",
		identityID: domain.ColorlessIdentityID,
	}
}

// WithTypeLine sets the type line
func (b *CardBuilder) WithTypeLine(typeLine string) *CardBuilder {
	b.typeLine = typeLine
	return b
}

// WithIdentity sets the color identity by its seeded row ID
func (b *CardBuilder) WithIdentity(identityID uint) *CardBuilder {
	b.identityID = identityID
	return b
}

// Banned marks the card as banned in the league
func (b *CardBuilder) Banned() *CardBuilder {
	b.banned = true
	return b
}

// Watchlisted puts the card on the league watchlist
func (b *CardBuilder) Watchlisted() *CardBuilder {
	b.watchlist = true
	return b
}

// Build creates the card in the database
func (b *CardBuilder) Build(t *testing.T, db *gorm.DB) *domain.Card {
	t.Helper()

	card := &domain.Card{
		ID:         uuid.New().String(),
		Name:       b.name,
		TypeLine:   b.typeLine,
		ManaCost:   "{1}",
		ManaValue:  1,
		IdentityID: b.identityID,
		Banned:     b.banned,
		Watchlist:  b.watchlist,
	}

	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create card: %v", err)
	}

	return card
}

// DeckBuilder creates decks directly in the database
type DeckBuilder struct {
	user       *domain.User
	name       string
	identityID uint
	commander  *domain.Card
}

// NewDeckBuilder creates a new DeckBuilder with default values
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		name:       "Test Deck",
		identityID: domain.ColorlessIdentityID,
	}
}

// WithUser sets the deck owner
func (b *DeckBuilder) WithUser(user *domain.User) *DeckBuilder {
	b.user = user
	return b
}

// WithName sets the deck name
func (b *DeckBuilder) WithName(name string) *DeckBuilder {
	b.name = name
	return b
}

// WithCommander sets the commander card; the deck takes its identity.
func (b *DeckBuilder) WithCommander(card *domain.Card) *DeckBuilder {
	b.commander = card
	b.identityID = card.IdentityID
	return b
}

// Build creates the deck (and the commander's decklist entry) in the database
func (b *DeckBuilder) Build(t *testing.T, db *gorm.DB) *domain.Deck {
	t.Helper()

	if b.user == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.user = user
	}

	deck := &domain.Deck{
		UserID:      b.user.ID,
		Name:        b.name,
		IdentityID:  b.identityID,
		LastUpdated: time.Now(),
	}
	if b.commander != nil {
		deck.CommanderID = &b.commander.ID
	}

	if err := db.Create(deck).Error; err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}

	if b.commander != nil {
		entry := &domain.DecklistEntry{
			DeckID:      deck.ID,
			CardID:      b.commander.ID,
			Count:       1,
			IsCommander: true,
		}
		if err := db.Create(entry).Error; err != nil {
			t.Fatalf("failed to create commander entry: %v", err)
		}
	}

	return deck
}

// EventBuilder creates league events directly in the database
type EventBuilder struct {
	name    string
	time    time.Time
	themeID *uint
}

// NewEventBuilder creates a new EventBuilder with default values
func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		name: "Weekly 1",
		time: time.Now(),
	}
}

// WithName sets the event name
func (b *EventBuilder) WithName(name string) *EventBuilder {
	b.name = name
	return b
}

// WithTime sets the event time
func (b *EventBuilder) WithTime(at time.Time) *EventBuilder {
	b.time = at
	return b
}

// WithTheme marks the event as themed
func (b *EventBuilder) WithTheme(themeID uint) *EventBuilder {
	b.themeID = &themeID
	return b
}

// Build creates the event in the database
func (b *EventBuilder) Build(t *testing.T, db *gorm.DB) *domain.Event {
	t.Helper()

	event := &domain.Event{
		Name:    b.name,
		Time:    b.time,
		Themed:  b.themeID != nil,
		ThemeID: b.themeID,
		Weekly:  true,
	}

	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	return event
}

// BuildMatch creates a match for an event directly in the database
func BuildMatch(t *testing.T, db *gorm.DB, eventID uint, name string) *domain.Match {
	t.Helper()

	match := &domain.Match{
		EventID: eventID,
		Name:    name,
	}
	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return match
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
