package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mike/commander-league-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEndpoints_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, password := testutil.NewUserBuilder().
		WithUsername("apiloginuser").
		Build(t, ts.DB.DB)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "successful login",
			body:       map[string]string{"username": user.Username, "password": password},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       map[string]string{"username": user.Username, "password": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			body:       map[string]string{"username": user.Username},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var authResp testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &authResp)
				assert.Equal(t, user.Username, authResp.User.Username)
				assert.NotEmpty(t, authResp.AccessToken)
				assert.NotEmpty(t, authResp.RefreshToken)
			}
		})
	}
}

func TestAuthEndpoints_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithUsername("meuser").
		BuildAndLogin(t, ts)

	t.Run("with token", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var me struct {
			Username string `json:"username"`
			PublicID string `json:"publicId"`
		}
		testutil.AssertJSONResponse(t, resp, &me)
		assert.Equal(t, user.Username, me.Username)
		assert.Equal(t, user.PublicID.String(), me.PublicID)
	})

	t.Run("without token", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/auth/me"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestUserEndpoints_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminToken := testutil.NewUserBuilder().
		WithUsername("leagueadmin").
		AsAdmin().
		BuildAndLogin(t, ts)
	_, playerToken := testutil.NewUserBuilder().
		WithUsername("leagueplayer").
		BuildAndLogin(t, ts)

	t.Run("admin creates a user", func(t *testing.T) {
		body := map[string]interface{}{"username": "rookie", "password": "password123"}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/users"), body, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		body := map[string]interface{}{"username": "rookie2", "password": "password123"}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/users"), body, playerToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		body := map[string]interface{}{"username": "rookie", "password": "password123"}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/users"), body, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})
}
