package growatt

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/vendorapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewWithHTTPClient(server.Client(), server.URL, slog.Default())
}

func TestAuthenticate_Success(t *testing.T) {
	wantHash := md5.Sum([]byte("p1"))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/user/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["account"])
		assert.Equal(t, hex.EncodeToString(wantHash[:]), body["password"])

		json.NewEncoder(w).Encode(map[string]any{"error_code": 0, "access_token": "tok"})
	})

	token, err := client.Authenticate(context.Background(), map[string]string{
		"username": "u1",
		"password": "p1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestAuthenticate_PermissionDenied(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error_code": 10011, "error_msg": "no permission"})
	})

	_, err := client.Authenticate(context.Background(), map[string]string{
		"username": "u1",
		"password": "p1",
	})
	require.ErrorIs(t, err, vendorapi.ErrVendorAuth)

	// The 10011 case must name the account-access problem, not read like a
	// generic login failure.
	assert.Contains(t, err.Error(), "API access")
	assert.NotContains(t, err.Error(), "login failed")
}

func TestAuthenticate_GenericFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error_code": 507, "error_msg": "account does not exist"})
	})

	_, err := client.Authenticate(context.Background(), map[string]string{
		"username": "u1",
		"password": "p1",
	})
	require.ErrorIs(t, err, vendorapi.ErrVendorAuth)
	assert.Contains(t, err.Error(), "account does not exist")
	assert.NotContains(t, err.Error(), "10011")
}

func TestAuthenticate_BadResponses(t *testing.T) {
	creds := map[string]string{"username": "u1", "password": "p1"}

	t.Run("malformed json", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		})
		_, err := client.Authenticate(context.Background(), creds)
		assert.ErrorIs(t, err, vendorapi.ErrVendorAuth)
	})

	t.Run("http error status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.Authenticate(context.Background(), creds)
		assert.ErrorIs(t, err, vendorapi.ErrVendorAuth)
	})

	t.Run("missing access token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"error_code": 0})
		})
		_, err := client.Authenticate(context.Background(), creds)
		assert.ErrorIs(t, err, vendorapi.ErrVendorAuth)
	})

	t.Run("missing credential fields", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("no request expected")
		})
		_, err := client.Authenticate(context.Background(), map[string]string{"username": "u1"})
		assert.ErrorIs(t, err, vendorapi.ErrVendorAuth)
	})
}

func TestListPlants_NormalizesBothShapes(t *testing.T) {
	flat := `[{"plant_id": "123", "plant_name": "Farm A", "nominal_power": "5000", "city": "Recife", "country": "Brazil"}]`
	nested := `{"plants": [{"plant_id": "123", "plant_name": "Farm A", "nominal_power": "5000", "city": "Recife", "country": "Brazil"}]}`

	for name, body := range map[string]string{"flat array": flat, "nested under plants": nested} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/v1/plant/list", r.URL.Path)
				require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				w.Write([]byte(body))
			})

			plants, err := client.ListPlants(context.Background(), "tok")
			require.NoError(t, err)
			require.Len(t, plants, 1)

			assert.Equal(t, "123", plants[0].ExternalID)
			assert.Equal(t, "Farm A", plants[0].Name)
			require.NotNil(t, plants[0].PowerKWP)
			assert.InDelta(t, 5.0, *plants[0].PowerKWP, 1e-9)
			assert.Equal(t, "Recife, Brazil", plants[0].Location)
		})
	}
}

func TestListPlants_FieldMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"plant_id": 77, "plant_name": "Numeric", "nominal_power": 12500, "city": "Natal", "create_date": "2024-01-01"},
			{"plant_id": "88", "plant_name": "No Power"}
		]`))
	})

	plants, err := client.ListPlants(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, plants, 2)

	assert.Equal(t, "77", plants[0].ExternalID)
	require.NotNil(t, plants[0].PowerKWP)
	assert.InDelta(t, 12.5, *plants[0].PowerKWP, 1e-9)
	assert.Equal(t, "Natal", plants[0].Location)
	assert.Equal(t, map[string]any{"create_date": "2024-01-01"}, plants[0].Extra)

	assert.Equal(t, "88", plants[1].ExternalID)
	assert.Nil(t, plants[1].PowerKWP)
	assert.Empty(t, plants[1].Location)
	assert.Nil(t, plants[1].Extra)
}

func TestListPlants_UnrecognizedShape(t *testing.T) {
	tests := map[string]string{
		"object without plants": `{"total": 3}`,
		"plants not an array":   `{"plants": {"plant_id": "1"}}`,
		"scalar":                `42`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(body))
			})
			_, err := client.ListPlants(context.Background(), "tok")
			assert.ErrorIs(t, err, vendorapi.ErrVendorList)
		})
	}
}

func TestListPlants_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.ListPlants(context.Background(), "tok")
	assert.ErrorIs(t, err, vendorapi.ErrVendorList)
}
