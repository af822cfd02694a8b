package distribution

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestBulkSetEnforceResponseCarriesProblems(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil)
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	router := chi.NewRouter()
	handler.MountRoutes(router)

	body := `{
		"enforce": true,
		"rows": [{
			"product_code": "P001",
			"quantity_received": 50,
			"shops": [
				{"shop_id": 1, "quantity": 20},
				{"shop_id": 2, "quantity": 35}
			]
		}]
	}`
	req := httptest.NewRequest(http.MethodPut, "/rounds/1/distribution", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Title    string    `json:"title"`
		Problems []Problem `json:"problems"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Over-Allocated", resp.Title)
	require.Equal(t, []Problem{{ProductCode: "P001", Distributed: 55, Received: 50}}, resp.Problems)
}
