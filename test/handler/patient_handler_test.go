package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/privnurse/privnurse/test/testutil"
)

func TestPatientCreateAndListPagingGuards(t *testing.T) {
	router, cleanup, userID := setupRouter(t)
	defer cleanup()
	auth := bearerToken(t, userID)

	dept := "Ward-" + testutil.NewTestID()
	body := fmt.Sprintf(`{
		"medical_record_no": "MRN-%s",
		"name": "List Patient",
		"gender": "F",
		"department": %q,
		"birthday": "1960-05-01T00:00:00Z"
	}`, testutil.NewTestID(), dept)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// page=0 and limit=0 must fall back to sane paging instead of
	// producing a huge unsigned offset.
	req = httptest.NewRequest(http.MethodGet,
		"/api/v1/patients?page=0&limit=0&department="+dept, nil)
	req.Header.Set("Authorization", auth)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listResp struct {
		Data struct {
			Items []json.RawMessage `json:"items"`
			Total int64             `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.EqualValues(t, 1, listResp.Data.Total)
	require.Len(t, listResp.Data.Items, 1)
}

func TestPatientListRejectsMissingToken(t *testing.T) {
	router, cleanup, _ := setupRouter(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
