package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPageArgsClampsNonPositiveValues(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 20},
		{"page=3&limit=50", 3, 50},
		{"page=0&limit=0", 1, 20},
		{"page=-5&limit=-1", 1, 20},
		{"page=abc&limit=xyz", 1, 20},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/patients?"+tc.query, nil)
		page, limit := pageArgs(c)
		require.Equal(t, tc.wantPage, page, "query %q", tc.query)
		require.Equal(t, tc.wantLimit, limit, "query %q", tc.query)
	}
}
