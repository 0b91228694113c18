package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialjobs/workmatch/internal/handler/http/middleware"
	"github.com/socialjobs/workmatch/internal/handler/http/mocks"
	"github.com/socialjobs/workmatch/internal/infrastructure/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authedEngine(users *mocks.MockUserUsecase) *gin.Engine {
	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleWare(users), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextUserID)+"|"+c.GetString(middleware.ContextUserRole))
	})
	r.GET("/admin", middleware.AuthMiddleWare(users), middleware.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleWare_Header(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic mock_access_token", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer mock_access_token", http.StatusOK},
		{"scheme is case insensitive", "bearer mock_access_token", http.StatusOK},
	}
	r := authedEngine(mocks.NewMockUserUsecase())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAuthMiddleWare_SetsContext(t *testing.T) {
	r := authedEngine(mocks.NewMockUserUsecase())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami?access_token=mock_access_token", nil)

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mock-user-id|user", w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	for _, tc := range []struct {
		users *mocks.MockUserUsecase
		want  int
	}{
		{mocks.NewMockUserUsecase(), http.StatusForbidden},
		{mocks.NewMockAdminUsecase(), http.StatusNoContent},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer mock_access_token")
		authedEngine(tc.users).ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code)
	}
}

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "test")
	r := gin.New()
	r.Use(middleware.Metrics(m))
	r.GET("/jobs/:jobID", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/jobs/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	families, err := reg.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "test_http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			got[labels["path"]+" "+labels["status"]] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"/jobs/:jobID 200": 3, "unmatched 404": 1}, got)
}
