package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/warehouse/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLogger_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(Logger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	// 沿用上游的请求ID
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-1", w.Header().Get(RequestIDHeader))
}

func TestOperator(t *testing.T) {
	r := gin.New()
	r.Use(Operator("storekeeper"))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, ResolveOperator(c, c.Query("body")))
	})

	tests := []struct {
		name   string
		header string
		body   string
		want   string
	}{
		{"请求体优先", "bob", "alice", "alice"},
		{"其次请求头", "bob", "", "bob"},
		{"默认操作员", "", "", "storekeeper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who?body="+tt.body, nil)
			if tt.header != "" {
				req.Header.Set(OperatorHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/racks/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/racks/:id", "200")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/racks/7", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.HTTPRequestsInProgress))
}
