package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/riskcard/pkg/controller/http"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/service/metrics"
	"github.com/secmon-lab/riskcard/pkg/service/render"
	"github.com/secmon-lab/riskcard/pkg/usecase"
)

func newServer(t *testing.T, opts ...httpctrl.Options) *httpctrl.Server {
	t.Helper()
	srv, err := httpctrl.New(usecase.New(model.ExampleReport()), opts...)
	gt.NoError(t, err).Required()
	return srv
}

func get(t *testing.T, h http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Document(t *testing.T) {
	srv := newServer(t)

	w := get(t, srv, "/", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.S(t, w.Header().Get("Content-Type")).Contains("text/html")
	gt.S(t, w.Body.String()).Contains("APPROVED")

	etag := w.Header().Get("ETag")
	gt.S(t, etag).NotEqual("")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"same etag", etag, http.StatusNotModified},
		{"weak etag", "W/" + etag, http.StatusNotModified},
		{"etag in list", `"other", ` + etag, http.StatusNotModified},
		{"wildcard", "*", http.StatusNotModified},
		{"stale etag", `"stale"`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, "/", map[string]string{"If-None-Match": tt.header})
			gt.Value(t, w.Code).Equal(tt.want)
			if tt.want == http.StatusNotModified {
				gt.Number(t, w.Body.Len()).Equal(0)
			}
		})
	}
}

func TestServer_DocumentIsStable(t *testing.T) {
	srv := newServer(t)
	first := get(t, srv, "/", nil)
	second := get(t, srv, "/", nil)
	gt.Value(t, first.Body.String()).Equal(second.Body.String())
	gt.Value(t, first.Header().Get("ETag")).Equal(second.Header().Get("ETag"))
}

func TestServer_API(t *testing.T) {
	srv := newServer(t)

	t.Run("report", func(t *testing.T) {
		w := get(t, srv, "/api/report", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.S(t, w.Header().Get("Content-Type")).Contains("application/json")

		var out map[string]any
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &out)).Required()
		gt.Value(t, out["borrower"]).Equal(any("Maruti Suzuki India Ltd"))
	})

	t.Run("summary", func(t *testing.T) {
		w := get(t, srv, "/api/summary", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		var out usecase.Summary
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &out)).Required()
		gt.Value(t, out.CreditScore).Equal(985)
		gt.Value(t, out.BandLabel).Equal("Low Risk")
	})

	t.Run("healthz", func(t *testing.T) {
		w := get(t, srv, "/healthz", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.S(t, w.Body.String()).Contains(`"ok"`)
	})

	t.Run("unknown path", func(t *testing.T) {
		w := get(t, srv, "/api/unknown", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("metrics disabled", func(t *testing.T) {
		w := get(t, srv, "/metrics", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestServer_Metrics(t *testing.T) {
	m, err := metrics.New()
	gt.NoError(t, err).Required()
	srv := newServer(t, httpctrl.WithMetrics(m, m.Handler()))

	gt.Value(t, get(t, srv, "/", nil).Code).Equal(http.StatusOK)
	gt.Value(t, get(t, srv, "/api/summary", nil).Code).Equal(http.StatusOK)

	w := get(t, srv, "/metrics", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	body, err := io.ReadAll(w.Body)
	gt.NoError(t, err).Required()
	gt.S(t, string(body)).Contains(`riskcard_http_requests_total{code="200",route="/"} 1`)
	gt.S(t, string(body)).Contains(`riskcard_http_requests_total{code="200",route="/api/summary"} 1`)
}

func TestServer_RateLimit(t *testing.T) {
	srv := newServer(t, httpctrl.WithRateLimit(0.001, 1))

	gt.Value(t, get(t, srv, "/api/summary", nil).Code).Equal(http.StatusOK)

	w := get(t, srv, "/api/summary", nil)
	gt.Value(t, w.Code).Equal(http.StatusTooManyRequests)
	gt.Value(t, w.Header().Get("Retry-After")).Equal("1")

	gt.Value(t, get(t, srv, "/healthz", nil).Code).Equal(http.StatusOK)
}

type brokenDashboard struct{}

func (brokenDashboard) Render(context.Context, io.Writer, render.Format) error {
	return errors.New("template exploded")
}

func (brokenDashboard) ETag(context.Context) (string, error) {
	return `"x"`, nil
}

func (brokenDashboard) Summary() usecase.Summary {
	return usecase.Summary{}
}

func TestServer_RenderFailure(t *testing.T) {
	srv, err := httpctrl.New(brokenDashboard{})
	gt.NoError(t, err).Required()

	w := get(t, srv, "/api/report", nil)
	gt.Value(t, w.Code).Equal(http.StatusInternalServerError)
	gt.S(t, w.Body.String()).NotContains("template exploded")
}

func TestNew_NilDashboard(t *testing.T) {
	_, err := httpctrl.New(nil)
	gt.Error(t, err)
}
