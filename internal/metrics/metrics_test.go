package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(mutationsTotal.WithLabelValues("sync", "invalid"))
	RecordMutation("sync", "invalid")
	after := testutil.ToFloat64(mutationsTotal.WithLabelValues("sync", "invalid"))

	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestRecordAssistStatus(t *testing.T) {
	okBefore := testutil.ToFloat64(assistRequestsTotal.WithLabelValues("generate_readme", "ok"))
	errBefore := testutil.ToFloat64(assistRequestsTotal.WithLabelValues("generate_readme", "error"))

	RecordAssist("generate_readme", nil, time.Millisecond)
	RecordAssist("generate_readme", errors.New("boom"), time.Millisecond)

	if d := testutil.ToFloat64(assistRequestsTotal.WithLabelValues("generate_readme", "ok")) - okBefore; d != 1 {
		t.Errorf("ok delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(assistRequestsTotal.WithLabelValues("generate_readme", "error")) - errBefore; d != 1 {
		t.Errorf("error delta = %v, want 1", d)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	SetStoreSize(13, 2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "devcloud_files_total 13") {
		t.Error("files gauge missing from /metrics output")
	}
}
