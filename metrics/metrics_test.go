package metrics_test

import (
	"expvar"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erinpentecost/framestat"
	"github.com/erinpentecost/framestat/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	m := metrics.NewServer("", "TestPublish")
	m.Publish(framestat.Snapshot{
		FPS:          60,
		FrameTime:    16 * time.Millisecond,
		SurfaceCount: 1,
	})

	for _, name := range []string{"FPS", "FrameTimeMs", "SamplingOverheadMs", "SurfaceCount", "Windows"} {
		v := expvar.Get("TestPublish" + name)
		require.NotNil(t, v, name)
		assert.NotEmpty(t, v.String(), name)
	}
}

func TestHandler(t *testing.T) {
	m := metrics.NewServer("", "TestHandler")
	m.Publish(framestat.Snapshot{FPS: 30})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeShutsDown(t *testing.T) {
	m := metrics.NewServer("127.0.0.1:0", "TestServe")
	done := make(chan struct{})
	m.Serve(done)
	close(done)
}
