package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/stretchr/testify/assert"
)

func TestParamsMiddleware(t *testing.T) {
	globalLevel := log.GetLevel()

	var (
		requestLevel log.Level
		levelDuring  log.Level
		dryRun       bool
	)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLevel = log.FromContext(r.Context()).GetLevel()
		levelDuring = log.GetLevel()
		dryRun = handlers.IsDryRunFromContext(r)
	}), paramsMiddleware)

	t.Run("verbose only affects the request logger", func(t *testing.T) {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))
		assert.Equal(t, log.DebugLevel, requestLevel)
		assert.Equal(t, globalLevel, levelDuring)
		assert.Equal(t, globalLevel, log.GetLevel())
		assert.False(t, dryRun)
	})

	t.Run("dry run", func(t *testing.T) {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/pubsub/booking-created?dry_run=true", nil))
		assert.True(t, dryRun)
		assert.Equal(t, globalLevel, requestLevel)
	})
}
