package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langsync/pkg/logger"
	"github.com/dmitrymomot/langsync/pkg/requestid"
)

func capture(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		r.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("keeps valid id", func(t *testing.T) {
		t.Parallel()
		seen, rec := capture(t, "edge-42_a")
		assert.Equal(t, "edge-42_a", seen)
		assert.Equal(t, "edge-42_a", rec.Header().Get(requestid.Header))
	})

	invalid := []string{
		"",
		"has space",
		"semi;colon",
		"slash/id",
		strings.Repeat("a", 129),
	}
	for _, id := range invalid {
		t.Run("replaces "+id, func(t *testing.T) {
			t.Parallel()
			seen, rec := capture(t, id)
			require.NoError(t, uuid.Validate(seen))
			assert.NotEqual(t, id, seen)
			assert.Equal(t, seen, rec.Header().Get(requestid.Header))
		})
	}

	t.Run("max length is accepted", func(t *testing.T) {
		t.Parallel()
		id := strings.Repeat("z", 128)
		seen, _ := capture(t, id)
		assert.Equal(t, id, seen)
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "abc", requestid.FromContext(requestid.WithContext(context.Background(), "abc")))
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(requestid.LogExtractor()),
	)

	log.InfoContext(context.Background(), "no id")
	log.InfoContext(requestid.WithContext(context.Background(), "req-1"), "with id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "request_id")
	assert.Contains(t, lines[1], `"request_id":"req-1"`)
}
