package presence

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"online", "online"},
		{"away", "away"},
		{"offline", "offline"},
		{" Online ", "online"},
		{"AWAY", "away"},
		{"", "online"},
		{"busy", "online"},
	}
	for _, tc := range cases {
		if got := normalizeStatus(tc.in); got != tc.want {
			t.Errorf("normalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// The rejection paths all fire before the DB is touched, so a nil handle is
// fine here.
func TestPingHandlerRejections(t *testing.T) {
	svc := NewService(nil, zap.NewNop())

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/presence/ping", nil)
		svc.PingHandler(w, r)
		if w.Code != 405 {
			t.Errorf("status = %d, want 405", w.Code)
		}
	})

	t.Run("no session cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/presence/ping", strings.NewReader(`{"status":"online"}`))
		svc.PingHandler(w, r)
		if w.Code != 401 {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/presence/ping", strings.NewReader("not json"))
		r.AddCookie(&http.Cookie{Name: "user_id", Value: "u_1"})
		svc.PingHandler(w, r)
		if w.Code != 400 {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
