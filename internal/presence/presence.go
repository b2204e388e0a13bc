package presence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service records who is online. The client reports its own status; the
// last_seen stamp is what the friends list derives the presence window from.
type Service struct {
	db  *sql.DB
	log *zap.Logger
}

func NewService(db *sql.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

type pingRequest struct {
	Status string `json:"status"` // "online" | "away" | "offline"
}

// normalizeStatus maps anything outside the known set to "online": a client
// sending a ping is, by definition, there.
func normalizeStatus(raw string) string {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case "online", "away", "offline":
		return s
	default:
		return "online"
	}
}

// PingHandler updates the caller's status and last_seen stamp. The lobby
// pings every 30s.
func (s *Service) PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := readUserID(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req pingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if err := s.touch(userID, normalizeStatus(req.Status)); err != nil {
		s.log.Error("update presence", zap.String("user", userID), zap.Error(err))
		http.Error(w, "failed to update presence", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) touch(userID, status string) error {
	_, err := s.db.Exec(`
		UPDATE users
		SET status = $1,
		    last_seen = $2,
		    updated_at = $2
		WHERE id = $3
	`, status, time.Now().UTC(), userID)
	return err
}

func readUserID(r *http.Request) (string, error) {
	c, err := r.Cookie("user_id")
	if err != nil || c.Value == "" {
		return "", errors.New("no user_id cookie")
	}
	return c.Value, nil
}
