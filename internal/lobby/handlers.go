package lobby

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"

	"main/internal/data"
)

// NewHandler renders the lobby: profile card, friends, medals, recent
// battles.
func NewHandler(store *data.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageData := commonPage(w, r, store)
		pageData.ActivePage = "lobby"
		pageData.Matches, _ = store.RecentMatches(10)

		tmplPath := filepath.Join("web", "templates", "lobby.html")
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			http.Error(w, "Could not load lobby", http.StatusInternalServerError)
			return
		}
		_ = tmpl.Execute(w, pageData)
	}
}

// NewBattleHandler renders the battle page shell. The page itself connects
// to /ws/zaruba and renders the state frames client-side.
func NewBattleHandler(store *data.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := "guest"
		if c, err := r.Cookie("user_id"); err == nil && c.Value != "" {
			userID = c.Value
		} else if q := r.URL.Query().Get("userID"); q != "" {
			userID = q
		}

		lang := normalizeLang(r.URL.Query().Get("lang"))
		if lang == "" {
			lang = "en"
		}

		page := struct {
			UserID string
			Lang   string
			Text   Translations
		}{UserID: userID, Lang: lang, Text: texts[lang]}

		tmplPath := filepath.Join("web", "templates", "battle.html")
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			http.Error(w, "Could not load battle page", http.StatusInternalServerError)
			return
		}
		_ = tmpl.Execute(w, page)
	}
}

// NewLeaderboardHandler renders the trophy ranking.
func NewLeaderboardHandler(store *data.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageData := commonPage(w, r, store)
		pageData.ActivePage = "leaderboard"
		pageData.Leaderboard, _ = store.Leaderboard(50)

		tmpl, err := template.ParseFiles(filepath.Join("web", "templates", "leaderboard.html"))
		if err != nil {
			http.Error(w, "Could not load template", http.StatusInternalServerError)
			return
		}
		_ = tmpl.Execute(w, pageData)
	}
}

func normalizeLang(raw string) string {
	switch raw {
	case "ua", "ru", "en":
		return raw
	default:
		return ""
	}
}

// NewCustomizeSaveHandler saves cosmetic selections.
func NewCustomizeSaveHandler(store *data.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("user_id")
		if err != nil || c.Value == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req struct {
			NameColor   string `json:"name_color"`
			BannerColor string `json:"banner_color"`
			Language    string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		if err := store.UpdateProfileLook(c.Value, req.NameColor, req.BannerColor, req.Language); err != nil {
			http.Error(w, "Error saving", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
