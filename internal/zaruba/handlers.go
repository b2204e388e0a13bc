package zaruba

import (
	"encoding/json"
	"net/http"
)

// StatsHandler serves the pull-based phase/count snapshot. The read goes
// through the hub loop, so it is always consistent with the last tick.
func StatsHandler(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.QueryStats())
	}
}

type simulateRequest struct {
	AttackerType  string `json:"attacker_type"`
	DefenderType  string `json:"defender_type"`
	AttackerCount int    `json:"attacker_count"`
	DefenderCount int    `json:"defender_count"`
	ResolveConfig
}

// SimulateHandler runs the fast-forward resolver over the immutable catalog.
// It never touches the live game, so it runs off the hub loop.
func SimulateHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req simulateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res := Simulate(c, req.AttackerType, req.DefenderType,
			req.AttackerCount, req.DefenderCount, req.ResolveConfig)
		if res == nil {
			http.Error(w, "invalid matchup", http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

// UnitsHandler lists the catalog for the deploy UI: key, name, family and
// base stats of every unit type.
func UnitsHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		defs := make([]UnitDef, 0, c.Count())
		for _, key := range c.Keys() {
			def, _ := c.Get(key)
			defs = append(defs, def)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(defs)
	}
}
