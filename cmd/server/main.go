package main

import (
	"net/http"

	"go.uber.org/zap"

	"main/internal/auth"
	"main/internal/chat"
	"main/internal/config"
	"main/internal/data"
	"main/internal/lobby"
	"main/internal/presence"
	"main/internal/zaruba"
)

const (
	trophyWin  = 30
	trophyLoss = 15
)

func main() {
	cfg, err := config.Load("config.toml")

	var logger *zap.Logger
	if cfg.Log.Development {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	store, err := data.NewStoreFromDB(cfg.Database.URL, cfg.Game.MedalsPath)
	if err != nil {
		logger.Fatal("open data store", zap.Error(err))
	}

	catalog, err := zaruba.LoadCatalog(cfg.Game.UnitsPath)
	if err != nil {
		logger.Fatal("load unit catalog", zap.Error(err))
	}
	logger.Info("unit catalog loaded", zap.Int("types", catalog.Count()))

	game := zaruba.NewGame(catalog, logger.Named("zaruba"))
	hub := zaruba.NewHub(game, cfg.Game.TickRateHz, logger.Named("hub"))
	hub.OnBattleOver = battleOver(store, logger)
	go hub.Run()

	chatHub := chat.NewHub()
	go chatHub.Run()

	authSvc := auth.NewAuth(store.DB())
	presenceSvc := presence.NewService(store.DB(), logger.Named("presence"))

	http.HandleFunc("/ws/zaruba", zaruba.NewWebsocketHandler(hub))
	http.HandleFunc("/ws/chat", chatHub.HandleWS)

	http.HandleFunc("/api/zaruba/stats", zaruba.StatsHandler(hub))
	http.HandleFunc("/api/zaruba/simulate", zaruba.SimulateHandler(catalog))
	http.HandleFunc("/api/zaruba/units", zaruba.UnitsHandler(catalog))

	http.HandleFunc("/api/register", authSvc.RegisterHandler)
	http.HandleFunc("/api/login", authSvc.LoginHandler)
	http.HandleFunc("/api/friends/add", authSvc.AddFriendHandler)
	http.HandleFunc("/api/friends/remove", authSvc.RemoveFriendHandler)
	http.HandleFunc("/api/presence/ping", presenceSvc.PingHandler)
	http.HandleFunc("/api/shop/buy", lobby.NewBuyHandler(store))
	http.HandleFunc("/api/customize/save", lobby.NewCustomizeSaveHandler(store))

	fs := http.FileServer(http.Dir(cfg.Server.StaticDir))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	http.HandleFunc("/battle", lobby.NewBattleHandler(store))
	http.HandleFunc("/friends", lobby.NewFriendsHandler(store))
	http.HandleFunc("/shop", lobby.NewShopHandler(store))
	http.HandleFunc("/customize", lobby.NewCustomizeHandler(store))
	http.HandleFunc("/leaderboard", lobby.NewLeaderboardHandler(store))
	http.HandleFunc("/", lobby.NewHandler(store))

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, nil); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}

// battleOver persists each finished round: a match row, trophy movement and
// medal awards for every logged-in player on the room.
func battleOver(store *data.Store, log *zap.Logger) func(zaruba.Outcome, map[*zaruba.Player]bool) {
	return func(o zaruba.Outcome, players map[*zaruba.Player]bool) {
		if err := store.RecordMatch(data.Match{
			Winner:            o.Winner,
			Mode:              o.Mode,
			DurationMs:        int(o.DurationMs),
			AttackerDeployed:  o.Deployed.Attacker,
			DefenderDeployed:  o.Deployed.Defender,
			AttackerRemaining: o.Remaining.Attacker,
			DefenderRemaining: o.Remaining.Defender,
		}); err != nil {
			log.Error("record match", zap.Error(err))
		}

		winnerTeam := -1
		armed := 0
		switch o.Winner {
		case "attacker":
			winnerTeam = zaruba.TeamAttacker
			armed = o.ArmedMachines.Attacker
		case "defender":
			winnerTeam = zaruba.TeamDefender
			armed = o.ArmedMachines.Defender
		default:
			return // draws move no trophies
		}

		for p := range players {
			if p.UserID == "" || p.UserID == "guest" {
				continue
			}
			if p.Team != winnerTeam {
				if err := store.AdjustTrophies(p.UserID, -trophyLoss); err != nil {
					log.Error("adjust trophies", zap.String("user", p.UserID), zap.Error(err))
				}
				continue
			}

			if err := store.AdjustTrophies(p.UserID, trophyWin); err != nil {
				log.Error("adjust trophies", zap.String("user", p.UserID), zap.Error(err))
			}
			medals := []string{"first_win"}
			if armed > 0 {
				medals = append(medals, "machinist")
			}
			if o.Mode == "auto" {
				medals = append(medals, "high_command")
			}
			if _, err := store.AwardMedals(p.UserID, medals...); err != nil {
				log.Error("award medals", zap.String("user", p.UserID), zap.Error(err))
			}
		}
	}
}
