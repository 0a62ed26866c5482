package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tienmou/line-roster-bot/internal/adapters/httpline"
	"github.com/tienmou/line-roster-bot/internal/adapters/line"
	"github.com/tienmou/line-roster-bot/internal/app/service"
	"github.com/tienmou/line-roster-bot/internal/infra/config"
	"github.com/tienmou/line-roster-bot/internal/infra/storage"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// DB
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Println("✅ DB ready and migrated")

	// Repos
	playersRepo := storage.NewPlayerRepo(db)
	leaveLogRepo := storage.NewLeaveLogRepo(db)

	// LINE client
	lc := line.New(cfg.ChannelAccessToken)

	// Services
	rosterSvc := service.NewRosterService(playersRepo, leaveLogRepo, cfg.LIFFURL)
	memberSvc := service.NewMemberService(lc, playersRepo)
	eventsSvc := service.NewEventsService(lc, playersRepo, cfg.LIFFURL)
	dispatcher := service.NewDispatcher(rosterSvc, memberSvc)

	// Webhook server
	web := httpline.New(cfg.ChannelSecret, dispatcher, eventsSvc, lc)
	go web.Start(cfg.HTTPAddr)

	// Wait for signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
}
