package main

import (
	"context"

	"github.com/donlinch/archdon-sub001/app/controllers"
	"github.com/donlinch/archdon-sub001/pkg/routes"
	"github.com/donlinch/archdon-sub001/platform/board"
	"github.com/donlinch/archdon-sub001/platform/cache"
	"github.com/donlinch/archdon-sub001/platform/config"
	"github.com/donlinch/archdon-sub001/platform/database"
	"github.com/donlinch/archdon-sub001/platform/game"
	"github.com/donlinch/archdon-sub001/platform/logging"
	socket "github.com/donlinch/archdon-sub001/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	squares, err := board.LoadSquares(cfg.BoardFile)
	if err != nil {
		logrus.WithError(err).Fatal("load board")
	}
	if _, err := board.New(squares); err != nil {
		logrus.WithError(err).Fatal("validate board")
	}
	cards, err := board.LoadCards(cfg.CardsFile)
	if err != nil {
		logrus.WithError(err).Fatal("load cards")
	}

	db := database.PostgreSQLConnection(cfg.DB)
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		logrus.WithError(err).Fatal("migrate")
	}

	pool := cache.CreateRedisPool(cfg.RedisURL)
	defer pool.Close()
	snapshots := cache.NewSnapshotStore(pool, cfg.SnapshotTTL)

	sockets, err := socket.NewServer(db, game.Config{Squares: squares, Cards: cards, Rules: cfg.Rules}, snapshots)
	if err != nil {
		logrus.WithError(err).Fatal("create socket server")
	}
	go func() {
		logrus.WithField("addr", cfg.SocketAddr).Info("serving sockets")
		if err := sockets.Serve(cfg.SocketAddr, cfg.AllowedOrigins); err != nil {
			logrus.WithError(err).Fatal("socket server")
		}
	}()

	app := fiber.New()
	app.Use(cors.New())

	routes.AuthRoutes(app, &controllers.AuthController{DB: db, Secret: cfg.JWTSecret})
	routes.GameRoutes(app, &controllers.GameController{DB: db, Snapshots: snapshots, TargetLaps: cfg.TargetLaps})
	routes.PrivateRoutes(app, cfg.JWTSecret)

	logrus.WithField("addr", cfg.HTTPAddr).Info("serving http")
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logrus.WithError(err).Fatal("http server")
	}
}
