package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/geo"
	"mybtp.com/mybtp/infrastructure/communication"
	"mybtp.com/mybtp/infrastructure/devops"
	"mybtp.com/mybtp/infrastructure/filesystem"
	planningcore "mybtp.com/mybtp/planning/core"
	"mybtp.com/mybtp/web/handlers/chantier"
	"mybtp.com/mybtp/web/handlers/commande"
	"mybtp.com/mybtp/web/handlers/employee"
	"mybtp.com/mybtp/web/handlers/equipe"
	"mybtp.com/mybtp/web/handlers/piste"
	"mybtp.com/mybtp/web/handlers/planning"
	"mybtp.com/mybtp/web/middlewares"
)

func main() {
	ctx := context.Background()

	cfg, err := devops.LoadConfiguration(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dm, err := core.New(cfg.DatabaseDSN, 20)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer dm.Close()

	slack := communication.NewSlack(cfg.Slack.Token, communication.SlackOption{
		InfoChannelID:  cfg.Slack.InfoChannelID,
		ErrorChannelID: cfg.Slack.ErrorChannelID,
	})

	var documents *filesystem.Store
	if cfg.DocumentsBucket != "" {
		documents, err = filesystem.NewStore(ctx, cfg.DocumentsBucket)
		if err != nil {
			log.Fatalf("failed to init document store: %v", err)
		}
	}

	geocoder := geo.NewClient(cfg.GeoBaseURL)

	planningcore.OnRecoverableError = func(message string) {
		if err := slack.Error(message); err != nil {
			log.Printf("failed to notify slack: %v", err)
		}
	}

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication([]byte(cfg.JWTSecret)))
	{
		planning.Register(protected, dm)
		chantier.Register(protected, dm, geocoder, documents)
		employee.Register(protected, dm)
		equipe.Register(protected, dm)
		commande.Register(protected, dm)
		piste.Register(protected, dm, piste.NotifyOption{
			From: cfg.Notifications.From,
			To:   cfg.Notifications.To,
		}, slack)
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
