package main

import (
	"context"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/rs/zerolog"

	"stitchlk-backend/config"
	"stitchlk-backend/controllers"
	"stitchlk-backend/events"
	"stitchlk-backend/routes"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "stitchlk-backend").
		Logger().
		Level(level)

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.MongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := config.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("index creation failed")
	}
	cancel()

	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal().Err(err).Msg("cloudinary initialization failed")
		}
	}

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.NotifyExchange, cfg.NotifyQueue, log)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, notifications disabled")
		} else {
			defer publisher.Close()
			if err := events.StartConsumer(publisher.Channel(), cfg.NotifyQueue, log, events.LogNotifier(log)); err != nil {
				log.Warn().Err(err).Msg("failed to start notification consumer")
			}
		}
	}

	ctrl := &controllers.Controller{
		DB:              db,
		Cld:             cld,
		PasetoSecretKey: cfg.PasetoSecretKey,
		Log:             log,
		Events:          publisher,
		ShopWhatsApp:    cfg.ShopWhatsApp,
	}

	r := routes.Setup(ctrl, cfg.Env, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
