package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/bluekeys/repair_shop/internal/config"
	"github.com/bluekeys/repair_shop/internal/es"
	"github.com/bluekeys/repair_shop/internal/handlers"
	"github.com/bluekeys/repair_shop/internal/logging"
	"github.com/bluekeys/repair_shop/internal/mykafka"
	"github.com/bluekeys/repair_shop/internal/service/token"
	httpserver "github.com/bluekeys/repair_shop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	tokens := token.NewService([]byte(configuration.JWT_SECRET), configuration.TokenTTL())

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
	}

	e := httpserver.NewEcho(logger)

	deps := httpserver.Deps{
		DB:               db,
		Tokens:           tokens,
		CustomerHandler:  &handlers.CustomerHandler{DB: db, Tokens: tokens, Producer: prod},
		MechanicHandler:  &handlers.MechanicHandler{DB: db},
		TicketHandler:    &handlers.TicketHandler{DB: db, Producer: prod},
		InventoryHandler: &handlers.InventoryHandler{DB: db, ES: esClient},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
