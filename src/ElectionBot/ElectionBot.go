package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openballot/electionbot/src/ElectionBot/bot"
	"github.com/openballot/electionbot/src/ElectionBot/config"
	"github.com/openballot/electionbot/src/data"
	"github.com/openballot/electionbot/src/election"
	"github.com/openballot/electionbot/src/ledger/mirror"
	"github.com/openballot/electionbot/src/ledger/submit"
	"github.com/openballot/electionbot/src/webclient"
	"github.com/openballot/electionbot/src/webserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("electionbot: %v", err)
	}

	httpClient := webclient.NewDefault(cfg.HTTPTimeout)

	reader := mirror.NewClient(cfg.MirrorBaseURL, httpClient)
	svc := election.NewService(reader, election.Topics{
		Created:        cfg.Topics.ElectionCreated,
		Ended:          cfg.Topics.ElectionEnded,
		CandidateAdded: cfg.Topics.CandidateAdded,
	})

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	}

	writer := submit.NewWriter(submit.WriterConfig{
		Appender:              submit.NewGatewayClient(cfg.LedgerGatewayURL, httpClient),
		Redis:                 rdb,
		VotedTopicID:          cfg.Topics.Voted,
		CandidateAddedTopicID: cfg.Topics.CandidateAdded,
	})

	b, err := bot.New(bot.Config{
		Token:   cfg.Token,
		GuildID: cfg.GuildID,
		Service: svc,
		Writer:  writer,
	})
	if err != nil {
		log.Fatalf("electionbot: create bot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("electionbot: start bot: %v", err)
	}

	var httpSrv *http.Server
	if cfg.HTTPListen != "" {
		httpSrv = &http.Server{Addr: cfg.HTTPListen, Handler: webserver.New(svc)}
		go func() {
			log.Printf("electionbot: http facade listening on %s", cfg.HTTPListen)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("electionbot: http server: %v", err)
			}
		}()
	}

	log.Println("Election bot is running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Printf("electionbot: http shutdown: %v", err)
		}
		cancel()
	}
	b.Stop()
	if rdb != nil {
		rdb.Close()
	}
	log.Println("Election bot stopped gracefully")
}
