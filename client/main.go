package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/rintaro-s/kurikka/client/internal/game"
	"github.com/rintaro-s/kurikka/client/internal/netcfg"
)

func main() {
	registerName := flag.String("register", "", "register with the multiplayer service under this name")
	flag.Parse()

	log.Println("client starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g := game.New(netcfg.EngineURL, netcfg.SyncServerURL)

	if *registerName != "" {
		go func() {
			if err := g.RegisterPlayer(*registerName); err != nil {
				log.Printf("register: %v", err)
			}
		}()
	}

	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
