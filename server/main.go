package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rintaro-s/kurikka/server/auth"
	"github.com/rintaro-s/kurikka/server/srv"
	"github.com/rintaro-s/kurikka/server/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dataDir := flag.String("data", "data", "data directory")
	flag.Parse()

	st, err := store.Open(filepath.Join(*dataDir, "players.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	a, err := auth.New(*dataDir)
	if err != nil {
		log.Fatal(err)
	}

	if n, err := st.Count(); err == nil {
		log.Printf("loaded %d player profiles", n)
	}

	s := &http.Server{
		Addr:         *addr,
		Handler:      srv.New(st, a).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Println("sync server listening on", *addr)
	log.Fatal(s.ListenAndServe())
}
