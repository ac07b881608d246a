// Command minireld is the HTTP server entrypoint: it constructs the one
// process-wide engine handle through a sync.Once-guarded accessor and
// serves it over the routes in internal/httpapi. The handle is opened at
// startup, before the server begins listening, not on the first request.
package main

import (
	"flag"
	"log"
	"net/http"
	"sync"

	"github.com/minirel/minirel/internal/httpapi"
	"github.com/minirel/minirel/internal/storage"
)

var (
	flagHTTP     = flag.String("http", ":8080", "HTTP listen address")
	flagDBPath   = flag.String("db", "data/dbfile", "database file path")
	flagPageSize = flag.Int("page-size", storage.DefaultPageSize, "page size in bytes")
	flagAuth     = flag.Bool("auth", false, "require a bearer token on every request")
	flagToken    = flag.String("token", "", "bearer token required when -auth is set")
)

var (
	engineOnce sync.Once
	engine     *storage.Engine
	engineErr  error
)

func getEngine() (*storage.Engine, error) {
	engineOnce.Do(func() {
		engine, engineErr = storage.NewEngine(*flagDBPath, *flagPageSize)
	})
	return engine, engineErr
}

func main() {
	flag.Parse()

	eng, err := getEngine()
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer eng.Close()

	auth := &httpapi.AuthConfig{Enabled: *flagAuth, Token: *flagToken}
	srv := httpapi.NewServer(eng, auth)

	log.Printf("minireld listening on %s (db=%s)", *flagHTTP, *flagDBPath)
	if err := http.ListenAndServe(*flagHTTP, srv.Handler()); err != nil {
		log.Fatalf("http serve: %v", err)
	}
}
