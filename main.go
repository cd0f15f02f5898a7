package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patrickbr/gtfsparser"
	"github.com/rs/cors"

	"github.com/transitcore/raptor/internal/config"
	"github.com/transitcore/raptor/internal/gtfsloader"
	"github.com/transitcore/raptor/internal/handler"
	"github.com/transitcore/raptor/internal/network"
	"github.com/transitcore/raptor/internal/pgrepo"
	"github.com/transitcore/raptor/internal/raptor"
)

func main() {
	cfg := config.Load()

	var net *network.Network
	var repo handler.MetadataRepo
	var pool *pgxpool.Pool

	switch cfg.Source {
	case config.SourceGTFS:
		feed := gtfsparser.NewFeed()
		if err := feed.Parse(cfg.GTFSPath); err != nil {
			log.Fatal("unable to parse GTFS feed:", err)
		}
		built, err := gtfsloader.Load(feed, nil)
		if err != nil {
			log.Fatal("unable to build network from GTFS feed:", err)
		}
		net = built
		log.Printf("loaded network from GTFS feed %s", cfg.GTFSPath)

	default:
		pgCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("unable to parse DATABASE_URL:", err)
		}
		pool, err = pgxpool.NewWithConfig(context.Background(), pgCfg)
		if err != nil {
			log.Fatal("unable to create connection pool:", err)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			log.Fatal("unable to connect to database:", err)
		}
		log.Println("connected to database")

		loader := pgrepo.NewLoader(pool)
		built, err := loader.Load(context.Background())
		if err != nil {
			log.Fatal("unable to load timetable:", err)
		}
		net = built
		repo = pgrepo.NewMetadataRepo(pool)
	}

	engine := raptor.NewEngine(net)
	h := handler.New(net, engine, repo, cfg.MaxRounds)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/journey", h.GetJourney)
		r.Get("/routes", h.GetRoutes)
		r.Get("/routes/{gid}/stops", h.GetRouteStops)
		r.Get("/stops", h.GetStops)
		r.Get("/stops/{gid}", h.GetStopDetails)
	})

	log.Printf("server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
