package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"clipfinder/captions"
	"clipfinder/config"
	"clipfinder/youtube"
)

func runServer(cfg config.Root, svc captions.Service) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /collect", handleCollect(svc))
	mux.HandleFunc("GET /search", handleSearch(svc))
	mux.HandleFunc("GET /stats", handleStats(svc))
	mux.HandleFunc("DELETE /videos/{id}", handleForget(svc))

	srv := &http.Server{}
	srv.Addr = cfg.Server.Addr
	srv.Handler = mux

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http listen and serve: %v\n", err)
		}
	}()

	<-ctx.Done()
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown server: %v\n", err)
	}
}

type collectResponse struct {
	captions.CollectResult
	Error string `json:"error,omitempty"`
}

func handleCollect(svc captions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URLs []string `json:"urls"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.URLs) == 0 {
			http.Error(w, "no urls given", http.StatusBadRequest)
			return
		}

		ids := make([]string, len(req.URLs))
		for n, u := range req.URLs {
			ids[n] = youtube.ExtractVideoID(u)
		}

		results, errs := svc.CollectAll(r.Context(), ids)
		out := make([]collectResponse, len(results))
		for n, res := range results {
			out[n] = collectResponse{CollectResult: res}
			out[n].VideoID = ids[n]
			if errs[n] != nil {
				out[n].Error = errs[n].Error()
			}
		}
		writeJSON(w, out)
	}
}

func handleSearch(svc captions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "missing q parameter", http.StatusBadRequest)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "bad limit parameter", http.StatusBadRequest)
				return
			}
			limit = n
		}

		lang := captions.Language(r.URL.Query().Get("lang"))
		results, err := svc.Search(r.Context(), query, lang, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		for n := range results {
			results[n].WatchURL = youtube.WatchURL(results[n].VideoID, results[n].StartTime)
		}
		writeJSON(w, results)
	}
}

func handleStats(svc captions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Stats(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, s)
	}
}

func handleForget(svc captions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := svc.Forget(r.Context(), r.PathValue("id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]int64{"removed": removed})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
