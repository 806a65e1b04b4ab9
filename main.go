package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"clipfinder/cache"
	"clipfinder/captions"
	"clipfinder/config"
	"clipfinder/youtube"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("[clipfinder] ")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: clipfinder [flags] [video-url ...]\n")
		flag.PrintDefaults()
	}
	serve := flag.Bool("serve", false, "run the http server")
	search := flag.String("search", "", "search stored captions")
	lang := flag.String("lang", "", "language filter for -search")
	limit := flag.Int("limit", 0, "result limit for -search (0 = policy default)")
	stats := flag.Bool("stats", false, "print collection stats")
	forget := flag.String("forget", "", "delete a video's captions so it can be re-collected")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := captions.OpenDB(cfg.DB.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var mdCache youtube.Cache
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.ConnectRedis(cfg.Cache.RedisAddr, cfg.Cache.TTL())
		if err != nil {
			log.Printf("metadata cache disabled: %v", err)
		} else {
			defer rc.Close()
			mdCache = rc
		}
	}

	yt := youtube.NewClient(cfg.YouTube.APIKey, mdCache)

	limits := captions.DefaultLimitPolicy()
	if cfg.Search.DefaultLimit > 0 {
		limits.Default = cfg.Search.DefaultLimit
	}

	svc := captions.NewService(captions.NewSQLiteRepo(db), yt, yt, captions.Options{
		Languages: cfg.YouTube.Languages,
		Policy:    captions.ClassifierPolicy(cfg.Classifier.Policy),
		Limits:    limits,
		Mode:      cfg.Search.Mode,
	})

	ctx := context.Background()

	switch {
	case *serve:
		runServer(cfg, svc)
	case *search != "":
		runSearch(ctx, svc, *search, captions.Language(*lang), *limit)
	case *stats:
		runStats(ctx, svc)
	case *forget != "":
		removed, err := svc.Forget(ctx, youtube.ExtractVideoID(*forget))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("removed %d captions\n", removed)
	case flag.NArg() > 0:
		runCollect(ctx, svc, flag.Args())
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runCollect(ctx context.Context, svc captions.Service, urls []string) {
	ids := make([]string, len(urls))
	for n, u := range urls {
		ids[n] = youtube.ExtractVideoID(u)
	}

	results, errs := svc.CollectAll(ctx, ids)
	failed := 0
	for n, res := range results {
		switch {
		case errs[n] != nil:
			failed++
			log.Printf("%s: %v", ids[n], errs[n])
		case res.AlreadyCollected:
			fmt.Printf("%s: already collected (%d captions)\n", res.VideoID, res.Existing)
		default:
			fmt.Printf("%s: saved %d captions\n", res.VideoID, res.Saved)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runSearch(ctx context.Context, svc captions.Service, query string, lang captions.Language, limit int) {
	results, err := svc.Search(ctx, query, lang, limit)
	if err != nil {
		log.Fatal(err)
	}

	for _, res := range results {
		fmt.Printf("%s: %s\n  %s | %s | %d~%ds | %s\n  %s\n",
			res.Speaker, res.Text,
			res.Title, res.ChannelName, res.StartTime, res.EndTime, res.Language,
			youtube.WatchURL(res.VideoID, res.StartTime),
		)
	}
	fmt.Printf("%d results\n", len(results))
}

func runStats(ctx context.Context, svc captions.Service) {
	s, err := svc.Stats(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("captions: %d\nvideos: %d\nspeakers: %d\n", s.TotalCaptions, s.TotalVideos, s.TotalSpeakers)
	for lang, count := range s.Languages {
		fmt.Printf("  %s: %d\n", lang, count)
	}
}
