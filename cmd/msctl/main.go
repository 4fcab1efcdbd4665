// Command msctl is a dev CLI for burnie-mindshare maintenance and debugging
// tasks.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/pkg/browser"

	"github.com/resolverai/burnie-mindshare-sub012/internal/config"
	"github.com/resolverai/burnie-mindshare-sub012/internal/export"
	"github.com/resolverai/burnie-mindshare-sub012/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit()
	case "seed":
		authors := 50
		if len(os.Args) > 2 {
			n, err := strconv.Atoi(os.Args[2])
			if err != nil || n <= 0 {
				fmt.Printf("Invalid author count: %s\n", os.Args[2])
				os.Exit(1)
			}
			authors = n
		}
		runSeed(authors)
	case "open":
		if len(os.Args) < 3 {
			fmt.Println("Usage: msctl open <config|exports|latest>")
			os.Exit(1)
		}
		runOpen(os.Args[2])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: msctl <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init          Write a default config file")
	fmt.Println("  seed [n]      Insert synthetic yap scores for n authors (default 50)")
	fmt.Println("  open config   Open config file in default editor")
	fmt.Println("  open exports  Open the CSV export directory")
	fmt.Println("  open latest   Open the most recent CSV export")
}

func runInit() {
	path, err := config.ConfigPath()
	if err != nil {
		log.Fatalf("Failed to get config path: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		log.Fatalf("Config already exists at %s", path)
	}

	if err := config.Default().Save(); err != nil {
		log.Fatalf("Failed to write config: %v", err)
	}
	log.Printf("Created default config at: %s", path)
}

// runSeed fills the previous full week with daily records so a leaderboard
// run on a fresh checkout produces output.
func runSeed(authors int) {
	cfg := loadOrDefault()

	st, err := store.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	now := time.Now()
	count := 0
	for a := 0; a < authors; a++ {
		authorID := fmt.Sprintf("author-%04d", a)
		username := fmt.Sprintf("yapper_%d", a)
		base := rand.Float64() * 200

		for day := 1; day <= 7; day++ {
			createdAt := now.AddDate(0, 0, -day)
			daily := base * (0.5 + rand.Float64())
			tweets := []string{
				fmt.Sprintf("%s-tweet-%d-1", authorID, day),
				fmt.Sprintf("%s-tweet-%d-2", authorID, day),
			}

			y := &store.YapScore{
				AuthorID:      authorID,
				Username:      username,
				ContentScore:  daily,
				EngagementAll: daily * 12,
				Engagement24h: daily,
				Engagement48h: daily * 2,
				Engagement7d:  daily * 7,
				Engagement30d: daily * 10,
				Engagement3m:  daily * 11,
				Engagement6m:  daily * 11.5,
				Engagement12m: daily * 12,
				TweetIDs:      tweets,
				CreatedAt:     createdAt,
			}
			if err := st.SaveYapScore(y); err != nil {
				log.Fatalf("Failed to save record: %v", err)
			}
			count++
		}
	}

	log.Printf("Seeded %d records for %d authors into %s", count, authors, cfg.Database.Path)
}

func runOpen(target string) {
	var path string
	var err error

	switch target {
	case "config":
		path, err = config.ConfigPath()
	case "exports":
		cfg := loadOrDefault()
		path = cfg.Leaderboard.ExportDir
	case "latest":
		cfg := loadOrDefault()
		path, err = export.Latest(cfg.Leaderboard.ExportDir)
	default:
		fmt.Printf("Unknown target: %s\n", target)
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Failed to get path: %v", err)
	}

	if err := browser.OpenFile(path); err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
}

func loadOrDefault() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.Default()
	}
	return cfg
}
