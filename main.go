// Command burnie-mindshare computes the weekly yap-score leaderboard.
//
// By default it performs a single batch run and exits; with -daemon it stays
// resident and runs on the configured cron schedule.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/resolverai/burnie-mindshare-sub012/internal/config"
	"github.com/resolverai/burnie-mindshare-sub012/internal/job"
	"github.com/resolverai/burnie-mindshare-sub012/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to config file (default: platform config dir)")
	daemon := flag.Bool("daemon", false, "stay resident and run on the configured schedule")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v (run 'msctl init' to create one)", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*daemon {
		if err := job.Run(ctx, cfg); err != nil {
			log.Fatalf("Leaderboard run failed: %v", err)
		}
		return
	}

	runDaemon(ctx, cfg)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func runDaemon(ctx context.Context, cfg *config.Config) {
	sched, err := scheduler.New(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	err = sched.AddJob("leaderboard", cfg.Schedule.Cron, func(ctx context.Context) error {
		return job.Run(ctx, cfg)
	})
	if err != nil {
		log.Fatalf("Failed to schedule leaderboard job: %v", err)
	}

	sched.Start()
	if next, ok := sched.NextRun("leaderboard"); ok {
		log.Printf("burnie-mindshare running; next leaderboard run at %s", next)
	}

	<-ctx.Done()
	<-sched.Stop().Done()
	log.Println("Shutdown complete")
}
