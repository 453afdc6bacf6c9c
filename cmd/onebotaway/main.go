package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	onebotaway "github.com/rumit91/onebotaway"
	"github.com/rumit91/onebotaway/config"
	"github.com/rumit91/onebotaway/gtfsrt"
	"github.com/rumit91/onebotaway/metrics"
	"github.com/rumit91/onebotaway/oba"
	"github.com/rumit91/onebotaway/scheduler"
	"github.com/rumit91/onebotaway/slack"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config.yml")
	flag.Parse()

	onebotaway.InitLogging()
	if err := config.LoadAppConfig(*configPath); err != nil {
		log.Fatalf("config error: %v", err)
	}
	cfg := config.Config

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src := buildArrivalSource(cfg)
	chat := slack.New(cfg.Slack.Token)
	triggers := scheduler.New()
	mcol := metrics.NewCollector(len(cfg.Schedules))

	engine, err := onebotaway.NewEngine(onebotaway.Options{
		Schedules:      buildSchedules(cfg),
		BusRules:       buildBusRules(cfg),
		Channel:        cfg.Slack.Channel,
		UserOffsetMs:   int64(cfg.UserUTCOffsetMin) * 60_000,
		ServerOffsetMs: serverUTCOffsetMs(),
		LookupSpanMin:  cfg.LookupSpanMin,
		Source:         src,
		Chat:           chat,
		Triggers:       triggers,
		Metrics:        mcol,
	})
	if err != nil {
		log.Fatalf("engine error: %v", err)
	}

	if err := engine.Start(ctx); err != nil {
		log.Fatalf("trigger registration error: %v", err)
	}
	triggers.Start()

	ops := onebotaway.StartOpsServer(cfg.Server.Port, engine, mcol.Handler())

	go chat.Listen(ctx, engine)

	<-ctx.Done()
	log.Printf("shutdown signal received")
	triggers.Stop()
	engine.CancelRun()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	ops.Shutdown(shutdownCtx)
	log.Println("shutdown complete")
}

func buildArrivalSource(cfg config.AppConfig) onebotaway.ArrivalSource {
	if cfg.GTFSRT.TripUpdatesURL != "" {
		return gtfsrt.NewSource(cfg.GTFSRT.TripUpdatesURL, cfg.GTFSRT.StopNames, cfg.GTFSRT.RouteNames,
			time.Duration(cfg.GTFSRT.TimeoutMS)*time.Millisecond)
	}
	return oba.NewClient(cfg.OBA.BaseURL, cfg.OBA.APIKey,
		time.Duration(cfg.OBA.TimeoutMS)*time.Millisecond)
}

func buildSchedules(cfg config.AppConfig) []*onebotaway.Schedule {
	schedules := make([]*onebotaway.Schedule, 0, len(cfg.Schedules))
	for _, s := range cfg.Schedules {
		schedules = append(schedules, &onebotaway.Schedule{
			Stop:           s.Stop,
			Route:          s.Route,
			WindowStart:    onebotaway.TimeOfDay{Hour: s.Start.Hour, Min: s.Start.Min},
			WindowEnd:      onebotaway.TimeOfDay{Hour: s.End.Hour, Min: s.End.Min},
			DaysOfWeek:     s.DaysOfWeek,
			MinIntervalSec: s.MinIntervalSec,
			TravelTimeMin:  s.TravelTimeMin,
		})
	}
	return schedules
}

func buildBusRules(cfg config.AppConfig) []onebotaway.BusRule {
	rules := make([]onebotaway.BusRule, 0, len(cfg.BusRules))
	for _, r := range cfg.BusRules {
		rules = append(rules, onebotaway.BusRule{
			WindowStart:   onebotaway.TimeOfDay{Hour: r.Start.Hour, Min: r.Start.Min},
			WindowEnd:     onebotaway.TimeOfDay{Hour: r.End.Hour, Min: r.End.Min},
			Stop:          r.Stop,
			Route:         r.Route,
			TravelTimeMin: r.TravelTimeMin,
		})
	}
	return rules
}

// serverUTCOffsetMs reports the process timezone's offset so the engine's
// time arithmetic is explicit about both clocks instead of silently assuming
// a UTC host.
func serverUTCOffsetMs() int64 {
	_, offsetSec := time.Now().Zone()
	return int64(offsetSec) * 1000
}
