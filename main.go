package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ironsight-data/ironsight/internal/decoder"
	"github.com/ironsight-data/ironsight/internal/flight"
	"github.com/ironsight-data/ironsight/internal/hidmux"
	"github.com/ironsight-data/ironsight/internal/mocksource"
	"github.com/ironsight-data/ironsight/internal/shotlog"
	"github.com/ironsight-data/ironsight/internal/swing"
	"github.com/ironsight-data/ironsight/internal/version"
)

var (
	mockMode  = flag.Bool("mock", false, "Generate synthetic swings instead of reading the pad")
	preset    = flag.String("preset", string(mocksource.ConsistentPlayer), "Player preset for mock mode")
	club      = flag.String("club", string(swing.Driver), "Club selected at startup")
	dbFile    = flag.String("db", "shots.db", "Shot database path")
	windSpeed = flag.Float64("wind-speed", 0, "Wind speed in mph")
	windDir   = flag.Float64("wind-dir", 0, "Compass bearing the wind blows from, 0 = headwind")
)

// handleSwing runs one measurement through the flight pipeline and
// persists the result.
func handleSwing(store *shotlog.Store, m swing.ClubMeasurement, params flight.SimParams) error {
	launch, traj := flight.ComputeShot(m, params)

	log.Printf("swing: %s %.1f mph face %+.1f path %+.1f -> ball %.1f mph launch %.1f/%.1f carry %.0f yd total %.0f yd (%s)",
		m.Club, m.SpeedMPH, m.FaceAngleDeg, m.PathDeg,
		launch.BallSpeedMPH, launch.VLADeg, launch.HLADeg,
		traj.CarryYards, traj.TotalYards, launch.ShotShape())

	_, err := store.Record(shotlog.Shot{
		StruckAt: time.Now().UTC(),
		Swing:    m,
		Launch:   launch,
		Flight:   traj,
	})
	return err
}

func main() {
	flag.Parse()
	log.Printf("ironsight %s starting", version.String())

	selected := swing.ClubType(*club)

	var source swing.Source
	if *mockMode {
		cfg := mocksource.DefaultConfig()
		cfg.Club = selected
		cfg.Preset = mocksource.Preset(*preset)
		source = mocksource.NewGenerator(cfg)
	} else {
		cfg := decoder.DefaultConfig()
		cfg.Club = selected
		source = decoder.NewReader(hidmux.HIDFactory{}, cfg)
	}

	store, err := shotlog.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open shot database: %v", err)
	}
	defer store.Close()

	params := flight.DefaultSimParams()
	params.WindSpeedMPH = *windSpeed
	params.WindDirDeg = *windDir

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run the source routine to manage IO on the pad (or the generator)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := source.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("swing source failed: %v", err)
		}
		log.Print("source routine terminated")
	}()

	// consume swing events and pass them through the flight pipeline
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case ev := <-source.Events():
				switch ev.Kind {
				case swing.EventSwing:
					if err := handleSwing(store, *ev.Swing, params); err != nil {
						log.Printf("error handling swing: %v", err)
					}
				case swing.EventConnected:
					log.Printf("swing pad connected")
				case swing.EventDisconnected:
					log.Printf("swing pad disconnected")
				case swing.EventError:
					log.Printf("swing pad error: %v", ev.Err)
				}
			case <-ctx.Done():
				log.Printf("consumer routine terminated")
				return
			}
		}
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
