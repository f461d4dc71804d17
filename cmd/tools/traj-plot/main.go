// Command traj-plot simulates a single shot and renders side and top
// view PNGs of the ball flight.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ironsight-data/ironsight/internal/flight"
	"github.com/ironsight-data/ironsight/internal/swing"
)

var (
	club      = flag.String("club", string(swing.Driver), "Club to simulate")
	speed     = flag.Float64("speed", 95, "Club speed in mph")
	face      = flag.Float64("face", 0, "Face angle in degrees, positive = open")
	path      = flag.Float64("path", 0, "Swing path in degrees, positive = in-to-out")
	windSpeed = flag.Float64("wind-speed", 0, "Wind speed in mph")
	windDir   = flag.Float64("wind-dir", 0, "Compass bearing the wind blows from")
	outDir    = flag.String("out", ".", "Output directory for PNG files")
)

func main() {
	flag.Parse()

	params := flight.DefaultSimParams()
	params.WindSpeedMPH = *windSpeed
	params.WindDirDeg = *windDir

	launch, traj := flight.ComputeShot(swing.ClubMeasurement{
		SpeedMPH:     *speed,
		FaceAngleDeg: *face,
		PathDeg:      *path,
		Club:         swing.ClubType(*club),
	}, params)

	log.Printf("%s %.1f mph -> ball %.1f mph launch %.1f/%.1f spin %.0f rpm",
		*club, *speed, launch.BallSpeedMPH, launch.VLADeg, launch.HLADeg, launch.BackspinRPM)
	log.Printf("carry %.1f yd, total %.1f yd, apex %.1f yd, lateral %+.1f yd, flight %.1fs (%s)",
		traj.CarryYards, traj.TotalYards, traj.ApexYards, traj.LateralYards,
		traj.FlightTimeS, launch.ShotShape())

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	side := filepath.Join(*outDir, "trajectory_side.png")
	if err := savePlot(side, "Side View", "Downrange (yd)", "Altitude (yd)", sideView(traj.Points)); err != nil {
		log.Fatalf("save side view: %v", err)
	}
	top := filepath.Join(*outDir, "trajectory_top.png")
	if err := savePlot(top, "Top View", "Downrange (yd)", "Lateral (yd)", topView(traj.Points)); err != nil {
		log.Fatalf("save top view: %v", err)
	}

	log.Printf("wrote %s and %s", side, top)
}

func sideView(points []swing.Point3) plotter.XYs {
	pts := make(plotter.XYs, len(points))
	for i, p := range points {
		pts[i] = plotter.XY{X: p.Z, Y: p.Y}
	}
	return pts
}

func topView(points []swing.Point3) plotter.XYs {
	pts := make(plotter.XYs, len(points))
	for i, p := range points {
		pts[i] = plotter.XY{X: p.Z, Y: p.X}
	}
	return pts
}

func savePlot(file, title, xLabel, yLabel string, pts plotter.XYs) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1.5)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 4*vg.Inch, file); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
