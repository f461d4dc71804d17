// Command shot-chart simulates one or more shots and renders a
// self-contained HTML chart of their flights using go-echarts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ironsight-data/ironsight/internal/flight"
	"github.com/ironsight-data/ironsight/internal/swing"
)

var (
	clubName  = flag.String("club", string(swing.Driver), "Club to simulate")
	speed     = flag.Float64("speed", 95, "Club speed in mph")
	faceSweep = flag.Float64("face-sweep", 4, "Render shots at face angles -sweep, 0, +sweep")
	windSpeed = flag.Float64("wind-speed", 0, "Wind speed in mph")
	windDir   = flag.Float64("wind-dir", 0, "Compass bearing the wind blows from")
	outFile   = flag.String("out", "shots.html", "Output HTML file")
)

func main() {
	flag.Parse()

	params := flight.DefaultSimParams()
	params.WindSpeedMPH = *windSpeed
	params.WindDirDeg = *windDir

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Simulated Ball Flight",
			Width:     "1000px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Simulated Ball Flight",
			Subtitle: fmt.Sprintf("%s at %.0f mph", *clubName, *speed),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Downrange (yd)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Altitude (yd)", NameLocation: "middle", NameGap: 30}),
	)

	faces := []float64{-*faceSweep, 0, *faceSweep}
	for _, face := range faces {
		launch, traj := flight.ComputeShot(swing.ClubMeasurement{
			SpeedMPH:     *speed,
			FaceAngleDeg: face,
			Club:         swing.ClubType(*clubName),
		}, params)

		data := make([]opts.LineData, 0, len(traj.Points))
		for _, p := range traj.Points {
			data = append(data, opts.LineData{Value: []interface{}{p.Z, p.Y}})
		}

		name := fmt.Sprintf("face %+.1f° (%s, %.0f yd)", face, launch.ShotShape(), traj.CarryYards)
		line.AddSeries(name, data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

		log.Printf("face %+.1f: carry %.1f yd lateral %+.1f yd apex %.1f yd",
			face, traj.CarryYards, traj.LateralYards, traj.ApexYards)
	}

	f, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		log.Fatalf("failed to render chart: %v", err)
	}
	log.Printf("wrote %s", *outFile)
}
