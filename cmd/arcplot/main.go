// Command arcplot prints the teleport arc the locomotion controller would
// draw for a controller pose, and where it lands.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/prefabs"
	"github.com/milk9111/templehub/scene"
)

type plotArgs struct {
	Origin   mgl64.Vec3
	PitchDeg float64
	YawDeg   float64
	Speed    float64
	Every    int
	Blockers bool
	JSON     bool
}

type plotResult struct {
	Points  [][3]float64 `json:"points"`
	Landed  bool         `json:"landed"`
	Valid   bool         `json:"valid"`
	Landing [3]float64   `json:"landing"`
	Speed   float64      `json:"speed"`
}

func main() {
	var (
		args    plotArgs
		x, y, z float64
		dir     string
	)
	flag.Float64Var(&x, "x", 0, "controller x")
	flag.Float64Var(&y, "y", 1.2, "controller height")
	flag.Float64Var(&z, "z", 0, "controller z")
	flag.Float64Var(&args.PitchDeg, "pitch", 20, "controller pitch in degrees, positive is up")
	flag.Float64Var(&args.YawDeg, "yaw", 0, "controller yaw in degrees, 0 faces -Z")
	flag.Float64Var(&args.Speed, "speed", 0, "arc speed in m/s (0 uses locomotion.yaml)")
	flag.IntVar(&args.Every, "every", 1, "print every n-th point")
	flag.BoolVar(&args.Blockers, "blockers", true, "check the landing against scene.yaml blockers")
	flag.BoolVar(&args.JSON, "json", false, "print JSON instead of a table")
	flag.StringVar(&dir, "scene", "prefabs", "prefab override directory")
	flag.Parse()

	prefabs.SetDir(dir)
	args.Origin = mgl64.Vec3{x, y, z}

	params, err := prefabs.LoadLocomotion()
	if err != nil {
		log.Printf("locomotion.yaml: %v (using defaults)", err)
	}

	var filter locomotion.TargetFilter
	if args.Blockers {
		spec, err := prefabs.LoadScene()
		if err != nil {
			log.Fatalf("scene.yaml: %v", err)
		}
		filter = scene.BlockersFromSpec(spec)
	}

	res := plot(params, filter, args)
	if err := write(os.Stdout, res, args); err != nil {
		log.Fatal(err)
	}
}

// plot runs the same pose, trajectory and floor steps the controller runs
// each aiming frame.
func plot(p locomotion.Params, filter locomotion.TargetFilter, args plotArgs) plotResult {
	speed := p.ArcSpeed
	if args.Speed > 0 {
		speed = p.ClampSpeed(args.Speed)
	}

	world := mgl64.Translate3D(args.Origin.X(), args.Origin.Y(), args.Origin.Z()).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(args.YawDeg))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(args.PitchDeg)))
	pose, _ := locomotion.SamplePose(world, true)

	points := p.PredictFrom(pose, speed)
	res := plotResult{Speed: speed}
	for _, pt := range points {
		res.Points = append(res.Points, [3]float64(pt))
	}
	if landing, ok := p.Floor().Intersect(points, filter); ok {
		res.Landed = true
		res.Valid = landing.Valid
		res.Landing = [3]float64(landing.Point)
	}
	return res
}

func write(w io.Writer, res plotResult, args plotArgs) error {
	if args.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	every := max(args.Every, 1)
	if _, err := fmt.Fprintf(w, "speed %.2f m/s, %d points\n", res.Speed, len(res.Points)); err != nil {
		return err
	}
	for i, pt := range res.Points {
		if i%every != 0 && i != len(res.Points)-1 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%3d  %8.3f %8.3f %8.3f\n", i, pt[0], pt[1], pt[2]); err != nil {
			return err
		}
	}

	var err error
	switch {
	case !res.Landed:
		_, err = fmt.Fprintln(w, "no landing: arc never reaches the floor")
	case !res.Valid:
		_, err = fmt.Fprintf(w, "blocked landing at (%.3f, %.3f)\n", res.Landing[0], res.Landing[2])
	default:
		_, err = fmt.Fprintf(w, "landing at (%.3f, %.3f)\n", res.Landing[0], res.Landing[2])
	}
	return err
}
