// Package main plans a path through a configured obstacle scene and drives a
// simulated robot along it, logging positions until the target is reached.
package main

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/CouchPugtato/fieldplan/config"
	"github.com/CouchPugtato/fieldplan/control"
	"github.com/CouchPugtato/fieldplan/motionplan"
)

var logger = golog.NewDevelopmentLogger("simulate")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ConfigFile string  `flag:"0,usage=path to JSON scene config"`
	TickMillis int     `flag:"tick,default=20,usage=tick interval in milliseconds"`
	Timeout    float64 `flag:"timeout,default=120,usage=simulation timeout in seconds"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.ConfigFile == "" {
		return errors.New("a scene config path is required")
	}

	scene, err := config.ReadScene(argsParsed.ConfigFile)
	if err != nil {
		return err
	}
	obstacles, err := scene.Snapshot()
	if err != nil {
		return err
	}

	planner := motionplan.NewPlanner(nil, logger)
	path, err := planner.GeneratePath(scene.StartPosition(), scene.TargetPosition(), scene.SegmentCount, obstacles)
	if err != nil {
		return err
	}
	logger.Infow("path planned",
		"waypoints", len(path),
		"length", path.Length(),
		"obstacles", len(obstacles),
	)

	robot, err := control.NewRobot(scene.StartPosition(), scene.TargetSpeed, logger)
	if err != nil {
		return err
	}
	if err := robot.FollowPath(path); err != nil {
		return err
	}

	sim, err := control.NewSimulation(robot, clock.New(), time.Duration(argsParsed.TickMillis)*time.Millisecond, logger)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(argsParsed.Timeout*float64(time.Second)))
	defer cancel()
	if err := sim.Run(runCtx); err != nil {
		return err
	}

	pos := robot.Position()
	logger.Infow("target reached", "x", pos.X, "y", pos.Y)
	return nil
}
