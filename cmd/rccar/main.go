package main

import (
	"fmt"
	"log"
	"time"

	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine"
	"github.com/rxhxm/rc-car-3d-experience/engine/billboard"
	"github.com/rxhxm/rc-car-3d-experience/engine/camera"
	"github.com/rxhxm/rc-car-3d-experience/engine/config"
	"github.com/rxhxm/rc-car-3d-experience/engine/game_object"
	"github.com/rxhxm/rc-car-3d-experience/engine/model"
	"github.com/rxhxm/rc-car-3d-experience/engine/motion"
	"github.com/rxhxm/rc-car-3d-experience/engine/renderer"
	"github.com/rxhxm/rc-car-3d-experience/engine/scene"
	"github.com/rxhxm/rc-car-3d-experience/engine/track"
	"github.com/rxhxm/rc-car-3d-experience/engine/window"
)

const (
	settingsPath = "settings.yaml"

	trackBuildTimeout = 3 * time.Second
	heightStep        = 0.1
)

func main() {
	cfg := config.Load(settingsPath)

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)

	r, err := renderer.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height())
	if err != nil {
		log.Fatalf("[Main] renderer init failed: %v", err)
	}
	defer r.Release()

	// The spline fit and arc table run off-thread; the fallback circle kicks
	// in if the build has not delivered within the timeout.
	curveReady := make(chan track.Curve, 1)
	go func() {
		curveReady <- track.NewRingCurveOrFallback(
			track.WithRadius(cfg.Track.Radius),
			track.WithControlPoints(cfg.Track.ControlPoints),
		)
	}()
	curve := track.Await(curveReady, trackBuildTimeout, func() track.Curve {
		log.Printf("[Main] track build timed out, using circle fallback")
		return track.NewCircleCurve(cfg.Track.Radius * 0.8)
	})

	carModel := model.NewModel(
		model.WithName("car"),
		model.WithMesh(model.BuildCarMesh()),
	)
	carObj := game_object.NewGameObject(
		game_object.WithEnabled(true),
		game_object.WithModel(carModel),
	)

	groundSize := cfg.Track.Radius*2 + 40
	groundObj := game_object.NewGameObject(
		game_object.WithEnabled(true),
		game_object.WithModel(model.NewModel(
			model.WithName("ground"),
			model.WithMesh(model.BuildGroundPlane(groundSize, 16,
				[4]float32{0.32, 0.52, 0.28, 1},
				[4]float32{0.28, 0.47, 0.25, 1},
			)),
		)),
	)

	trackObj := game_object.NewGameObject(
		game_object.WithEnabled(true),
		game_object.WithModel(model.NewModel(
			model.WithName("track"),
			model.WithMesh(model.BuildTrackMesh(curve, cfg.Track.Width, cfg.Track.Segments,
				[4]float32{0.25, 0.25, 0.27, 1},
			)),
		)),
	)

	follow := camera.NewFollowController(
		camera.WithFollowDistance(cfg.Camera.FollowDistance),
		camera.WithFollowHeight(cfg.Camera.FollowHeight),
		camera.WithSmoothing(cfg.Camera.Smoothing, cfg.Camera.IdleSmoothing),
	)
	orbit := camera.NewOrbitController()

	cam := camera.NewCamera(
		camera.WithFov(cfg.Camera.Fov),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithController(follow),
	)

	s := scene.NewScene("circuit", cam, r, scene.WithActive(true))
	mustAdd(s, groundObj)
	mustAdd(s, trackObj)
	mustAdd(s, carObj)
	for i, sign := range billboard.PlaceSigns(curve, signLabels(cfg.Track.SignCount), cfg.Track.SignOffset, 100) {
		if _, err := s.Add(sign); err != nil {
			log.Printf("[Main] sign %d skipped: %v", i, err)
		}
	}

	// The car rides seated on its wheels; the bounding box supplies the
	// offset from local origin to the lowest point.
	ctrl := motion.NewController(
		motion.WithCurve(curve),
		motion.WithBody(carObj),
		motion.WithAutoSpeed(cfg.Motion.AutoSpeed),
		motion.WithManualSpeed(cfg.Motion.ManualSpeed),
		motion.WithSteering(cfg.Motion.SteerAngle, cfg.Motion.SteerDrift),
		motion.WithGroundOffset(carModel.GroundOffset()),
	)

	followActive := true
	cameraKeyHeld := false

	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyR:
			ctrl.AdjustHeight(ctrl.HeightAdjustment() + heightStep)
		case common.KeyF:
			ctrl.AdjustHeight(ctrl.HeightAdjustment() - heightStep)
		case common.KeyG:
			ctrl.ResetHeight()
		case common.KeyC:
			// Key repeat must not bounce the camera back and forth.
			if !cameraKeyHeld {
				cameraKeyHeld = true
				followActive = !followActive
				if followActive {
					cam.SetController(follow)
				} else {
					cam.SetController(orbit)
				}
			}
		default:
			ctrl.Keys().Press(keyCode)
		}
	})
	win.SetKeyUpCallback(func(keyCode uint32) {
		if keyCode == common.KeyC {
			cameraKeyHeld = false
			return
		}
		ctrl.Keys().Release(keyCode)
	})
	win.SetScrollCallback(func(delta float32) {
		orbit.Zoom(delta)
	})

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, s),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
	)

	// Per-tick order: motion first, then camera tracking. Rendering reads the
	// results on the render thread.
	e.SetTickCallback(func(dt float32) {
		ctrl.Update(dt)
		pose := ctrl.Pose()
		follow.Track(pose, dt)
		orbit.SetTarget(pose.Position[0], pose.Position[1], pose.Position[2])
	})

	log.Printf("[Main] ready: WASD/arrows drive, Space toggles auto mode, C swaps camera, R/F/G tune height")
	e.Run()

	if err := win.Close(); err != nil {
		log.Printf("[Main] window close: %v", err)
	}
}

func mustAdd(s scene.Scene, obj game_object.GameObject) {
	if _, err := s.Add(obj); err != nil {
		log.Fatalf("[Main] scene add failed: %v", err)
	}
}

// signLabels builds the lap marker texts placed around the loop.
func signLabels(count int) []string {
	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if i == 0 {
			labels = append(labels, "START")
			continue
		}
		labels = append(labels, fmt.Sprintf("%d/%d", i, count))
	}
	return labels
}
