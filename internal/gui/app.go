package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/diag"
	"github.com/san-kum/rigidsim/internal/input"
	"github.com/san-kum/rigidsim/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg       = rl.NewColor(10, 10, 10, 255)
	ColParticle = rl.NewColor(220, 220, 220, 220)
	ColBox      = rl.NewColor(255, 255, 255, 255)
	ColBounds   = rl.NewColor(60, 60, 60, 255)
	ColText     = rl.NewColor(140, 140, 140, 255)
	ColTextDim  = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	World    *sim.World
	Cfg      *config.Config
	Sink     diag.Sink
	Bindings input.Bindings
	Camera   rl.Camera3D
	Running  bool
	Last     sim.FrameStats
	orbit    float32
}

func initWindow() {
	rl.InitWindow(1280, 720, "rigidsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, sink diag.Sink) (*App, error) {
	w, err := sim.New(cfg, sink)
	if err != nil {
		return nil, err
	}
	return &App{
		World:    w,
		Cfg:      cfg,
		Sink:     sink,
		Bindings: input.DefaultBindings(),
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 6, 18),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		Running: true,
	}, nil
}

// Run opens the window and blocks until the session ends.
func Run(cfg *config.Config, sink diag.Sink) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(cfg, sink)
	if err != nil {
		return err
	}
	defer app.World.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.World.Done() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.World.Stop()
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}

	a.dispatchKey(rl.KeyP, 'p')
	a.dispatchKey(rl.KeyT, 't')

	if rl.IsKeyDown(rl.KeyA) {
		a.orbit -= 0.02
	}
	if rl.IsKeyDown(rl.KeyD) {
		a.orbit += 0.02
	}
	a.Camera.Position.X = 18 * float32sin(a.orbit)
	a.Camera.Position.Z = 18 * float32cos(a.orbit)

	if a.Running {
		a.Last = a.World.Step(float64(rl.GetFrameTime()))
	}
}

// dispatchKey forwards press-and-hold transitions for one bound key.
func (a *App) dispatchKey(key int32, k input.Key) {
	if rl.IsKeyPressed(key) {
		input.Apply(input.Event{Key: k, Action: input.Press}, a.Bindings, a.World.Forces(), a.World.Torques())
	}
	if rl.IsKeyReleased(key) {
		input.Apply(input.Event{Key: k, Action: input.Release}, a.Bindings, a.World.Forces(), a.World.Torques())
	}
}

func (a *App) reset() {
	w, err := sim.New(a.Cfg, a.Sink)
	if err != nil {
		a.Sink.Logf("reset failed: %v", err)
		return
	}
	a.World.Close()
	a.World = w
	a.Last = sim.FrameStats{}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawSim()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText("rigidsim", 30, 30, 24, ColText)

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, 1150, 30, 16, ColText)

	rl.DrawText(fmt.Sprintf("frame %d  t %.2fs", a.World.Frame(), a.World.Time()), 30, 60, 16, ColText)
	rl.DrawText(fmt.Sprintf("contacts %d particle / %d box, %d iterations", a.Last.ParticleContacts, a.Last.BoxContacts, a.Last.Iterations), 30, 82, 16, ColTextDim)

	rl.DrawText("[SPACE] PAUSE  [R] RESET  [P] FORCE  [T] TORQUE  [A/D] ORBIT  [Q] QUIT", 600, 680, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 680, 14, ColTextDim)
}
