package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mazznoer/colorgrad"

	"github.com/TheFellow/fluidsim/pkg/fluid"
)

// Game runs one solver tick per frame and paints the interior cells
// straight into the framebuffer. Left drag stirs in dye and momentum,
// right click drops an obstacle, C clears obstacles, V toggles between
// density and speed views.
type Game struct {
	sim *fluid.Sim
	cfg appConfig
	pal *palette

	pixels []byte
	field  fluid.ScalarField
	snap   fluid.FrameSnapshot
	peak   float64

	showSpeed    bool
	prevX, prevY int
}

func NewGame(sim *fluid.Sim, cfg appConfig) *Game {
	return &Game{
		sim:  sim,
		cfg:  cfg,
		pal:  newPalette(colorgrad.Inferno()),
		peak: 1,
	}
}

func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	i, j := g.cellAt(x, y)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		fx := float64(x-g.prevX) * g.cfg.ForceScale * g.cfg.Dt
		fy := float64(y-g.prevY) * g.cfg.ForceScale * g.cfg.Dt
		g.sim.InjectForceRadius(i, j, fx, fy, g.cfg.BrushRadius)
		g.sim.InjectDensity(i, j, g.cfg.DyePerTick)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.sim.SetCircularObstacle(i, j, g.cfg.BrushRadius)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.ClearObstacles()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.showSpeed = !g.showSpeed
	}
	g.prevX, g.prevY = x, y

	dt := g.cfg.Dt
	if *adaptiveDtFlag {
		dt = g.sim.AdaptiveDt(dt)
	}
	snap, err := g.sim.Step(dt)
	if err != nil {
		return err
	}
	g.snap = snap
	if snap.Density.MaxValue > g.peak {
		g.peak = snap.Density.MaxValue
	}
	if g.showSpeed {
		g.field = g.sim.VelocityMagnitude()
	} else {
		g.field = snap.Density
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.field.NumX == 0 {
		return
	}
	w := g.field.NumX - 2
	h := g.field.NumY - 2
	if g.pixels == nil {
		g.pixels = make([]byte, 4*w*h)
	}

	lo, hi := 0.0, g.peak
	if g.showSpeed {
		lo, hi = 0, g.field.MaxValue
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := 4 * (y*w + x)
			if g.sim.IsSolid(x+1, y+1) {
				g.pixels[off] = 0x60
				g.pixels[off+1] = 0x60
				g.pixels[off+2] = 0x60
				g.pixels[off+3] = 0xff
				continue
			}
			v, _ := g.field.Value(x+1, y+1)
			c := g.pal.rgba[g.pal.index(v, lo, hi)]
			g.pixels[off] = c[0]
			g.pixels[off+1] = c[1]
			g.pixels[off+2] = c[2]
			g.pixels[off+3] = c[3]
		}
	}
	screen.WritePixels(g.pixels)

	if *debugFlag {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %0.1f\nt=%0.2f  residual %0.3g  Re %0.3g",
			ebiten.ActualFPS(), g.snap.Time, g.snap.MaxDivergence, g.sim.Reynolds()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.GridWidth - 2, g.cfg.GridHeight - 2
}

// cellAt maps a screen position onto the nearest interior cell.
func (g *Game) cellAt(x, y int) (int, int) {
	i, j := x+1, y+1
	if i < 1 {
		i = 1
	}
	if i > g.cfg.GridWidth-2 {
		i = g.cfg.GridWidth - 2
	}
	if j < 1 {
		j = 1
	}
	if j > g.cfg.GridHeight-2 {
		j = g.cfg.GridHeight - 2
	}
	return i, j
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal(err)
	}
	fc, err := cfg.fluidConfig()
	if err != nil {
		log.Fatal(err)
	}
	sim, err := fluid.New(fc)
	if err != nil {
		log.Fatal(err)
	}
	if *obstacleFlag {
		sim.SetCircularObstacle(cfg.GridWidth/3, cfg.GridHeight/2, cfg.GridHeight/10)
	}

	if *gifFlag != "" || *heatmapFlag != "" || *residualsFlag != "" {
		if err := runHeadless(sim, cfg, *framesFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	ebiten.SetWindowSize((cfg.GridWidth-2)*cfg.WindowScale, (cfg.GridHeight-2)*cfg.WindowScale)
	ebiten.SetWindowTitle("FluidSim")
	if err := ebiten.RunGame(NewGame(sim, cfg)); err != nil {
		log.Fatal(err)
	}
}
