package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gradient"
	"github.com/gogpu/gradient/store"
)

// weightStep is how far one key press moves a weight.
const weightStep = 5

// fourthColor is the colour 'c' adds.
var fourthColor = gradient.MustParseColor("#10b981")

// cellSetter is the part of tcell.Screen the frame is drawn through.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type app struct {
	store    *store.Store
	renderer *gradient.Renderer
	savePath string

	selected int // foreground colour the arrow keys edit, 1..4
	status   string
	pixels   []uint8
}

func newApp(s *store.Store, r *gradient.Renderer, savePath string) *app {
	return &app{store: s, renderer: r, savePath: savePath, selected: 1}
}

// handleKey applies one key press. It returns false when the user quits.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.nudgeForeground(-weightStep)
		return true
	case tcell.KeyRight:
		a.nudgeForeground(weightStep)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	cfg := a.store.Snapshot()
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case 'm':
		a.store.SetMode(nextMode(cfg.Mode))
	case ' ':
		if _, frozen := cfg.Animation.Frozen.Get(); frozen {
			a.store.Unfreeze()
			a.status = "animating"
		} else {
			a.store.FreezeAt(a.renderer.FrameTime())
			a.status = fmt.Sprintf("frozen at %.2fs", a.renderer.FrameTime())
		}
	case '[':
		a.store.SetBaseWeight(cfg.Weights.Weights()[0] - weightStep)
	case ']':
		a.store.SetBaseWeight(cfg.Weights.Weights()[0] + weightStep)
	case '1', '2', '3', '4':
		i := int(r - '0')
		if i == 4 && !cfg.Color4.IsSet() {
			a.status = "no colour 4 (press c to add it)"
			break
		}
		a.selected = i
	case 'c':
		if cfg.Color4.IsSet() {
			a.store.RemoveFourthColor()
			if a.selected == 4 {
				a.selected = 3
			}
		} else {
			a.store.AddFourthColor(fourthColor)
		}
	case 't':
		a.store.SetTextSafe(!cfg.Weights.TextSafe())
	case 'u':
		if err := a.store.Undo(); err != nil {
			a.status = err.Error()
		}
	case 'r':
		if err := a.store.Redo(); err != nil {
			a.status = err.Error()
		}
	case 's':
		a.status = a.save()
	}
	return true
}

func (a *app) nudgeForeground(delta int) {
	w := a.store.Snapshot().Weights.Weights()
	a.store.SetForegroundWeight(a.selected, w[a.selected]+delta)
}

func (a *app) save() string {
	if a.savePath == "" {
		return "no -save path"
	}
	data, err := store.MarshalPreset("gradterm", a.store.Snapshot())
	if err != nil {
		return err.Error()
	}
	if err := os.WriteFile(a.savePath, data, 0o644); err != nil {
		return err.Error()
	}
	return "saved " + a.savePath
}

func nextMode(m gradient.Mode) gradient.Mode {
	modes := gradient.Modes()
	for i, mm := range modes {
		if mm == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// frameSize is the renderer size for a cols×rows terminal: two pixels per
// cell vertically, one row kept for the status line.
func frameSize(cols, rows int) (w, h int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 2 {
		rows = 2
	}
	return cols, (rows - 1) * 2
}

// draw paints the last completed frame with upper half blocks (foreground
// is the top pixel, background the bottom one) and the status line below.
func (a *app) draw(s cellSetter, cols, rows int) error {
	w, h := a.renderer.Size()
	if n := w * h * 4; len(a.pixels) != n {
		a.pixels = make([]uint8, n)
	}
	if _, err := a.renderer.ReadPixels(a.pixels); err != nil {
		return err
	}

	for y := 0; y+1 < h && y/2 < rows-1; y += 2 {
		for x := 0; x < w && x < cols; x++ {
			top := a.pixels[(y*w+x)*4:]
			bot := a.pixels[((y+1)*w+x)*4:]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top[0]), int32(top[1]), int32(top[2]))).
				Background(tcell.NewRGBColor(int32(bot[0]), int32(bot[1]), int32(bot[2])))
			s.SetContent(x, y/2, '▀', nil, style)
		}
	}

	line := []rune(a.statusLine())
	for x := 0; x < cols; x++ {
		ch := ' '
		if x < len(line) {
			ch = line[x]
		}
		s.SetContent(x, rows-1, ch, nil, tcell.StyleDefault.Reverse(true))
	}
	return nil
}

func (a *app) statusLine() string {
	cfg := a.store.Snapshot()
	w := cfg.Weights.Weights()
	weights := fmt.Sprintf("%d/%d/%d/%d", w[0], w[1], w[2], w[3])
	if cfg.Color4.IsSet() {
		weights += fmt.Sprintf("/%d", w[4])
	}
	line := fmt.Sprintf(" %s  w %s  sel %d", cfg.Mode, weights, a.selected)
	if cfg.Weights.TextSafe() {
		line += "  text-safe"
	}
	if a.status != "" {
		line += "  | " + a.status
	}
	return line
}
