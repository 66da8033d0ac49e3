// Command tavooplayer is a demo host exercising a [tavoo.Player]:
// it feeds a fixture file of newline-delimited host notifications
// (standing in for the real native media engine and TS demuxer, both
// external per §1) through the Event Bus, and draws the resulting
// caption/superimpose surfaces over a blank video canvas each frame.
package main

import (
	"bufio"
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	tavoo "github.com/aznhe21/tavoo-go"
	"github.com/aznhe21/tavoo-go/bus"
)

func main() {
	var oneSeg bool
	var useSubLang bool

	cmd := &cobra.Command{
		Use:   "tavooplayer <notifications.jsonl>",
		Short: "Demo host driving the caption rendering core from a fixture notification feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], oneSeg, useSubLang)
		},
	}
	cmd.Flags().BoolVar(&oneSeg, "one-seg", false, "pin caption defaults to one-seg profile-c")
	cmd.Flags().BoolVar(&useSubLang, "sub-lang", false, "prefer the second carried caption language")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(fixturePath string, oneSeg, useSubLang bool) error {
	f, err := os.Open(fixturePath)
	if err != nil {
		return fmt.Errorf("tavooplayer: opening fixture: %w", err)
	}
	defer f.Close()

	cfg := tavoo.DefaultConfig()
	cfg.OneSeg = oneSeg
	cfg.UseSubLang = useSubLang
	player := tavoo.NewPlayer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := player.Bus().Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "tavooplayer: bus run: %v\n", err)
		}
	}()
	go logOutboundCommands(ctx, player.Bus())

	if err := feedFixture(ctx, player, f); err != nil {
		return err
	}

	ebiten.SetWindowTitle("tavooplayer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)

	return ebiten.RunGame(&demoGame{player: player})
}

// feedFixture decodes and dispatches every line of the fixture up
// front; a real host would instead call Dispatch as notifications
// arrive from the native engine/demuxer.
func feedFixture(ctx context.Context, player *tavoo.Player, f *os.File) error {
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		n, err := bus.DecodeNotification(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tavooplayer: skipping notification: %v\n", err)
			continue
		}
		if err := player.Dispatch(ctx, n); err != nil {
			return fmt.Errorf("tavooplayer: dispatch: %w", err)
		}
	}
	return scanner.Err()
}

// logOutboundCommands stands in for the native media engine: it just
// logs whatever the player posts, since driving a real decoder is out
// of this module's scope.
func logOutboundCommands(ctx context.Context, b *bus.Bus) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-b.Commands():
			fmt.Printf("tavooplayer: host command: %s\n", cmd.Kind)
		}
	}
}

type demoGame struct {
	player     *tavoo.Player
	videoFrame *ebiten.Image // placeholder: real frames come from the external native media engine
}

func (g *demoGame) Layout(_, _ int) (int, int) {
	panic("Layout() should not be called when LayoutF() exists")
}

func (g *demoGame) LayoutF(w, h float64) (float64, float64) {
	scaleFactor := ebiten.Monitor().DeviceScaleFactor()
	return w * scaleFactor, h * scaleFactor
}

func (g *demoGame) Update() error {
	g.player.Tick()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.player.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.player.Clock().State() == tavoo.Playing {
			g.player.Pause()
		} else {
			g.player.Play()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.player.Stop()
	}
	return nil
}

func (g *demoGame) Draw(dst *ebiten.Image) {
	dst.Fill(color.RGBA{16, 16, 16, 255})

	if g.videoFrame == nil {
		g.videoFrame = ebiten.NewImage(320, 180)
		g.videoFrame.Fill(color.RGBA{40, 40, 40, 255})
	}
	geom, filter := calcProjection(dst, g.videoFrame)
	dst.DrawImage(g.videoFrame, &ebiten.DrawImageOptions{GeoM: geom, Filter: filter})

	drawCaptionSurface(dst, g.player.CaptionSurface(), g.player.CaptionDrcsCache(), 0, 0, 1)
	drawCaptionSurface(dst, g.player.SuperimposeSurface(), g.player.SuperimposeDrcsCache(), 0, 0, 1)

	ebitenutil.DebugPrint(dst, fmt.Sprintf(
		"%s  %.1fs / %.1fs  dmf=%#x  (SPACE pause, S stop, ESC quit)",
		g.player.Clock().State(), g.player.Clock().CurrentTime(), g.player.Clock().Duration(),
		g.player.CaptionDMFPlayback(),
	))
}
