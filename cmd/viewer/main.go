// cmd/viewer/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"go-tower-sim/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

type AppGame struct {
	screen         *GameScreen
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.screen.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.screen.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	tunablesPath := flag.String("tunables", "", "JSON file overriding the default tunables")
	seed := flag.Int64("seed", 0, "Session seed, 0 picks one from the clock")
	pprof := flag.Bool("pprof", false, "Serve pprof on localhost:6060")
	flag.Parse()

	if *pprof {
		go func() {
			log.Println(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	t := config.Default()
	if *tunablesPath != "" {
		var err error
		if t, err = config.LoadTunables(*tunablesPath); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		t.Seed = *seed
	}

	screen, err := NewGameScreen(t)
	if err != nil {
		log.Fatal(err)
	}
	app := &AppGame{
		screen:         screen,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tower Sim")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
