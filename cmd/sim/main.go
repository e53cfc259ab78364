// cmd/sim/main.go
package main

import (
	"flag"
	"log"

	"go-tower-sim/internal/config"
)

func main() {
	tunablesPath := flag.String("tunables", "", "JSON file overriding the default tunables")
	seed := flag.Int64("seed", 0, "Session seed, 0 picks one from the clock")
	rounds := flag.Int("rounds", 10, "Stop after this many cleared rounds, 0 runs until the game ends")
	maxTime := flag.Float64("max-time", 3600, "Simulated seconds before giving up")
	autoBuy := flag.Bool("autobuy", true, "Spend gold on defenders and upgrades between waves")
	flag.Parse()

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

	runner, err := NewRunner(t, *rounds, *maxTime)
	if err != nil {
		log.Fatal(err)
	}
	runner.AutoBuy = *autoBuy
	stats := runner.Run()
	log.Printf("Finished in %s after %.0fs: rounds=%d kills=%d leaked=%d placed=%d gold=%d",
		stats.FinalMode, stats.Elapsed, stats.Rounds, stats.Kills, stats.Leaked, stats.Placed, stats.Gold)
}
