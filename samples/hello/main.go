package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
)

//go:embed hello.bf
var helloProgram string

func runHello(driver api.Driver) {
	r, err := driver.Execute(helloProgram, nil, os.Stdout)
	if err != nil {
		slog.Error("HelloFailed", "err", err)
		atexit.Exit(1)
	}

	fmt.Printf("%d instructions", r.Steps)
	if r.Simulated {
		fmt.Printf(", %.0f ns", float64(r.Elapsed)*1e9)
	}
	fmt.Println()
}

func main() {
	for _, width := range []int{8, 32} {
		driver, err := api.NewDriverBuilder().
			WithConfig(config.Default().WithCellWidth(width)).
			WithSimulation(1 * sim.GHz).
			Build()
		if err != nil {
			panic(err)
		}

		runHello(driver)
	}

	atexit.Exit(0)
}
