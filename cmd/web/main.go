// Command web runs the delivery analytics dashboard server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"deliverypulse/internal/app"
)

func main() {
	dataFile := flag.String("data", "", "path to the delivery CSV (overrides configuration)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.Version)
		return
	}

	application, err := app.NewApplication(app.Options{DataFile: *dataFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}
