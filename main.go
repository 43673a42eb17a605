package main

import (
	"flag"
	"fmt"
	"os"

	"contestd/internal/di"
	"contestd/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "duplicate logs to stderr")
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "contestd: %s\n", err)
		os.Exit(1)
	}
}
