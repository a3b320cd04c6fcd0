// Command stocksmania tracks daily closing prices with rolling moving
// averages and derives BUY/SELL/HOLD signals for a notification report.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to the YAML config file")

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Optional .env for local runs; environment always wins over the file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&initialCmd{}, "data")
	subcommands.Register(&dailyCmd{}, "data")
	subcommands.Register(&showCmd{}, "data")
	subcommands.Register(&reportCmd{}, "report")
	subcommands.Register(&daemonCmd{}, "report")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
