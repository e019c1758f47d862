package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/danmuck/tollctl/internal/observability"
	"github.com/danmuck/tollctl/internal/toll"
)

func main() {
	configPath := flag.String("config", "", "path to tolld TOML config")
	addr := flag.String("addr", "", "listen address override, e.g. :12345")
	flag.Parse()

	cfg := toll.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tolld: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	// Bare positional port, booth-operator habit.
	if flag.NArg() == 1 {
		port, err := strconv.Atoi(flag.Arg(0))
		if err != nil || port <= 0 || port > 65535 {
			fmt.Fprintf(os.Stderr, "tolld: invalid port %q\n", flag.Arg(0))
			os.Exit(1)
		}
		cfg.ListenAddr = ":" + flag.Arg(0)
	}

	observability.InitLogger("tolld", cfg.LogFile)

	svc := toll.NewServiceWithConfig(cfg)
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tolld: %v\n", err)
		os.Exit(1)
	}
}
