package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/matchclock/internal/fakeapi"
	"github.com/okian/matchclock/pkg/logger"
)

func main() {
	var (
		addr    = flag.String("addr", fakeapi.DefaultAddr, "Listen address")
		matches = flag.Int("matches", fakeapi.DefaultNumMatches, "Number of matches to generate")
		spread  = flag.Duration("spread", fakeapi.DefaultSpread, "Window the start times are spread over")
		verbose = flag.Bool("verbose", false, "Log every request")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		fakeapi.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := fakeapi.Config{
		Addr:       *addr,
		NumMatches: *matches,
		Spread:     *spread,
		Verbose:    *verbose,
	}
	if err := fakeapi.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("fake api failed: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
