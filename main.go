package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grafops/grafimport/internal/build"
	"github.com/grafops/grafimport/internal/cmd/root"
	"github.com/grafops/grafimport/internal/iostreams"
)

// VERSION and COMMIT may be overridden by the linker at release time.
var (
	VERSION = "dev"
	COMMIT  = "unknown"
)

func registerSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigs)
		sig := <-sigs
		fmt.Println("received", sig, ", terminating...")
		cancel()
	}()
	return ctx
}

func main() {
	ctx := registerSignalHandler()
	bi := &build.Info{
		Version: VERSION,
		Commit:  COMMIT,
	}
	root.Execute(ctx, iostreams.GetOSIOStreams(), bi)
}
