// SPDX-License-Identifier: EPL-2.0

// Command sfxkit renders, mixes, previews and stores UI sound effects.
//
// Usage:
//
//	sfxkit [flags] <command> [command flags] [args]
//
// Commands: catalog, export, mix, preview, save, list, delete, variants,
// categories. Defaults come from SFX_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/sfxkit/catalog"
	"github.com/ik5/sfxkit/decode"
	"github.com/ik5/sfxkit/internal/config"
	"github.com/ik5/sfxkit/mixer"
	"github.com/ik5/sfxkit/store"
	"github.com/ik5/sfxkit/studio"
)

var cfg = config.Load()

var (
	logFile    = flag.String("log-file", cfg.LogFile, "Log file path")
	verbose    = flag.Bool("v", false, "Also log to stderr")
	sampleRate = flag.Int("sample-rate", cfg.SampleRate, "Mix and preview sample rate")
	assetRoot  = flag.String("asset-root", cfg.AssetRoot, "Directory /sounds/... paths resolve under")
	storeFile  = flag.String("store", cfg.StoreFile, "Saved sound records (JSON)")
	blobDir    = flag.String("blobs", cfg.BlobDir, "Directory rendered WAV files are stored in")
	userID     = flag.String("user", os.Getenv("SFX_USER"), "User id for save, list, delete and categories")
)

// app is the wiring shared by every command.
type app struct {
	catalog *catalog.Catalog
	decoder *decode.Decoder
	records *store.FileStore
	blobs   *store.DirBlobStore
	studio  *studio.Studio
	mix     mixer.Options
	user    string
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	if *verbose {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	} else {
		log.SetOutput(f)
	}

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	a, err := newApp()
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, a, flag.Args()[1:]); err != nil {
		log.Printf("%s failed: %v", flag.Arg(0), err)
		fmt.Fprintf(os.Stderr, "sfxkit %s: %v\n", flag.Arg(0), err)
		stop()
		f.Close()
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	dec := decode.New(decode.WithFetcher(&decode.Resolver{
		AssetRoot: *assetRoot,
		Client:    &http.Client{Timeout: cfg.HTTPTimeout},
		MaxBytes:  cfg.MaxAssetBytes,
	}))

	records, err := store.OpenFile(*storeFile)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	blobs, err := store.NewDirBlobStore(*blobDir)
	if err != nil {
		return nil, fmt.Errorf("opening blob store: %w", err)
	}

	mix := mixer.DefaultOptions()
	mix.SampleRate = *sampleRate
	mix.SafetyTail = cfg.SafetyTail

	return &app{
		catalog: catalog.Default(),
		decoder: dec,
		records: records,
		blobs:   blobs,
		studio: studio.New(dec, records, blobs,
			studio.WithMixOptions(mix),
			studio.WithWorkers(cfg.DecodeWorkers),
		),
		mix:  mix,
		user: *userID,
	}, nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> [command flags] [args]\n\nCommands:\n", os.Args[0])
	for _, name := range commandOrder {
		fmt.Fprintf(out, "  %-11s %s\n", name, commands[name].help)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}
