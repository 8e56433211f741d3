package main

import (
	"context"
	"flag"
	"log"
	"os"

	"booklib/internal/library"
	"booklib/internal/menu"
	"booklib/pkg/utils"
)

func main() {
	file := flag.String("file", "", "library file path (overrides LIBRARY_FILE)")
	flag.Parse()

	cfg := utils.MustLoad()
	if *file != "" {
		cfg.LibraryFile = *file
		cfg.Backend = utils.BackendFile
	}
	utils.SetupLogger(cfg, os.Stderr)

	ctx := context.Background()

	store, err := library.OpenStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	lib := library.New()
	if err := lib.Load(ctx, store); err != nil {
		_ = store.Close()
		log.Fatalf("%v", err)
	}

	if err := menu.New(lib, store, os.Stdin, os.Stdout).Run(ctx); err != nil {
		_ = store.Close()
		log.Fatalf("%v", err)
	}
}
