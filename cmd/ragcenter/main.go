package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/gops/agent"
	"github.com/joho/godotenv"

	// Register cloud storage schemes so source locations can be remote URLs.
	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"

	"github.com/docqa/ragcenter/config"
	"github.com/docqa/ragcenter/service"
	"github.com/docqa/ragcenter/vectordb/meta"
	"github.com/docqa/ragcenter/vectordb/sqlite"
)

func main() {
	_ = godotenv.Load()
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "add":
		addCmd(os.Args[2:])
	case "ingest":
		ingestCmd(os.Args[2:])
	case "search":
		searchCmd(os.Args[2:])
	case "query":
		searchCmd(os.Args[2:])
	case "status":
		statusCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: ragcenter <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  add     Upload files into the source directory and index them")
	fmt.Fprintln(os.Stderr, "  ingest  Re-index files already in the source directory")
	fmt.Fprintln(os.Stderr, "  search  Retrieve the top-K chunks for a query")
	fmt.Fprintln(os.Stderr, "  query   Alias for search")
	fmt.Fprintln(os.Stderr, "  status  Show index readiness and indexed sources")
}

func addCmd(args []string) {
	flags := flag.NewFlagSet("add", flag.ExitOnError)
	configPath := flags.String("config", "config.yaml", "config yaml path")
	overwrite := flags.Bool("overwrite", false, "replace already indexed same-named files")
	_ = flags.Parse(args)
	if flags.NArg() == 0 {
		log.Fatal("add requires at least one file")
	}
	ctx := context.Background()
	svc, closer := newService(ctx, *configPath)
	defer closer()

	for _, path := range flags.Args() {
		name := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		exists, err := svc.Sources().Exists(ctx, name)
		if err != nil {
			log.Fatalf("check %s: %v", name, err)
		}
		if exists && !*overwrite {
			fmt.Printf("%s: already exists, skipped (use -overwrite to replace)\n", name)
			continue
		}
		if err := svc.Sources().Save(ctx, name, data); err != nil {
			log.Fatalf("save %s: %v", name, err)
		}
		result, err := svc.Ingest(ctx, name, exists && *overwrite)
		if err != nil {
			log.Fatalf("ingest %s: %v", name, err)
		}
		fmt.Println(result)
	}
}

func ingestCmd(args []string) {
	flags := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := flags.String("config", "config.yaml", "config yaml path")
	overwrite := flags.Bool("overwrite", false, "replace existing index entries")
	name := flags.String("file", "", "single source file to ingest (default: all)")
	_ = flags.Parse(args)
	ctx := context.Background()
	svc, closer := newService(ctx, *configPath)
	defer closer()

	if *name != "" {
		result, err := svc.Ingest(ctx, *name, *overwrite)
		if err != nil {
			log.Fatalf("ingest %s: %v", *name, err)
		}
		fmt.Println(result)
		return
	}
	results, err := svc.IngestAll(ctx, *overwrite)
	for _, result := range results {
		fmt.Println(result)
	}
	if err != nil {
		log.Fatalf("ingest aborted: %v", err)
	}
}

func searchCmd(args []string) {
	flags := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := flags.String("config", "config.yaml", "config yaml path")
	query := flags.String("query", "", "query text")
	k := flags.Int("k", 0, "number of chunks to retrieve (default from config)")
	showContext := flags.Bool("context", false, "print the assembled answer context")
	_ = flags.Parse(args)
	if *query == "" && flags.NArg() > 0 {
		*query = flags.Arg(0)
	}
	if *query == "" {
		log.Fatal("search requires a query")
	}
	ctx := context.Background()
	svc, closer := newService(ctx, *configPath)
	defer closer()

	if !svc.IsReady(ctx) {
		log.Fatal("index is empty; add documents first")
	}
	docs, err := svc.Retrieve(ctx, *query, *k)
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	if *showContext {
		fmt.Println(service.FormatContext(docs))
		return
	}
	for i, doc := range docs {
		source := meta.GetString(doc.Metadata, meta.SourceKey)
		fmt.Printf("%d. [%s] score=%.4f\n%s\n\n", i+1, source, doc.Score, doc.PageContent)
	}
}

func statusCmd(args []string) {
	flags := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := flags.String("config", "config.yaml", "config yaml path")
	_ = flags.Parse(args)
	ctx := context.Background()
	cfg, store, svc := open(ctx, *configPath)
	defer store.Close()

	fmt.Printf("store: %s\n", cfg.Store.Path)
	fmt.Printf("ready: %t\n", svc.IsReady(ctx))
	infos, err := store.Sources(ctx)
	if err != nil {
		log.Fatalf("list sources: %v", err)
	}
	for _, info := range infos {
		fmt.Printf("  %s: %d chunks, indexed %s\n", info.Name, info.Chunks, info.IndexedAt.Format("2006-01-02 15:04"))
	}
}

func newService(ctx context.Context, configPath string) (*service.Service, func()) {
	_, store, svc := open(ctx, configPath)
	return svc, func() { _ = store.Close() }
}

func open(ctx context.Context, configPath string) (*config.Config, *sqlite.Store, *service.Service) {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	embedder, err := service.NewEmbedder(cfg.Embedder)
	if err != nil {
		log.Fatalf("create embedder: %v", err)
	}
	store, err := sqlite.Open(cfg.Store.Path, embedder)
	if err != nil {
		log.Fatalf("open vector store: %v", err)
	}
	svc := service.New(cfg, embedder, store, service.WithLogf(log.Printf))
	return cfg, store, svc
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}
