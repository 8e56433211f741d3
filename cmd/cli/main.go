package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"booklib/internal/convert"
	"booklib/internal/library"
	"booklib/internal/password"
	"booklib/internal/record"
	"booklib/pkg/models"
	"booklib/pkg/utils"
)

var errUsage = errors.New("usage")

func main() {
	cfg := utils.MustLoad()
	utils.SetupLogger(cfg, os.Stderr)

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			printUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg utils.Config, argv []string, out io.Writer) error {
	global := flag.NewFlagSet("booklib", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	file := global.String("file", "", "library file path (overrides LIBRARY_FILE)")
	backend := global.String("backend", cfg.Backend, "storage backend: file or sqlite")
	if err := global.Parse(argv); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *file != "" {
		cfg.LibraryFile = *file
	}
	cfg.Backend = *backend

	args := global.Args()
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}
	rest := []string{}
	if len(args) > 2 {
		rest = args[2:]
	}

	switch cmd {
	case "library":
		return handleLibrary(ctx, cfg, sub, rest, out)
	case "export":
		return handleExport(ctx, cfg, sub, rest, out)
	case "import":
		return handleImport(ctx, cfg, sub, rest, out)
	case "password":
		return handlePassword(cfg, sub, rest, out)
	case "convert":
		return handleConvert(args[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func handleLibrary(ctx context.Context, cfg utils.Config, sub string, args []string, out io.Writer) error {
	switch sub {
	case "add":
		fs := flag.NewFlagSet("library add", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		title := fs.String("title", "", "book title")
		author := fs.String("author", "", "author name")
		year := fs.String("year", "", "publication year")
		genre := fs.String("genre", "", "genre")
		read := fs.Bool("read", false, "already read")
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}

		y, err := strconv.Atoi(strings.TrimSpace(*year))
		if err != nil {
			return fmt.Errorf("publication year %q must be a whole number", *year)
		}
		book := models.Book{Title: *title, Author: *author, PublicationYear: y, Genre: *genre, ReadStatus: *read}
		if err := record.Validate(book); err != nil {
			return err
		}

		return withLibrary(ctx, cfg, true, func(lib *library.Library) error {
			lib.Add(book)
			_, err := fmt.Fprintf(out, "Book '%s' added.\n", book.Title)
			return err
		})
	case "remove":
		fs := flag.NewFlagSet("library remove", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		title := fs.String("title", "", "exact title to remove")
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		if *title == "" {
			return fmt.Errorf("%w: -title is required", errUsage)
		}

		return withLibrary(ctx, cfg, true, func(lib *library.Library) error {
			n := lib.Remove(*title)
			_, err := fmt.Fprintf(out, "Removed %d book(s) titled '%s'.\n", n, *title)
			return err
		})
	case "search":
		fs := flag.NewFlagSet("library search", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		query := fs.String("q", "", "title substring")
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}

		return withLibrary(ctx, cfg, false, func(lib *library.Library) error {
			return printBooks(out, lib.Search(*query))
		})
	case "list":
		return withLibrary(ctx, cfg, false, func(lib *library.Library) error {
			return printBooks(out, lib.Books())
		})
	case "stats":
		return withLibrary(ctx, cfg, false, func(lib *library.Library) error {
			return printJSON(out, lib.Statistics())
		})
	default:
		return fmt.Errorf("%w: booklib library <add|remove|search|list|stats>", errUsage)
	}
}

func handleExport(ctx context.Context, cfg utils.Config, sub string, args []string, out io.Writer) error {
	var (
		defaultOut string
		write      func(io.Writer, []models.Book) error
	)
	switch sub {
	case "json":
		defaultOut, write = "data/library.json", library.ExportJSON
	case "csv":
		defaultOut, write = "data/library.csv", library.ExportCSV
	default:
		return fmt.Errorf("%w: booklib export <json|csv>", errUsage)
	}

	fs := flag.NewFlagSet("export "+sub, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	outPath := fs.String("out", defaultOut, "output path, - for stdout")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	return withLibrary(ctx, cfg, false, func(lib *library.Library) error {
		books := lib.Books()
		if *outPath == "-" {
			return write(out, books)
		}
		if err := writeFile(*outPath, func(w io.Writer) error { return write(w, books) }); err != nil {
			return fmt.Errorf("export %s: %w", sub, err)
		}
		log.Printf("exported %d books to %s", len(books), *outPath)
		return nil
	})
}

func handleImport(ctx context.Context, cfg utils.Config, sub string, args []string, out io.Writer) error {
	if sub != "csv" {
		return fmt.Errorf("%w: booklib import csv -in path", errUsage)
	}

	fs := flag.NewFlagSet("import csv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	in := fs.String("in", "data/library.csv", "input CSV path")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	books, err := library.ImportCSV(f)
	if err != nil {
		return fmt.Errorf("import %s: %w", *in, err)
	}

	return withLibrary(ctx, cfg, true, func(lib *library.Library) error {
		for _, b := range books {
			lib.Add(b)
		}
		_, err := fmt.Fprintf(out, "Imported %d book(s) from %s.\n", len(books), *in)
		return err
	})
}

func handlePassword(cfg utils.Config, sub string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("password "+sub, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pw := fs.String("p", "", "password")
	hash := fs.String("hash", "", "bcrypt hash to verify against")
	length := fs.Int("length", cfg.PasswordLength, "generated password length")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	switch sub {
	case "check":
		if *pw == "" {
			return fmt.Errorf("%w: -p is required", errUsage)
		}
		res := password.Check(*pw)
		for _, line := range res.Feedback {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	case "generate":
		generated, err := password.Generate(*length)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, generated)
		return err
	case "hash":
		if *pw == "" {
			return fmt.Errorf("%w: -p is required", errUsage)
		}
		h, err := password.Hash(*pw)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, h)
		return err
	case "verify":
		if *pw == "" || *hash == "" {
			return fmt.Errorf("%w: -p and -hash are required", errUsage)
		}
		if err := password.Verify(*hash, *pw); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "password matches")
		return err
	default:
		return fmt.Errorf("%w: booklib password <check|generate|hash|verify>", errUsage)
	}
}

func handleConvert(args []string, out io.Writer) error {
	listUnits := len(args) > 0 && args[0] == "units"
	if listUnits {
		args = args[1:]
	}

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "Length, Weight, Temperature, Time or Volume")
	from := fs.String("from", "", "source unit")
	to := fs.String("to", "", "target unit")
	value := fs.Float64("value", 1, "value to convert")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	c, err := convert.ParseCategory(*category)
	if err != nil {
		return err
	}

	if listUnits {
		units, err := convert.Units(c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, strings.Join(units, "\n"))
		return err
	}

	result, err := convert.Convert(c, *from, *to, *value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%g %s is equal to %g %s\n", *value, *from, result, *to)
	return err
}

// withLibrary loads the configured store, runs fn and saves afterwards when
// write is set.
func withLibrary(ctx context.Context, cfg utils.Config, write bool, fn func(*library.Library) error) error {
	store, err := library.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	lib := library.New()
	if err := lib.Load(ctx, store); err != nil {
		return err
	}

	if err := fn(lib); err != nil {
		return err
	}

	if write {
		return lib.Save(ctx, store)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printBooks(out io.Writer, books []models.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(out, "No books found.")
		return err
	}
	for i, b := range books {
		if _, err := fmt.Fprintf(out, "%d. %s\n", i+1, b); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(out io.Writer, v any) error {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "booklib [-file path] [-backend file|sqlite] <command> [subcommand] [flags]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  library add|remove|search|list|stats")
	fmt.Fprintln(w, "  export json|csv")
	fmt.Fprintln(w, "  import csv")
	fmt.Fprintln(w, "  password check|generate|hash|verify")
	fmt.Fprintln(w, "  convert [units] -category")
}
