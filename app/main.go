package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/themer/app/enum"
	"github.com/umputun/themer/app/server"
	"github.com/umputun/themer/app/store"
)

var opts struct {
	DB      string `short:"d" long:"db" env:"THEMER_DB" default:"themer.db" description:"database URL (sqlite file or postgres://...)"`
	Storage string `long:"storage" env:"THEMER_STORAGE" default:"db" choice:"db" choice:"cookie" description:"where theme preferences are kept"`

	Server struct {
		Address         string        `long:"address" env:"ADDRESS" default:":8585" description:"server listen address"`
		ReadTimeout     time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read timeout"`
		WriteTimeout    time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" default:"30s" description:"write timeout"`
		IdleTimeout     time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" default:"30s" description:"idle timeout"`
		ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"5s" description:"graceful shutdown timeout"`
		BaseURL         string        `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /themer)"`
		Title           string        `long:"title" env:"TITLE" default:"Themer" description:"page title"`
		RequestsPerSec  int64         `long:"rps" env:"RPS" default:"1000" description:"max requests per second"`
	} `group:"server" namespace:"server" env-namespace:"THEMER_SERVER"`

	Cache struct {
		MaxKeys int `long:"max-keys" env:"MAX_KEYS" default:"1000" description:"max cached preferences, 0 disables cache"`
	} `group:"cache" namespace:"cache" env-namespace:"THEMER_CACHE"`

	Theme struct {
		Key     string `long:"key" env:"KEY" default:"theme" description:"preference key"`
		Marker  string `long:"marker" env:"MARKER" default:"dark-mode" description:"body class applied in dark mode"`
		Control string `long:"control" env:"CONTROL" default:"theme-toggle" description:"id of the toggle button"`
	} `group:"theme" namespace:"theme" env-namespace:"THEMER_THEME"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `long:"version" description:"show version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("themer %s\n", revision)

	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	if opts.Version {
		os.Exit(0)
	}

	setupLogs(opts.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel)

	if err := runServer(ctx); err != nil {
		log.Printf("[ERROR] failed: %v", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context) error {
	baseURL, err := validateBaseURL(opts.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	kind, err := enum.ParseStorageKind(opts.Storage)
	if err != nil {
		return fmt.Errorf("invalid storage: %w", err)
	}

	var prefs server.PrefStore
	if kind == enum.StorageKindDB {
		st, stErr := makeStore(ctx)
		if stErr != nil {
			return fmt.Errorf("failed to initialize store: %w", stErr)
		}
		defer st.Close()
		prefs = st
	}
	log.Printf("[INFO] starting themer on %s, preferences in %s", opts.Server.Address, kind)

	srv, err := server.New(prefs, server.Config{
		Address:         opts.Server.Address,
		ReadTimeout:     opts.Server.ReadTimeout,
		WriteTimeout:    opts.Server.WriteTimeout,
		IdleTimeout:     opts.Server.IdleTimeout,
		ShutdownTimeout: opts.Server.ShutdownTimeout,
		Version:         revision,
		BaseURL:         baseURL,
		Title:           opts.Server.Title,
		ThemeKey:        opts.Theme.Key,
		ThemeMarker:     opts.Theme.Marker,
		ThemeControl:    opts.Theme.Control,
		RequestsPerSec:  opts.Server.RequestsPerSec,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeStore opens the preference store, wrapped with a cache unless disabled.
func makeStore(ctx context.Context) (store.Interface, error) {
	db, err := store.New(opts.DB)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	var st store.Interface = db
	if opts.Cache.MaxKeys > 0 {
		cached, cacheErr := store.NewCached(db, opts.Cache.MaxKeys)
		if cacheErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create cache: %w", cacheErr)
		}
		st = cached
	}
	if n, cntErr := st.Count(ctx); cntErr == nil {
		log.Printf("[INFO] store opened, %d preference(s) stored", n)
	}
	return st, nil
}

// validateBaseURL normalizes base URL: requires leading slash, strips trailing slash.
func validateBaseURL(u string) (string, error) {
	if u == "" {
		return "", nil
	}
	if !strings.HasPrefix(u, "/") {
		return "", fmt.Errorf("base URL must start with /: %q", u)
	}
	return strings.TrimRight(u, "/"), nil
}

func setupLogs(debug bool) io.Writer {
	log.Setup(log.Msec)
	if debug {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}
	return os.Stdout
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			switch sig {
			case syscall.SIGQUIT:
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
			case syscall.SIGTERM, syscall.SIGINT:
				cancel()
			}
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
