// Command arkprop decodes the root struct of ARK profile and tribe saves and prints it.
//
// Usage:
//
//	arkprop [flags] [file ...]
//
// Without file arguments, arkprop asks for a path on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/go-gum/arkprop"
	"github.com/go-gum/arkprop/internal/logger"
	"go.uber.org/zap"
	"io"
	"os"
	"strings"
)

type config struct {
	roots      []string
	format     string
	render     arkprop.RenderOptions
	maxMembers int
	maxDepth   int
	pause      bool
	log        logger.Config
}

func parseFlags(args []string) (config, []string, error) {
	fs := flag.NewFlagSet("arkprop", flag.ContinueOnError)

	var (
		cfg   = config{log: logger.ConfigFromEnv()}
		roots string
		keys  string
	)

	fs.StringVar(&roots, "roots", strings.Join(arkprop.DefaultRoots, ","), "comma separated root struct names to search for")
	fs.StringVar(&cfg.format, "format", "json", "output format, json or yaml")
	fs.StringVar(&keys, "keys", "asis", "member key style: asis, snake or camel")
	fs.IntVar(&cfg.render.Indent, "indent", 2, "indent width, 0 renders compact json")
	fs.IntVar(&cfg.maxMembers, "max-members", 0, "maximum number of members per struct, 0 uses the default")
	fs.IntVar(&cfg.maxDepth, "max-depth", 0, "maximum struct nesting, 0 uses the default")
	fs.BoolVar(&cfg.pause, "pause", false, "wait for enter before exiting")
	fs.StringVar(&cfg.log.Level, "log-level", cfg.log.Level, "log level, overrides LOG_LEVEL")

	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}

	keyStyle, err := arkprop.ParseKeyStyle(keys)
	if err != nil {
		return config{}, nil, err
	}

	cfg.render.Keys = keyStyle

	if cfg.format != "json" && cfg.format != "yaml" {
		return config{}, nil, fmt.Errorf("format %q: %w", cfg.format, arkprop.ErrNotSupported)
	}

	for _, root := range strings.Split(roots, ",") {
		if root = strings.TrimSpace(root); root != "" {
			cfg.roots = append(cfg.roots, root)
		}
	}

	return cfg, fs.Args(), nil
}

func main() {
	cfg, paths, err := parseFlags(os.Args[1:])
	switch {
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, done, err := logger.New(cfg.log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stdin := bufio.NewReader(os.Stdin)

	if len(paths) == 0 {
		path, err := prompt(stdin, os.Stdout, "Location of *.arkprofile or *.arktribe: ")
		if err != nil {
			log.Error("read path", zap.Error(err))
			done()
			os.Exit(1)
		}

		paths = []string{cleanPath(path)}
	}

	err = run(context.Background(), cfg, log, paths, os.Stdout)
	if err != nil {
		log.Error("decode failed", zap.Error(err))
	}

	if cfg.pause {
		_, _ = prompt(stdin, os.Stdout, "Press Enter to exit...")
	}

	done()

	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log *zap.Logger, paths []string, out io.Writer) error {
	decoder := arkprop.NewDecoder().
		WithLogger(log).
		WithMaxMembers(cfg.maxMembers).
		WithMaxDepth(cfg.maxDepth)

	files, err := decodeFiles(ctx, decoder, cfg.roots, paths)
	if err != nil {
		return err
	}

	for _, file := range files {
		log.Info("decoded root struct",
			zap.String("path", file.Path),
			zap.String("root", file.Root),
			zap.Int("offset", file.Offset),
			zap.Int("bytes", file.Result.BytesRead),
			zap.Int("diagnostics", len(file.Diagnostics)),
		)

		if err := render(out, cfg, file.Result.Value); err != nil {
			return err
		}
	}

	return nil
}

func render(out io.Writer, cfg config, value *arkprop.Struct) error {
	if cfg.format == "yaml" {
		encoded, err := arkprop.MarshalYAML(value, cfg.render)
		if err != nil {
			return err
		}

		_, err = out.Write(encoded)
		return err
	}

	if err := arkprop.WriteJSON(out, value, cfg.render); err != nil {
		return err
	}

	_, err := io.WriteString(out, "\n")
	return err
}

func prompt(in *bufio.Reader, out io.Writer, question string) (string, error) {
	if _, err := io.WriteString(out, question); err != nil {
		return "", err
	}

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// cleanPath removes the quotes a file manager adds when a path is dropped on the terminal.
func cleanPath(path string) string {
	return strings.ReplaceAll(strings.TrimSpace(path), `"`, "")
}
