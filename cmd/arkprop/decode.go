package main

import (
	"context"
	"fmt"
	"github.com/go-gum/arkprop"
	"golang.org/x/sync/errgroup"
	"os"
	"runtime"
)

type decodedFile struct {
	Path        string
	Root        string
	Offset      int
	Result      arkprop.Result[*arkprop.Struct]
	Diagnostics []arkprop.Diagnostic
}

// decodeFiles decodes the root struct of every file concurrently. Results keep
// the order of paths. The first failure cancels the remaining files.
func decodeFiles(ctx context.Context, decoder *arkprop.Decoder, roots []string, paths []string) ([]decodedFile, error) {
	files := make([]decodedFile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for idx, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := decodeFile(decoder, roots, path)
			if err != nil {
				return fmt.Errorf("decode %q: %w", path, err)
			}

			files[idx] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

func decodeFile(decoder *arkprop.Decoder, roots []string, path string) (decodedFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return decodedFile{}, err
	}

	offset, root, err := arkprop.LocateRoot(buf, roots...)
	if err != nil {
		return decodedFile{}, err
	}

	res, diagnostics, err := decoder.Struct(buf, offset)
	if err != nil {
		return decodedFile{}, err
	}

	return decodedFile{
		Path:        path,
		Root:        root,
		Offset:      offset,
		Result:      res,
		Diagnostics: diagnostics,
	}, nil
}
