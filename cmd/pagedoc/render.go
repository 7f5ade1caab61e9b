package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/lvillar/pagedoc/doctpl"
	"github.com/lvillar/pagedoc/internal/state"
)

// renderDocument is the action of the render subcommand.
func renderDocument(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	env.Overwrite = cmd.Bool("overwrite")

	if cmd.Args().Len() == 0 {
		return errors.New("no SOURCE has been specified")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)

	data, err := readSource(src)
	if err != nil {
		return err
	}
	if dst, err = destination(src, dst, env.Overwrite); err != nil {
		return err
	}

	doc, err := doctpl.Parse(data)
	if err != nil {
		return fmt.Errorf("unable to parse '%s': %w", src, err)
	}
	env.Log.Debug("Template parsed", zap.String("source", src), zap.Int("elements", len(doc.Elements)))

	if err := doctpl.RenderFile(dst, doc, env.Cfg.RendererOptions(env.Log)...); err != nil {
		return fmt.Errorf("unable to render '%s': %w", src, err)
	}
	env.Log.Info("Document rendered", zap.String("source", src), zap.String("destination", dst))
	return nil
}

func readSource(src string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if src == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read source '%s': %w", src, err)
	}
	return data, nil
}

// destination derives the output path and refuses to replace an existing
// file unless asked to.
func destination(src, dst string, overwrite bool) (string, error) {
	if dst == "" {
		if src == "-" {
			return "", errors.New("DESTINATION is required when reading from STDIN")
		}
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".pdf"
	}
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return "", fmt.Errorf("destination '%s' already exists, use --overwrite to replace it", dst)
	}
	return dst, nil
}
