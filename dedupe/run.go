// Package dedupe merges duplicated rules of a stylesheet.
package dedupe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"cssdedup/common"
	"cssdedup/config"
	"cssdedup/css"
	"cssdedup/state"
)

// options controls single dedupe run independently of CLI framework.
type options struct {
	src, dst string
	enc      encoding.Encoding
	backup   bool
	rpt      *config.Report
}

// Run is the action of dedupe command: it rewrites stylesheet keeping one
// merged rule per selector.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dedupe")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return &common.UsageError{
			Usage:  cmd.FullName() + " <path-to-css>",
			Reason: "no input stylesheet has been specified",
		}
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	opts := options{src: src, dst: src, enc: env.CodePage, rpt: env.Rpt}
	if out := cmd.String("output"); len(out) > 0 {
		opts.dst = out
	}
	if env.Cfg != nil {
		opts.backup = env.Cfg.Dedupe.Backup && opts.dst == opts.src
	}

	log.Debug("Deduplication starting", zap.String("source", opts.src), zap.String("destination", opts.dst))
	defer func(start time.Time) {
		log.Debug("Deduplication completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	n, err := process(opts, log)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cmd.Root().Writer, "Deduplicated: wrote %d bytes\n", n); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	return nil
}

// process reads, merges and writes the stylesheet. It returns the number of
// bytes written.
func process(opts options, log *zap.Logger) (int, error) {
	data, err := common.ReadSource(opts.src, opts.enc)
	if err != nil {
		return 0, err
	}
	// must be taken before destination is overwritten
	if err := opts.rpt.StoreCopy("input/"+filepath.Base(opts.src), opts.src); err != nil {
		log.Warn("Unable to store stylesheet in debug report", zap.Error(err))
	}

	sheet := css.NewScanner(log).Scan(data, opts.src)
	for _, w := range sheet.Warnings {
		log.Debug("Malformed stylesheet", zap.String("source", opts.src), zap.String("problem", w))
	}

	selectors := sheet.Aggregate()

	var buf bytes.Buffer
	if _, err := sheet.Rewrite(&buf, selectors); err != nil {
		return 0, fmt.Errorf("unable to rewrite stylesheet: %w", err)
	}

	if opts.backup {
		if err := backup(opts.src); err != nil {
			return 0, err
		}
	}
	if err := common.WriteSource(opts.dst, buf.Bytes()); err != nil {
		return 0, err
	}
	opts.rpt.Store("output/"+filepath.Base(opts.dst), opts.dst)

	merged := 0
	for _, info := range selectors {
		merged += info.Count - 1
	}
	log.Debug("Stylesheet deduplicated",
		zap.Int("tokens", len(sheet.Tokens)),
		zap.Int("selectors", len(selectors)),
		zap.Int("merged", merged),
		zap.Int("bytes", buf.Len()))

	return buf.Len(), nil
}

// backup keeps original content of the file next to it as FILE.bak.
func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet for backup: %w", err)
	}
	if err := common.WriteSource(path+".bak", data); err != nil {
		return fmt.Errorf("unable to backup stylesheet: %w", err)
	}
	return nil
}
