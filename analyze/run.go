package analyze

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"cssdedup/common"
	"cssdedup/css"
	"cssdedup/state"
)

// Run is the action of analyze command: it prints duplicate selector
// statistics of a single stylesheet.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("analyze")

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

	top := DefaultTop
	if env.Cfg != nil {
		top = env.Cfg.Analysis.Top
	}
	if cmd.IsSet("top") {
		top = cmd.Int("top")
	}

	log.Debug("Analysis starting", zap.String("source", src), zap.Int("top", top))
	defer func(start time.Time) {
		log.Debug("Analysis completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	summary, err := process(src, env.CodePage, top, log)
	if err != nil {
		return err
	}

	if err := env.Rpt.StoreCopy("input/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to store stylesheet in debug report", zap.Error(err))
	}

	var buf bytes.Buffer
	if _, err := summary.WriteTo(&buf); err != nil {
		return err
	}
	env.Rpt.StoreData("analysis.txt", buf.Bytes())

	if _, err := cmd.Root().Writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write analysis: %w", err)
	}
	return nil
}

// process reads and scans the stylesheet independently of CLI framework.
func process(src string, enc encoding.Encoding, top int, log *zap.Logger) (*Summary, error) {
	data, err := common.ReadSource(src, enc)
	if err != nil {
		return nil, err
	}

	sheet := css.NewScanner(log).Scan(data, src)
	for _, w := range sheet.Warnings {
		log.Debug("Malformed stylesheet", zap.String("source", src), zap.String("problem", w))
	}

	summary := Summarize(sheet, top)
	summary.Source = src

	log.Debug("Selectors counted", zap.Int("rules", summary.Rules), zap.Int("unique", summary.Unique), zap.Int("removable", summary.Removable))
	return summary, nil
}
