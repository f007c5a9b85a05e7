// Package generate implements program actions: producing global stylesheet
// from recipe definitions and describing loaded definitions.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gvs/config"
	"gvs/css"
	"gvs/definition"
	"gvs/misc"
	"gvs/recipe"
	"gvs/registry"
	"gvs/state"
)

const outputExt = ".css"

// Run is the generate subcommand action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no definition source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.Stdout = cmd.Bool("overwrite"), cmd.Bool("stdout")

	var dst string
	if env.Stdout {
		// console log shares STDOUT with the stylesheet
		log = log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	} else if dst, err = outputPath(src, cmd.Args().Get(1)); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, os.Stdout, env, log)
}

// Describe is the describe subcommand action.
func Describe(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no definition source has been specified")
	}
	return describe(src, os.Stdout, env, env.Log.Named("describe"))
}

// outputPath returns destination stylesheet path. Without destination file
// is placed into working directory, destination ending with path separator
// or naming existing directory gets default file name inside it.
func outputPath(src, dst string) (string, error) {
	name := config.CleanFileName(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))) + outputExt

	if len(dst) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
		return filepath.Join(wd, name), nil
	}

	dir := strings.HasSuffix(dst, string(filepath.Separator)) || strings.HasSuffix(dst, "/")
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		dir = true
	}
	dst, err := filepath.Abs(dst)
	if err != nil {
		return "", err
	}
	if dir {
		return filepath.Join(dst, name), nil
	}
	return dst, nil
}

// process handles generation independently of CLI framework. When dst is
// empty result goes to out.
func process(ctx context.Context, src, dst string, out io.Writer, env *state.LocalEnv, log *zap.Logger) error {
	if len(dst) > 0 && !env.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("destination already exists, use --overwrite to replace: %s", dst)
		}
	}

	file, err := definition.NewLoader(env.Separator(), log).Load(src)
	if err != nil {
		return err
	}
	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to add definition to the report", zap.Error(err))
	}

	sheet := registry.New(log)
	expander := recipe.NewExpander(log)
	for _, r := range file.Recipes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := expander.Apply(r.Options, sheet); err != nil {
			return fmt.Errorf("unable to apply recipe %q: %w", r.Name, err)
		}
	}
	log.Debug("Recipes applied", zap.Int("recipes", len(file.Recipes)), zap.Int("registrations", sheet.Len()))

	data, err := render(sheet.Stylesheet(), src, env)
	if err != nil {
		return err
	}
	verify(data, log)

	name := "output/" + filepath.Base(dst)
	if len(dst) == 0 {
		name = "output/stdout" + outputExt
	}
	env.Rpt.StoreData(name, data)

	if len(dst) == 0 {
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("unable to write stylesheet: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	log.Info("Stylesheet written", zap.String("file", dst), zap.Int("rules", sheet.Len()))
	return nil
}

func render(sheet *css.Stylesheet, src string, env *state.LocalEnv) ([]byte, error) {
	indent := "  "
	banner := true
	if env.Cfg != nil {
		indent, banner = env.Cfg.Generator.Indent, env.Cfg.Generator.Banner
	}

	var buf bytes.Buffer
	if banner {
		fmt.Fprintf(&buf, "/* Generated by %s %s from %s. DO NOT EDIT. */\n\n", misc.GetAppName(), misc.GetVersion(), filepath.Base(src))
	}
	if _, err := sheet.Format(&buf, indent); err != nil {
		return nil, fmt.Errorf("unable to format stylesheet: %w", err)
	}
	return buf.Bytes(), nil
}

// verify reads generated stylesheet back and reports anything parser did not
// understand, usually result of a broken selector template.
func verify(data []byte, log *zap.Logger) {
	parsed := css.NewParser(log).Parse(data, "generated")
	for _, w := range parsed.Warnings {
		log.Warn("Generated stylesheet problem", zap.String("warning", w))
	}
}

func describe(src string, out io.Writer, env *state.LocalEnv, log *zap.Logger) error {
	file, err := definition.NewLoader(env.Separator(), log).Load(src)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, file.Describe()); err != nil {
		return fmt.Errorf("unable to write description: %w", err)
	}
	return nil
}
