package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"gvs/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare returns configured zap logger for use by the program. When debug
// report is requested file logging is forced to debug level and the log file
// is added to the report.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	consoleLP, consoleHP := consoleCores(conf.ConsoleLogger.Level)

	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = "debug", "overwrite"
	}

	fc, redirected, err := fileCore(conf.FileLogger.Destination, level, mode, rpt)
	if err != nil {
		return nil, err
	}

	core := zap.New(zapcore.NewTee(consoleHP, consoleLP, fc), zap.AddCaller())
	if len(redirected) != 0 {
		core.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return core.Named(misc.GetAppName()), nil
}

// consoleCores returns cores for stdout (below error) and stderr (errors and above).
func consoleCores(level string) (zapcore.Core, zapcore.Core) {
	var minLevel zapcore.Level
	switch level {
	case "normal":
		minLevel = zapcore.InfoLevel
	case "debug":
		minLevel = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}

	lp := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return minLevel <= lvl && lvl < zapcore.ErrorLevel
		}))
	hp := zapcore.NewCore(newEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return lp, hp
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// fileCore opens file log destination falling back to temporary file. It
// returns name of the temporary file when fallback happened.
func fileCore(dest, level, mode string, rpt *Report) (zapcore.Core, string, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "normal":
		lvl = zapcore.InfoLevel
	default:
		return zapcore.NewNopCore(), "", nil
	}

	capturePanics(filepath.Dir(dest), mode, rpt)

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if f, err := openLog(dest, mode); err == nil {
		rpt.Store("final.log", f.Name())
		return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(lvl)), "", nil
	}
	f, err := os.CreateTemp("", misc.GetAppName()+".*.log")
	if err != nil {
		return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", dest, err)
	}
	rpt.Store("final.log", f.Name())
	return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(lvl)), f.Name(), nil
}

// capturePanics redirects crash output next to the log file if possible.
func capturePanics(dir, mode string, rpt *Report) {
	ef, err := openLog(filepath.Join(dir, misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		if ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			// just quietly ignore
			return
		}
	}
	debug.SetCrashOutput(ef, debug.CrashOptions{})
	rpt.Store("panic.log", ef.Name())
	ef.Close()
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
