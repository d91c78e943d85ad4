package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ytget/progdeck/internal/config"
	"github.com/ytget/progdeck/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName    = "progdeck"
	EnvFile    = ".env"
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses global flags, wires settings, logging and the document service,
// then dispatches to a command
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		settingsPath string
		documentPath string
		envFile      string
		debug        bool
	)
	fs.StringVar(&settingsPath, "config", config.DefaultSettingsPath(), "settings file")
	fs.StringVar(&documentPath, "file", "", "programs document (.json, .yaml, .toml); overrides settings")
	fs.StringVar(&envFile, "env", EnvFile, "dotenv file with PROGDECK_* variables")
	fs.BoolVar(&debug, "debug", false, "verbose development logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <command> [args]\n\ncommands:\n%s\nflags:\n", AppName, commandHelp())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ExitUsage
	}

	if err := config.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", AppName, err)
		return ExitFailed
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", AppName, err)
		return ExitFailed
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", AppName, err)
		return ExitFailed
	}
	if documentPath != "" {
		settings.SetDocumentPath(documentPath)
	}

	logger := newLogger(settings.GetLogLevel(), debug, stderr)
	defer func() { _ = logger.Sync() }()

	docs := platform.NewDocumentService()
	docs.SetIndent(settings.GetIndent())
	docs.SetLogger(logger.Named("document"))

	app := &cli{
		settings:     settings,
		settingsPath: settingsPath,
		docs:         docs,
		logger:       logger,
		stdout:       stdout,
		stderr:       stderr,
	}
	return app.dispatch(fs.Arg(0), fs.Args()[1:])
}

// newLogger builds a console logger writing to w
func newLogger(level zapcore.Level, debug bool, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core).Named(AppName)
}
