// mshtool is a CLI utility for inspecting Pandemic MSH model files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mshkit/internal/config"
	"github.com/Faultbox/mshkit/internal/logger"
	"github.com/Faultbox/mshkit/pkg/msh"
)

type app struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer
}

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithOptions(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    logFile(cfg.Logging.LogFile),
		Console: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a := &app{cfg: cfg, log: logger.L(), out: os.Stdout}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		err = a.cmdInfo(args)
	case "materials", "mats":
		err = a.cmdMaterials(args)
	case "models", "ls":
		err = a.cmdModels(args)
	case "anims":
		err = a.cmdAnims(args)
	case "textures", "tex":
		err = a.cmdTextures(args)
	case "dump":
		err = a.cmdDump(args)
	case "validate":
		err = a.cmdValidate(args)
	case "config":
		err = a.cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		a.log.Debug("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func logFile(path string) logger.FileConfig {
	if path == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(path)
}

func printUsage() {
	fmt.Println(`mshtool - Pandemic MSH model utility

Usage:
  mshtool [global options] <command> [options]

Global options:
  -config <file>      Config file (default ./mshtool.yaml)
  -debug              Enable debug logging
  -strict             Fail on dangling references
  -textures <a,b>     Texture search paths
  -format text|yaml   Report format
  -log <file>         Also write logs to a rotating file

Commands:
  info <file.msh>                  Show scene summary
  materials <file.msh>             List materials
  models <file.msh> [-tree]        List models
  anims <file.msh> [-cycle name]   List animation cycles and bone tracks
        [-frame n]                 Sample bone poses n frames into the cycle
  textures <file.msh> [-export]    Check or export referenced textures
  dump <file.msh> [-full] [-o out] Dump the document as YAML
  validate <file.msh>...           Parse strictly and report issues
  config [-write path]             Print or save the effective config

Examples:
  mshtool info rep_inf_trooper.msh
  mshtool models -tree rep_inf_trooper.msh
  mshtool -textures data/textures textures -export -o thumbs rep_inf_trooper.msh
  mshtool validate *.msh`)
}

// parse reads a document with the configured strictness.
func (a *app) parse(path string, strict bool) (*msh.Document, error) {
	a.log.Debug("parsing", zap.String("file", path), zap.Bool("strict", strict))
	return msh.ParseFile(path,
		msh.WithLogger(a.log.Named("msh").With(zap.String("file", path))),
		msh.WithStrict(strict),
	)
}

// open parses the single file argument of a command.
func (a *app) open(name string, fs *flag.FlagSet) (*msh.Document, string, error) {
	if fs.NArg() < 1 {
		return nil, "", fmt.Errorf("usage: mshtool %s <file.msh>", name)
	}
	path := fs.Arg(0)
	doc, err := a.parse(path, a.cfg.Parse.Strict)
	return doc, path, err
}
