package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/checks"
	"github.com/dhamidi/javalint/config"
	"github.com/dhamidi/javalint/workspace"
)

// loadConfig reads the file at path, or the one found from dir when path
// is empty.
func loadConfig(path, dir string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDir(dir)
}

func newRunner(cfg *config.Config) (*check.Runner, error) {
	reg := checks.NewRegistry()
	specs, err := cfg.Specs(reg)
	if err != nil {
		return nil, err
	}
	return &check.Runner{Registry: reg, Specs: specs, Jobs: cfg.Jobs}, nil
}

// loadRunner builds the runner for the configuration found from rootDir.
func loadRunner(rootDir string) (*check.Runner, error) {
	cfg, err := config.LoadDir(rootDir)
	if err != nil {
		return nil, err
	}
	return newRunner(cfg)
}

// javaFiles expands directories in args to the Java files below them.
func javaFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := workspace.JavaFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", arg, err)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func hasErrors(violations []check.Violation) bool {
	for _, v := range violations {
		if v.Severity >= check.Error {
			return true
		}
	}
	return false
}
