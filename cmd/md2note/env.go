package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-md2note/internal/config"
	"github.com/alnah/go-md2note/internal/publish"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, git and the browser client.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	// Runner executes git for the changed-articles lookup.
	Runner publish.Runner
	// NewClient creates the note.com client used by publish.
	NewClient func(publish.ClientConfig) publish.Client
	Config    *config.Config // Loaded once per command

	// configName is the config name that failed to load, for hints.
	configName string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Runner:  publish.ExecRunner{},
		NewClient: func(cfg publish.ClientConfig) publish.Client {
			return publish.NewRodClient(cfg)
		},
		Config: config.DefaultConfig(),
	}
}
