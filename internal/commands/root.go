// Lantern: one contract for scraping many manga sites.
// Copyright (C) 2025 The Lantern Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package commands implements the lantern command line.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"Lantern/internal/config"
	"Lantern/pkg/cli"
	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/source"
	"Lantern/pkg/util"
)

// App carries what every command needs. Engine may be set up front; when it
// is nil the root command builds one from configuration.
type App struct {
	Engine    *engine.Engine
	Formatter *cli.Formatter
	Version   string
	Now       func() time.Time

	// Out and Err replace stdout and stderr when set
	Out io.Writer
	Err io.Writer

	configPath string
	debug      bool
	jsonOutput bool
	table      bool
	noColor    bool
	timeout    time.Duration
}

// NewApp creates an App with default collaborators
func NewApp(version string) *App {
	return &App{
		Formatter: cli.NewFormatter(os.Stdout),
		Version:   version,
		Now:       time.Now,
	}
}

// NewRootCmd builds the command tree bound to app
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lantern",
		Short:         "Lantern reads manga sites through one uniform interface.",
		Long:          "Lantern looks up manga, chapters and pages on supported sites, searches them with tag filters and reports which titles were updated.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Path to a lantern.yaml configuration file")
	flags.BoolVar(&app.debug, "debug", false, "Enable debug logging and detailed error output")
	flags.BoolVar(&app.jsonOutput, "json", false, "Print machine readable JSON")
	flags.BoolVar(&app.table, "table", false, "Print listings as tables")
	flags.BoolVar(&app.noColor, "no-color", false, "Disable colored output")
	flags.DurationVar(&app.timeout, "timeout", 2*time.Minute, "Give up on a command after this long")

	if app.Out != nil {
		root.SetOut(app.Out)
	}
	if app.Err != nil {
		root.SetErr(app.Err)
	}

	root.AddCommand(
		newSourcesCmd(app),
		newDetailsCmd(app),
		newChaptersCmd(app),
		newPagesCmd(app),
		newSearchCmd(app),
		newUpdatesCmd(app),
		newVersionCmd(app),
	)
	return root
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if app.Engine != nil {
		defer app.Engine.Shutdown()
	}
	if err == nil {
		return 0
	}

	if app.jsonOutput {
		util.WriteJSON(app.Formatter.Writer, "error", nil, err)
	} else {
		app.Formatter.Writer = root.ErrOrStderr()
		app.Formatter.HandleError(err)
	}
	return 1
}

func (app *App) setup(cmd *cobra.Command) error {
	app.Formatter.Writer = cmd.OutOrStdout()
	app.Formatter.Debug = app.debug
	app.Formatter.SetColor(!app.noColor)
	if app.table {
		app.Formatter.OutputType = cli.OutputTypeTable
	}
	if app.Now == nil {
		app.Now = time.Now
	}

	if app.Engine == nil {
		cfg, err := config.Load(app.configPath)
		if err != nil {
			return err
		}
		var console io.Writer
		if app.debug {
			console = cmd.ErrOrStderr()
		}
		eng, err := Bootstrap(cfg, console)
		if err != nil {
			return err
		}
		app.Engine = eng
	}

	if app.debug {
		app.Engine.SetDebugMode(true)
	}
	return nil
}

// commandContext bounds a command by --timeout and carries the concurrency limit
func (app *App) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = core.WithConcurrency(ctx, app.Engine.Settings.Concurrency)
	if app.timeout > 0 {
		return context.WithTimeout(ctx, app.timeout)
	}
	return context.WithCancel(ctx)
}

// lookup resolves a source id given on the command line
func (app *App) lookup(id string) (source.Source, error) {
	return app.Engine.GetSource(id)
}

// emit writes data as JSON when --json is set and reports whether it did
func (app *App) emit(data interface{}) (bool, error) {
	if !app.jsonOutput {
		return false, nil
	}
	return true, util.WriteJSON(app.Formatter.Writer, "success", data, nil)
}
