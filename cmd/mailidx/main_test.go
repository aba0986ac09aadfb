package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/mailidx"
	"github.com/poiesic/mailidx/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func testApp(action cli.ActionFunc, flags ...cli.Flag) *cli.App {
	return &cli.App{
		Name: "mailidx",
		Commands: []*cli.Command{
			{
				Name:   "cmd",
				Action: action,
				Flags:  flags,
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Required: true,
	}
}

func TestRunCommand_MissingDBFlagFails(t *testing.T) {
	app := testApp(runCommand, dbFlag())
	err := app.Run([]string{"mailidx", "cmd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestRunCommand_IncompleteConfigFails(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PINECONE_API_KEY", "")

	app := testApp(runCommand, dbFlag(),
		&cli.StringFlag{Name: "credentials", Value: "credentials.json"},
		&cli.StringFlag{Name: "token", Value: "token.json"},
		&cli.DurationFlag{Name: "every"},
		&cli.StringFlag{Name: "embedding-model"})
	err := app.Run([]string{"mailidx", "cmd", "--db", filepath.Join(t.TempDir(), "state")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing mandatory configuration")
}

func TestConfigSetGetRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state")

	setApp := testApp(configSetCommand, dbFlag())
	err := setApp.Run([]string{"mailidx", "cmd", "--db", dbPath,
		config.KeyIndexName, "threads"})
	require.NoError(t, err)

	ix, err := mailidx.NewIndexer(dbPath)
	require.NoError(t, err)
	defer ix.Close()

	value, err := ix.StateStore().ConfigValue(context.Background(), config.KeyIndexName)
	require.NoError(t, err)
	assert.Equal(t, "threads", value)
}

func TestConfigSetCommand_RejectsWrongArity(t *testing.T) {
	app := testApp(configSetCommand, dbFlag())
	err := app.Run([]string{"mailidx", "cmd", "--db", filepath.Join(t.TempDir(), "state"),
		"only-a-key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config set")
}

func TestResetCommand_ClearsFingerprints(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state")
	ctx := context.Background()

	ix, err := mailidx.NewIndexer(dbPath)
	require.NoError(t, err)
	require.NoError(t, ix.StateStore().PutFingerprints(ctx, map[string]string{"t-1": "42"}))
	require.NoError(t, ix.Close())

	app := testApp(resetCommand, dbFlag())
	require.NoError(t, app.Run([]string{"mailidx", "cmd", "--db", dbPath}))

	ix, err = mailidx.NewIndexer(dbPath)
	require.NoError(t, err)
	defer ix.Close()

	fingerprints, err := ix.StateStore().Fingerprints(ctx)
	require.NoError(t, err)
	assert.Empty(t, fingerprints)

	state, err := ix.StateStore().LastRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Zero(t, state.Watermark)
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
