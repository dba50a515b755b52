package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invertedv/zclean/clean"
	"github.com/invertedv/zclean/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log := newLogger(&buf, "debug", "json")
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	log = newLogger(&buf, "bogus", "json")
	log.Debug().Msg("hidden")
	log.Info().Msg("info")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "info")
}

func TestSource(t *testing.T) {
	src, closer, e := source(&config.Config{Source: "csv", Dir: "/data"})
	require.Nil(t, e)
	defer closer()

	fs, ok := src.(*clean.FileSource)
	require.True(t, ok)
	assert.Equal(t, "/data", fs.Dir)

	_, _, e = source(&config.Config{Source: "oracle"})
	assert.NotNil(t, e)
}

func TestArgs(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	rootCmd.SetArgs([]string{"only-one"})
	assert.NotNil(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "accepts 2 arg(s)")
	assert.NotContains(t, out.String(), "Usage:")
}

func TestRunMissingZips(t *testing.T) {
	cfg := &config.Config{
		Source: "csv",
		Dir:    t.TempDir(),
		Zips:   filepath.Join(t.TempDir(), "absent.csv"),
		Radius: 25,
	}

	assert.NotNil(t, run(context.Background(), cfg, zerolog.Nop()))
}
