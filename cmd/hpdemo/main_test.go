package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hp "github.com/pthm/horsepower"
	"github.com/pthm/horsepower/lib/dom"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "hpdemo version "+version+"\n", out.String())
}

func TestServeFlags(t *testing.T) {
	cmd := NewRootCommand()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	addr := serve.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, ":3030", addr.DefValue)
	assert.NotNil(t, serve.Flags().Lookup("static"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-file"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestLoggerFanout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hp.log")
	var term bytes.Buffer

	logger, closeLog, err := newLogger(&term, path, false)
	require.NoError(t, err)
	logger.Info("hello", "n", 1)
	logger.Debug("hidden")
	require.NoError(t, closeLog())

	assert.Contains(t, term.String(), "msg=hello n=1")
	assert.NotContains(t, term.String(), "hidden")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &rec))
	assert.Equal(t, "hello", rec["msg"])
}

func TestLoggerDebug(t *testing.T) {
	var term bytes.Buffer
	logger, closeLog, err := newLogger(&term, "", true)
	require.NoError(t, err)
	defer closeLog()

	logger.Debug("visible")
	assert.Contains(t, term.String(), "visible")
}

func TestDemoRuntime(t *testing.T) {
	var term bytes.Buffer
	logger, _, err := newLogger(&term, "", false)
	require.NoError(t, err)

	rt, err := newDemoRuntime(logger)
	require.NoError(t, err)
	assert.Len(t, rt.Components(), 4)

	doc := rt.Document()
	name, err := doc.QuerySelector("#name")
	require.NoError(t, err)
	hello, err := doc.QuerySelector("#hello")
	require.NoError(t, err)
	greet, err := doc.QuerySelector("#greeting")
	require.NoError(t, err)

	doc.Dispatch(hello, &dom.Event{Type: dom.Click})
	text, _ := dom.Attr(greet, "data-text")
	assert.Equal(t, "hello, stranger", text)

	doc.SetValue(name, "Ann")
	doc.Dispatch(name, &dom.Event{Type: dom.Input})
	assert.Equal(t, "Ann", rt.RootScope().String("name"))

	doc.Dispatch(hello, &dom.Event{Type: dom.Click})
	text, _ = dom.Attr(greet, "data-text")
	assert.Equal(t, "hello, Ann", text)

	g, ok := hp.FindComponent[*greeting](rt)
	require.True(t, ok)
	assert.Equal(t, "hello, Ann", g.text)
}
