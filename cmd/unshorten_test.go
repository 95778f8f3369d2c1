package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"unshortener/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Resolver.Timeout = 5 * time.Second
	cfg.Resolver.UserAgent = "unshortener-test"
	cfg.Resolver.Concurrency = 1
	cfg.CSV.UseCRLF = true

	return cfg
}

func newRedirectServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/s/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func runUnshorten(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := unshortenCommand(testConfig())
	var stdout bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, filepath.Join("data", "unshortened_links.csv"), outputPath(filepath.Join("data", "links.csv"), ""))
	require.Equal(t, "unshortened_links.csv", outputPath("links.csv", ""))
	require.Equal(t, "out.csv", outputPath("links.csv", "out.csv"))
	require.Equal(t, stdio, outputPath(stdio, ""))
}

func TestUnshorten_WritesNextToInput(t *testing.T) {
	srv := newRedirectServer(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "links.csv")
	require.NoError(t, os.WriteFile(input, []byte("name,url\nfoo,"+srv.URL+"/s/1\n"), 0o600))

	_, err := runUnshorten(t, "", input, "--column", "1")
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(dir, "unshortened_links.csv"))
	require.NoError(t, err)
	require.Equal(t, "name,url,Unshortened URL\r\nfoo,"+srv.URL+"/s/1,"+srv.URL+"/final\r\n", string(out))
}

func TestUnshorten_StdinToStdoutByColumnName(t *testing.T) {
	srv := newRedirectServer(t)

	out, err := runUnshorten(t, "url,note\n"+srv.URL+"/s/2,x\n", stdio, "--column-name", "url")
	require.NoError(t, err)
	require.Equal(t, "url,note,Unshortened URL\r\n"+srv.URL+"/s/2,x,"+srv.URL+"/final\r\n", out)
}

func TestUnshorten_ColumnBeyondHeader(t *testing.T) {
	out, err := runUnshorten(t, "a,b\n1,2\n", stdio, "--column", "5")
	require.NoError(t, err)
	require.Equal(t, "a,b,Unshortened URL\r\n1,2,Error: Column index out of range\r\n", out)
}

func TestUnshorten_Errors(t *testing.T) {
	t.Run("no column without a terminal", func(t *testing.T) {
		_, err := runUnshorten(t, "a,b\n1,2\n", stdio)
		require.ErrorContains(t, err, "no column selected")
	})

	t.Run("unknown column name", func(t *testing.T) {
		_, err := runUnshorten(t, "a,b\n1,2\n", stdio, "--column-name", "url")
		require.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := runUnshorten(t, "", stdio, "--column", "0")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runUnshorten(t, "", filepath.Join(t.TempDir(), "missing.csv"), "--column", "0")
		require.ErrorContains(t, err, "could not read input file")
	})
}
