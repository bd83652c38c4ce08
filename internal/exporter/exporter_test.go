package exporter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelexport/pkg/types"
)

func writeModel(t *testing.T, root, subdir, name string, content []byte) string {
	t.Helper()
	dir := filepath.Join(root, subdir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

type recordingObserver struct{ results []Result }

func (o *recordingObserver) ObserveExport(res Result, _ time.Duration) {
	o.results = append(o.results, res)
}

func TestExport_Success(t *testing.T) {
	root := t.TempDir()
	payload := []byte("safetensors-bytes")
	src := writeModel(t, root, "Stable-diffusion", "a.safetensors", payload)
	mtime := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	out := filepath.Join(t.TempDir(), "out")
	res := New().Export(Request{LibraryRoot: root, Category: types.CategoryCheckpoints, FileName: "a.safetensors", Destination: out})

	require.True(t, res.OK, res.Message())
	assert.Equal(t, ReasonNone, res.Reason)
	assert.Equal(t, out, res.Destination)
	assert.Equal(t, "✅ exported to "+out, res.Message())
	assert.Empty(t, res.Error())

	got, err := os.ReadFile(filepath.Join(out, "a.safetensors"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	fi, err := os.Stat(filepath.Join(out, "a.safetensors"))
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(mtime), "mtime %v", fi.ModTime())
}

func TestExport_MissingParameters(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "Lora", "l.safetensors", []byte("x"))
	out := filepath.Join(t.TempDir(), "never-created")

	full := Request{LibraryRoot: root, Category: types.CategoryLoRA, FileName: "l.safetensors", Destination: out}
	cases := map[string]Request{}
	r := full
	r.LibraryRoot = ""
	cases["root"] = r
	r = full
	r.Category = ""
	cases["category"] = r
	r = full
	r.FileName = ""
	cases["file"] = r
	r = full
	r.Destination = ""
	cases["destination"] = r

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			res := New().Export(req)
			assert.False(t, res.OK)
			assert.Equal(t, ReasonMissingParameters, res.Reason)
			assert.Equal(t, "❌ missing required parameters", res.Message())
			_, err := os.Stat(out)
			assert.True(t, os.IsNotExist(err), "destination must not be created")
		})
	}
}

func TestExport_SourceNotFound(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	res := New().Export(Request{LibraryRoot: root, Category: types.CategoryVAE, FileName: "missing.pt", Destination: out})
	assert.False(t, res.OK)
	assert.Equal(t, ReasonSourceNotFound, res.Reason)
	assert.Equal(t, "❌ source file does not exist", res.Message())
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "destination must not be created")
}

func TestExport_SourceIsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "VAE", "dir.pt"), 0o755))
	res := New().Export(Request{LibraryRoot: root, Category: types.CategoryVAE, FileName: "dir.pt", Destination: t.TempDir()})
	assert.Equal(t, ReasonSourceNotFound, res.Reason)
}

func TestExport_RejectsPathInFileName(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "Lora", "x.bin", []byte("x"))
	res := New().Export(Request{LibraryRoot: root, Category: types.CategoryEmbeddings, FileName: "../Lora/x.bin", Destination: t.TempDir()})
	assert.Equal(t, ReasonSourceNotFound, res.Reason)
}

func TestExport_DeletedSourceLeavesPriorExportUntouched(t *testing.T) {
	root := t.TempDir()
	src := writeModel(t, root, "Stable-diffusion", "a.safetensors", []byte("v1"))
	out := filepath.Join(t.TempDir(), "out")
	e := New()
	req := Request{LibraryRoot: root, Category: types.CategoryCheckpoints, FileName: "a.safetensors", Destination: out}

	require.True(t, e.Export(req).OK)
	require.NoError(t, os.Remove(src))

	res := e.Export(req)
	assert.Equal(t, ReasonSourceNotFound, res.Reason)
	got, err := os.ReadFile(filepath.Join(out, "a.safetensors"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}

func TestExport_OverwritesExistingDestination(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "embeddings", "e.pt", []byte("fresh"))
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "e.pt"), []byte("stale and longer"), 0o644))

	res := New().Export(Request{LibraryRoot: root, Category: types.CategoryEmbeddings, FileName: "e.pt", Destination: out})
	require.True(t, res.OK, res.Message())
	got, _ := os.ReadFile(filepath.Join(out, "e.pt"))
	assert.Equal(t, "fresh", string(got))
}

func TestExport_DestinationIsFile(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "Lora", "l.ckpt", []byte("x"))
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	res := New().Export(Request{LibraryRoot: root, Category: types.CategoryLoRA, FileName: "l.ckpt", Destination: blocker})
	assert.False(t, res.OK)
	assert.Equal(t, ReasonIOError, res.Reason)
	require.Error(t, res.Err)
	assert.True(t, strings.HasPrefix(res.Message(), "❌ error: "), res.Message())
}

func TestExport_CopyFailureAndPanicAreCaptured(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "Lora", "l.bin", []byte("x"))
	req := Request{LibraryRoot: root, Category: types.CategoryLoRA, FileName: "l.bin", Destination: t.TempDir()}

	e := New()
	e.copyFile = func(src, dst string) error { return errors.New("disk full") }
	res := e.Export(req)
	assert.Equal(t, ReasonIOError, res.Reason)
	assert.Equal(t, "❌ error: disk full", res.Message())

	e.copyFile = func(src, dst string) error { panic("boom") }
	res = e.Export(req)
	assert.Equal(t, ReasonIOError, res.Reason)
	assert.Contains(t, res.Message(), "boom")
}

func TestExport_ObserverAndLogger(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "VAE", "v.pt", []byte("x"))
	var buf bytes.Buffer
	obs := &recordingObserver{}
	e := New(WithLogger(zerolog.New(&buf)), WithObserver(obs))

	e.Export(Request{LibraryRoot: root, Category: types.CategoryVAE, FileName: "v.pt", Destination: t.TempDir()})
	e.Export(Request{})

	require.Len(t, obs.results, 2)
	assert.True(t, obs.results[0].OK)
	assert.Equal(t, ReasonMissingParameters, obs.results[1].Reason)
	assert.Contains(t, buf.String(), `"reason":"none"`)
	assert.Contains(t, buf.String(), `"reason":"missing_parameters"`)
}

func TestResult_Error(t *testing.T) {
	var err error = failed(ReasonSourceNotFound, nil)
	assert.EqualError(t, err, "❌ source file does not exist")
}

func TestExport_UnknownCategory(t *testing.T) {
	root := t.TempDir()
	// a file directly under root must not be reachable through an unmapped category
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.pt"), []byte("x"), 0o644))
	out := filepath.Join(t.TempDir(), "out")
	res := New().Export(Request{LibraryRoot: root, Category: "Hypernetworks", FileName: "x.pt", Destination: out})
	assert.Equal(t, ReasonSourceNotFound, res.Reason)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}
