package core

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderTeesInputAndOutput(t *testing.T) {
	var transcript bytes.Buffer
	rec := NewRecorder(&transcript)

	var sessionOut bytes.Buffer
	in := rec.Input(strings.NewReader("ls -l\n"))
	out := rec.Output(&sessionOut)

	got, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "ls -l\n", string(got))

	_, err = out.Write([]byte("total 0\n"))
	require.NoError(t, err)

	assert.Equal(t, "ls -l\ntotal 0\n", transcript.String())
	assert.Equal(t, "total 0\n", sessionOut.String())
}

func TestOpenTranscript(t *testing.T) {
	fs := afero.NewMemMapFs()

	fd, err := OpenTranscript(fs, "session_logs")
	require.NoError(t, err)
	defer fd.Close()

	_, err = fd.WriteString("hello")
	require.NoError(t, err)

	entries, err := afero.ReadDir(fs, "session_logs")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
