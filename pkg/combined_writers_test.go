package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedWriter_Write(t *testing.T) {
	stdout := &strings.Builder{}
	logFile := &strings.Builder{}
	rotated := "level=info msg=\"workout log loaded\"\n"
	logFile.WriteString(rotated)

	cw := NewCombinedWriter(stdout, logFile)
	require.NotNil(t, cw)
	assert.Len(t, cw.Writers, 2)
	assert.NoError(t, cw.Err)

	logged := "level=info msg=\"logged 20 reps of squats\"\n"
	deleted := "level=debug msg=\"deleted entry [id-3], undo open for 10s\"\n"
	n, err := cw.Write([]byte(logged))
	require.NoError(t, err)
	assert.Equal(t, 2*len(logged), n)
	n, err = cw.Write([]byte(deleted))
	require.NoError(t, err)
	assert.Equal(t, 2*len(deleted), n)

	assert.Equal(t, logged+deleted, stdout.String())
	assert.Equal(t, rotated+logged+deleted, logFile.String())
}

func TestCombinedWriter_Write_FullDisk(t *testing.T) {
	stdout := &strings.Builder{}

	cw := NewCombinedWriter(fullDiskWriter{}, stdout, fullDiskWriter{})
	line := "level=error msg=\"persist 3 workout entries: disk full\"\n"
	n, err := cw.Write([]byte(line))

	require.Error(t, err)
	assert.Equal(t, "no space left on device; no space left on device", err.Error())
	// the healthy writer still gets the line
	assert.Equal(t, len(line), n)
	assert.Equal(t, line, stdout.String())
}

func TestCombinedWriter_NoWriters(t *testing.T) {
	cw := NewCombinedWriter()
	n, err := cw.Write([]byte("nobody listens"))
	assert.NoError(t, err)
	assert.Zero(t, n)
}

type fullDiskWriter struct{}

func (fullDiskWriter) Write([]byte) (int, error) {
	return 0, errors.New("no space left on device")
}
