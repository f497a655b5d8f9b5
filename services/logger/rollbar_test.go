package logsvc

import (
	"bytes"
	stderrors "errors"
	"log"
	"testing"

	pkgerrors "github.com/pkg/errors"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
)

func TestRollbarLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewRollbarLogger(log.New(buf, "", 0), core.NewTestConfig())
	logger.Enable(false)

	err := pkgerrors.Wrap(core.ErrInvalidImage, "decoding thumbnail")
	logger.Error("upload failed", err, core.Actor{ID: "adm-1", Username: "jane"})

	out := buf.String()
	assert.Contains(t, out, "upload failed")
	assert.Contains(t, out, "decoding thumbnail: invalid image data")
}

func TestStackTracer(t *testing.T) {
	frames, ok := rollbarerrors.StackTracer(pkgerrors.New("boom"))
	require.True(t, ok)
	require.NotEmpty(t, frames)
	assert.Contains(t, frames[0].Function, "TestStackTracer")

	_, ok = rollbarerrors.StackTracer(stderrors.New("plain"))
	assert.False(t, ok)
}
