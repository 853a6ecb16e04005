package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu      sync.Mutex
	batches [][]models.SystemLog
}

func (r *recorder) write(batch []models.SystemLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
	return nil
}

func (r *recorder) all() []models.SystemLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SystemLog
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func TestPGHandler_OnlyErrorsAreBuffered(t *testing.T) {
	rec := &recorder{}
	h := newPGHandler(rec.write, time.Hour)
	logger := slog.New(h)

	logger.Info("ignored")
	logger.Warn("ignored too")
	logger.Error("register failed", "request_id", "req-1", "code", "STORE_FLUSH_FAILED", "error", "boom", "email", "a@example.com")
	h.Stop()

	rows := rec.all()
	require.Len(t, rows, 1)
	assert.Equal(t, "ERROR", rows[0].Level)
	assert.Equal(t, "register failed", rows[0].Message)
	assert.Equal(t, "req-1", rows[0].RequestID)
	assert.Equal(t, "STORE_FLUSH_FAILED", rows[0].Code)
	assert.Equal(t, "boom", rows[0].Error)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(rows[0].Extra, &extra))
	assert.Equal(t, "a@example.com", extra["email"])
}

func TestPGHandler_FlushesWhenBatchIsFull(t *testing.T) {
	rec := &recorder{}
	h := newPGHandler(rec.write, time.Hour)
	logger := slog.New(h)

	for i := 0; i < pgBatchSize; i++ {
		logger.Error("failure")
	}
	assert.Len(t, rec.all(), pgBatchSize)

	h.Stop()
}

func TestPGHandler_WithAttrsSharesBuffer(t *testing.T) {
	rec := &recorder{}
	h := newPGHandler(rec.write, time.Hour)
	slog.New(h).With("action", "login").Error("failure")
	h.Stop()

	rows := rec.all()
	require.Len(t, rows, 1)
	assert.Equal(t, "login", rows[0].Action)
}

func TestPGHandler_StopTwiceAndLogAfterStop(t *testing.T) {
	rec := &recorder{}
	h := newPGHandler(rec.write, time.Hour)
	logger := slog.New(h)

	logger.Error("before stop")
	h.Stop()
	assert.NotPanics(t, h.Stop)

	logger.Error("after stop")
	h.sink.mu.Lock()
	buffered := len(h.sink.buffer)
	h.sink.mu.Unlock()
	assert.Zero(t, buffered)

	rows := rec.all()
	require.Len(t, rows, 1)
	assert.Equal(t, "before stop", rows[0].Message)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandler_FansOutDespiteFailures(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiHandler(
		failingHandler{slog.NewJSONHandler(&bytes.Buffer{}, nil)},
		slog.NewJSONHandler(&buf, nil),
	)

	err := m.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0))
	assert.ErrorContains(t, err, "sink down")
	assert.Contains(t, buf.String(), "hello")
}

func TestMultiHandler_EnabledIfAnyHandlerIs(t *testing.T) {
	rec := &recorder{}
	pg := newPGHandler(rec.write, time.Hour)
	defer pg.Stop()

	m := NewMultiHandler(pg)
	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("STORE_FLUSH_FAILED").With("changes", 2).Errorf("flush failed")
	LogError(logger, "register failed", err, "email", "a@example.com")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "register failed", entry["msg"])
	assert.Equal(t, "STORE_FLUSH_FAILED", entry["code"])
	assert.Equal(t, "a@example.com", entry["email"])
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	LogError(logger, "operation failed", errors.New("standard error"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry["error"], "standard error")
	assert.NotContains(t, entry, "code")
}

func TestNewJSONHandler_LevelByEnv(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	dev := NewJSONHandler(&buf, "development")
	assert.True(t, dev.Enabled(ctx, slog.LevelDebug))

	prod := NewJSONHandler(&buf, "production")
	assert.False(t, prod.Enabled(ctx, slog.LevelDebug))
	assert.True(t, prod.Enabled(ctx, slog.LevelInfo))
}
