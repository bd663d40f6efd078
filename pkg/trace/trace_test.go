package trace

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() Event {
	return Event{
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC),
		SessionID: "f2f1d8a0-6d3f-4f8e-9b1a-2c5e7d0a4b6c",
		Direction: DirectionOut,
		Category:  CategoryQuery,
		Resource:  "TCPIP0::192.168.1.50::5025::SOCKET",
		Command:   "MEAS:VOLT?",
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		want := sampleEvent()

		data, err := EncodeEvent(want)
		require.NoError(t, err)

		got, err := DecodeEvent(data)
		require.NoError(t, err)

		assert.True(t, got.Timestamp.Equal(want.Timestamp), "timestamp %v != %v", got.Timestamp, want.Timestamp)
		assert.Equal(t, want.SessionID, got.SessionID)
		assert.Equal(t, want.Direction, got.Direction)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.Resource, got.Resource)
		assert.Equal(t, want.Command, got.Command)
	})

	t.Run("NanosecondPrecision", func(t *testing.T) {
		want := sampleEvent()

		data, err := EncodeEvent(want)
		require.NoError(t, err)
		got, err := DecodeEvent(data)
		require.NoError(t, err)

		assert.Equal(t, want.Timestamp.Nanosecond(), got.Timestamp.Nanosecond())
	})

	t.Run("Deterministic", func(t *testing.T) {
		e := sampleEvent()
		a, err := EncodeEvent(e)
		require.NoError(t, err)
		b, err := EncodeEvent(e)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := DecodeEvent([]byte{0xff, 0x00})
		assert.Error(t, err)
	})
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "OUT", DirectionOut.String())
	assert.Equal(t, "IN", DirectionIn.String())
	assert.Equal(t, "UNKNOWN", Direction(9).String())

	cases := map[Category]string{
		CategoryCommand:  "COMMAND",
		CategoryQuery:    "QUERY",
		CategoryResponse: "RESPONSE",
		CategoryState:    "STATE",
		CategoryError:    "ERROR",
		Category(9):      "UNKNOWN",
	}
	for cat, want := range cases {
		assert.Equal(t, want, cat.String())
	}
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.strc")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	base := sampleEvent()
	events := []Event{base, base, base}
	events[1].Category = CategoryResponse
	events[1].Direction = DirectionIn
	events[1].Response = "12.5"
	events[2].SessionID = "other-session"

	for _, e := range events {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())

	t.Run("ReadAll", func(t *testing.T) {
		r, err := NewReader(path)
		require.NoError(t, err)
		defer r.Close()

		var got []Event
		for {
			e, err := r.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, e)
		}
		require.Len(t, got, 3)
		assert.Equal(t, "12.5", got[1].Response)
	})

	t.Run("FilterBySession", func(t *testing.T) {
		r, err := NewFilteredReader(path, Filter{SessionID: "other-session"})
		require.NoError(t, err)
		defer r.Close()

		e, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "other-session", e.SessionID)

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("FilterByCategory", func(t *testing.T) {
		cat := CategoryResponse
		r, err := NewFilteredReader(path, Filter{Category: &cat})
		require.NoError(t, err)
		defer r.Close()

		e, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, CategoryResponse, e.Category)
		assert.Equal(t, DirectionIn, e.Direction)

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("FilterByTime", func(t *testing.T) {
		after := base.Timestamp.Add(time.Second)
		r, err := NewFilteredReader(path, Filter{TimeStart: &after})
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("LogAfterCloseIgnored", func(t *testing.T) {
		logger, err := NewFileLogger(filepath.Join(t.TempDir(), "closed.strc"))
		require.NoError(t, err)
		require.NoError(t, logger.Close())
		require.NoError(t, logger.Close(), "second close is a no-op")
		logger.Log(sampleEvent())
	})
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.strc")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		require.NoError(t, err)
		logger.Log(sampleEvent())
		require.NoError(t, logger.Close())
	}

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	count := 0
	for {
		if _, err := r.Next(); err == io.EOF {
			break
		} else {
			require.NoError(t, err)
		}
		count++
	}
	assert.Equal(t, 2, count)
}

func TestMultiLogger(t *testing.T) {
	var a, b recordingLogger
	m := NewMultiLogger(&a, &b, NoopLogger{})

	m.Log(sampleEvent())
	m.Log(sampleEvent())

	assert.Len(t, a.events, 2)
	assert.Len(t, b.events, 2)
}

type recordingLogger struct {
	events []Event
}

func (l *recordingLogger) Log(e Event) {
	l.events = append(l.events, e)
}
