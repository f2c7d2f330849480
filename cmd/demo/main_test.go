package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func messages(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()

	var out []string

	dec := json.NewDecoder(buf)
	for dec.More() {
		var line struct {
			Message string `json:"message"`
		}
		require.NoError(t, dec.Decode(&line))

		out = append(out, line.Message)
	}

	return out
}

func TestWithStorage(t *testing.T) {
	testCases := []struct {
		name         string
		batch        func() error
		wantErr      bool
		wantMessages []string
	}{
		{
			name:         "OK",
			batch:        func() error { return nil },
			wantMessages: []string{"opening transaction storage", "closing transaction storage"},
		},
		{
			name:         "Error",
			batch:        func() error { return errors.New("disk full") },
			wantErr:      true,
			wantMessages: []string{"opening transaction storage", "storage error", "closing transaction storage"},
		},
		{
			name:         "Panic",
			batch:        func() error { panic("boom") },
			wantErr:      true,
			wantMessages: []string{"opening transaction storage", "storage error", "closing transaction storage"},
		},
	}

	for _, tc := range testCases {
		var buf bytes.Buffer

		err := withStorage(zerolog.New(&buf), tc.batch)
		if tc.wantErr {
			require.Error(t, err, tc.name)
		} else {
			require.NoError(t, err, tc.name)
		}

		require.Equal(t, tc.wantMessages, messages(t, &buf), tc.name)
	}
}
