// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLog(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry *log.Entry
		want  string
	}{
		{
			name:  "debug",
			entry: &log.Entry{Level: log.DebugLevel, Message: "registry built", Timestamp: ts},
			want:  "2026-03-01 09:30:00 D registry built\n",
		},
		{
			name:  "trace prefix",
			entry: &log.Entry{Level: log.DebugLevel, Message: "TRACE: coerce miss", Timestamp: ts},
			want:  "2026-03-01 09:30:00 T coerce miss\n",
		},
		{
			name:  "warn",
			entry: &log.Entry{Level: log.WarnLevel, Message: "skipped record", Timestamp: ts},
			want:  "2026-03-01 09:30:00 W skipped record\n",
		},
		{
			name: "error field",
			entry: &log.Entry{
				Level:     log.ErrorLevel,
				Message:   "load failed",
				Timestamp: ts,
				Fields:    log.Fields{"error": errors.New("boom")},
			},
			want: "2026-03-01 09:30:00 E load failed: error=boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{Writer: &buf}
			require.NoError(t, h.HandleLog(tt.entry))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestInitLoggerLevels(t *testing.T) {
	tests := []struct {
		env       string
		wantTrace bool
	}{
		{env: "trace", wantTrace: true},
		{env: "debug", wantTrace: false},
		{env: "bogus", wantTrace: false},
		{env: "", wantTrace: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LEADQ_LOG", tt.env)
			InitLogger()
			assert.Equal(t, tt.wantTrace, traceEnabled)
		})
	}
}
