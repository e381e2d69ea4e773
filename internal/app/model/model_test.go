package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "rfc3339 with zone", in: `"2025-01-02T03:04:05+02:00"`, want: time.Date(2025, 1, 2, 1, 4, 5, 0, time.UTC)},
		{name: "naive iso", in: `"2025-01-02T03:04:05.123456"`, want: time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC)},
		{name: "space separated", in: `"2025-01-02 03:04:05"`, want: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_NullAndEmpty(t *testing.T) {
	for _, in := range []string{`null`, `""`} {
		ts := Timestamp{Time: time.Now()}
		require.NoError(t, json.Unmarshal([]byte(in), &ts))
		assert.True(t, ts.IsZero())
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))

	data, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestArtifacts_DropsNonStrings(t *testing.T) {
	var job TranscriptionJob
	require.NoError(t, json.Unmarshal([]byte(`{"id":"j","status":"succeeded","artifacts":{"srt":"http://a/j.srt","vtt":null,"n":3}}`), &job))
	assert.Equal(t, Artifacts{"srt": "http://a/j.srt"}, job.Artifacts)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"j","status":"running","artifacts":null}`), &job))
	assert.Nil(t, job.Artifacts)
}

func TestTranscriptionJob_ResultInvariant(t *testing.T) {
	text, lang, conf := "hola", "es", 0.9
	job := TranscriptionJob{
		ID:               "j",
		Status:           JobStatusRunning,
		TextFull:         &text,
		LanguageDetected: &lang,
		Confidence:       &conf,
		Artifacts:        Artifacts{"srt": "x"},
	}

	running := job.WithResultInvariant()
	assert.Empty(t, running.Text())
	assert.Empty(t, running.Language())
	assert.Nil(t, running.Confidence)
	assert.Nil(t, running.Artifacts)

	job.Status = JobStatusSucceeded
	done := job.WithResultInvariant()
	assert.Equal(t, "hola", done.Text())
	assert.Equal(t, "es", done.Language())
}

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.True(t, JobStatusSucceeded.IsTerminal())
	assert.True(t, JobStatusFailed.IsTerminal())
	assert.False(t, JobStatusRunning.IsTerminal())
	assert.False(t, JobStatus("queued").IsTerminal())
}

func TestNewHistoryEntry(t *testing.T) {
	text, lang := "hola", "es"
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	job := TranscriptionJob{
		ID:               "job-1",
		Status:           JobStatusSucceeded,
		TextFull:         &text,
		LanguageDetected: &lang,
		Artifacts:        Artifacts{"srt": "http://a/1.srt"},
	}

	entry := NewHistoryEntry(job, "http://files/audio/a.mp3", now)
	assert.Equal(t, "job-1", entry.ID)
	assert.True(t, now.Equal(entry.CreatedAt.Time))
	assert.Equal(t, "http://files/audio/a.mp3", entry.AudioURL)

	job.Artifacts["srt"] = "changed"
	assert.Equal(t, "http://a/1.srt", entry.Artifacts["srt"])
}

func TestHistoryEntry_Excerpt(t *testing.T) {
	entry := HistoryEntry{Text: "añoñaño"}
	assert.Equal(t, "año", entry.Excerpt(3))
	assert.Equal(t, "añoñaño", entry.Excerpt(50))
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "00:00", FormatOffset(999))
	assert.Equal(t, "01:05", FormatOffset(65_000))
}

func TestPreferences_Bootstrapped(t *testing.T) {
	assert.False(t, Preferences{}.Bootstrapped())
	assert.False(t, Preferences{User: &User{ID: "u"}}.Bootstrapped())
	assert.True(t, Preferences{User: &User{ID: "u"}, Project: &Project{ID: "p"}}.Bootstrapped())
}
