package testutil

import (
	"strconv"
	"time"

	"s2x/internal/app/model"
)

// TestAudioURL is the sample referenced throughout the submission scenarios.
const TestAudioURL = "http://files/audio/test_3.mp3"

// TestManifest mixes every accepted manifest element shape plus one that
// yields no name.
const TestManifest = `["a.mp3", {"name":"b.wav","title":"B"}, {"path":"x/y/c.ogg"}, {"title":"no name"}]`

// SucceededJob returns a job in the success terminal state.
func SucceededJob(id string) model.TranscriptionJob {
	text, lang, conf := "hola mundo", "es", 0.91
	return model.TranscriptionJob{
		ID:               id,
		AudioID:          "audio-" + id,
		Status:           model.JobStatusSucceeded,
		Mode:             "batch",
		LanguageDetected: &lang,
		TextFull:         &text,
		Confidence:       &conf,
		Artifacts: model.Artifacts{
			"srt": "http://files/artifacts/" + id + ".srt",
			"vtt": "http://files/artifacts/" + id + ".vtt",
		},
		CreatedAt: model.Timestamp{Time: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
}

// TestHistory returns n entries, newest first.
func TestHistory(n int) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, n)
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := n; i >= 1; i-- {
		job := SucceededJob("job-" + strconv.Itoa(i))
		job.CreatedAt = model.Timestamp{Time: base.Add(time.Duration(i) * time.Minute)}
		out = append(out, model.NewHistoryEntry(job, TestAudioURL, base))
	}
	return out
}

