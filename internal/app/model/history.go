package model

import "time"

// HistoryCapacity is the maximum number of entries kept in the ledger.
const HistoryCapacity = 50

// HistoryEntry is the durable record of one successful job.
type HistoryEntry struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	Language  string    `json:"language,omitempty"`
	Text      string    `json:"text,omitempty"`
	Artifacts Artifacts `json:"artifacts,omitempty"`
	AudioURL  string    `json:"audio_url"`
}

// NewHistoryEntry folds a completed job and the audio URL it was submitted
// with into a ledger record. now is used when the job carries no timestamp.
func NewHistoryEntry(job TranscriptionJob, audioURL string, now time.Time) HistoryEntry {
	created := job.CreatedAt
	if created.IsZero() {
		created = Timestamp{Time: now.UTC()}
	}
	return HistoryEntry{
		ID:        job.ID,
		CreatedAt: created,
		Language:  job.Language(),
		Text:      job.Text(),
		Artifacts: job.Artifacts.Clone(),
		AudioURL:  audioURL,
	}
}

// Excerpt returns at most n runes of the text.
func (h HistoryEntry) Excerpt(n int) string {
	r := []rune(h.Text)
	if len(r) <= n {
		return h.Text
	}
	return string(r[:n])
}
