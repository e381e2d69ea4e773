package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"s2x/internal/app/model"
)

// RecordedRequest is one request observed by the fake service.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// FakeService is an in-process stand-in for the transcription service.
// Each created job walks through Script on successive GETs and then stays
// on the last status.
type FakeService struct {
	Server *httptest.Server

	mu       sync.Mutex
	jobs     map[string]*fakeJob
	shares   map[string]model.Share
	requests []RecordedRequest
	nextID   int

	// Behaviour knobs; set before the first request or under Lock/Unlock.
	Script        []model.JobStatus
	Text          string
	Language      string
	Segments      []model.Segment
	FailAudio     bool
	FailCreate    bool
	FailSegments  bool
	FailPolls     int // next N job GETs answer 503
	PollDelay     time.Duration
	SegmentsDelay time.Duration
}

type fakeJob struct {
	job   model.TranscriptionJob
	polls int
}

// NewFakeService starts a fake service; it is closed with the test.
func NewFakeService(t *testing.T) *FakeService {
	f := &FakeService{
		jobs:     make(map[string]*fakeJob),
		shares:   make(map[string]model.Share),
		Script:   []model.JobStatus{model.JobStatusRunning, model.JobStatusSucceeded},
		Text:     "hola mundo, esto es una prueba",
		Language: "es",
		Segments: []model.Segment{
			{ID: "s1", StartMs: 0, EndMs: 1500, Text: "hola mundo"},
			{ID: "s2", StartMs: 1500, EndMs: 3200, Text: "esto es una prueba"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", f.handleHealth)
	mux.HandleFunc("POST /users", f.handleUser)
	mux.HandleFunc("POST /projects", f.handleProject)
	mux.HandleFunc("POST /audio", f.handleAudio)
	mux.HandleFunc("POST /transcriptions", f.handleCreate)
	mux.HandleFunc("GET /transcriptions/{id}", f.handleGet)
	mux.HandleFunc("GET /segments/{id}", f.handleSegments)
	mux.HandleFunc("POST /shares", f.handleShare)
	mux.HandleFunc("GET /shares/resolve/{token}", f.handleResolve)
	mux.HandleFunc("GET /artifacts/{file}", f.handleArtifact)

	f.Server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base address of the fake service.
func (f *FakeService) URL() string {
	return f.Server.URL
}

// Lock guards knob changes made while requests are in flight.
func (f *FakeService) Lock() { f.mu.Lock() }

// Unlock releases Lock.
func (f *FakeService) Unlock() { f.mu.Unlock() }

// Requests returns a copy of every request seen so far.
func (f *FakeService) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// RequestsTo returns the recorded requests whose path starts with prefix.
func (f *FakeService) RequestsTo(method, prefix string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range f.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, prefix) {
			out = append(out, r)
		}
	}
	return out
}

// Polls returns how many times a job was fetched.
func (f *FakeService) Polls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j, ok := f.jobs[id]; ok {
		return j.polls
	}
	return 0
}

func (f *FakeService) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()
		if rec.Body != nil {
			r = r.WithContext(withBody(r.Context(), rec.Body))
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeService) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "db": 1})
}

func (f *FakeService) handleUser(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         "user-1",
		"email":      body["email"],
		"name":       body["name"],
		"role":       "user",
		"created_at": "2025-01-01T10:00:00",
	})
}

func (f *FakeService) handleProject(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       "project-1",
		"owner_id": body["owner_id"],
		"name":     body["name"],
	})
}

func (f *FakeService) handleAudio(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	fail := f.FailAudio
	f.nextID++
	id := fmt.Sprintf("audio-%d", f.nextID)
	f.mu.Unlock()

	if fail {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid s3_uri"})
		return
	}
	body := bodyFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "project_id": body["project_id"], "s3_uri": body["s3_uri"]})
}

func (f *FakeService) handleCreate(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCreate {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"audio not found"}`))
		return
	}
	f.nextID++
	id := fmt.Sprintf("job-%d", f.nextID)
	audioID, _ := body["audio_id"].(string)
	job := model.TranscriptionJob{
		ID:        id,
		AudioID:   audioID,
		Status:    model.JobStatusCreated,
		Mode:      "batch",
		CreatedAt: model.Timestamp{Time: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	f.jobs[id] = &fakeJob{job: job}
	writeJSON(w, http.StatusOK, job)
}

func (f *FakeService) handleGet(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	delay := f.PollDelay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[r.PathValue("id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Transcription not found"})
		return
	}
	if f.FailPolls > 0 {
		f.FailPolls--
		j.polls++
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	status := j.job.Status
	if len(f.Script) > 0 {
		idx := j.polls
		if idx >= len(f.Script) {
			idx = len(f.Script) - 1
		}
		status = f.Script[idx]
	}
	j.polls++
	j.job.Status = status

	snapshot := j.job
	if status == model.JobStatusSucceeded {
		text, lang, conf := f.Text, f.Language, 0.93
		snapshot.TextFull = &text
		snapshot.LanguageDetected = &lang
		snapshot.Confidence = &conf
		snapshot.Artifacts = model.Artifacts{
			"srt": f.Server.URL + "/artifacts/" + j.job.ID + ".srt",
			"vtt": f.Server.URL + "/artifacts/" + j.job.ID + ".vtt",
		}
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (f *FakeService) handleSegments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	fail, delay, segs := f.FailSegments, f.SegmentsDelay, f.Segments
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, segs)
}

func (f *FakeService) handleShare(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	token, _ := body["token"].(string)
	tid, _ := body["transcription_id"].(string)
	kind, _ := body["kind"].(string)
	share := model.Share{ID: "share-" + tid, TranscriptionID: tid, Token: token, Kind: kind}

	f.mu.Lock()
	f.shares[token] = share
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, share)
}

func (f *FakeService) handleResolve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	share, ok := f.shares[r.PathValue("token")]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found or expired"})
		return
	}
	writeJSON(w, http.StatusOK, share)
}

func (f *FakeService) handleArtifact(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "1\n00:00:00,000 --> 00:00:01,500\nhola mundo\n")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
