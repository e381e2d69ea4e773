// Package testutil provides shared test helpers for the s2x client.
//
// It contains three components:
//
// 1. Fake transcription service (fake_service.go):
//   - FakeService: httptest server answering the users, projects, audio,
//     transcriptions, segments, shares and artifacts endpoints
//   - Scripted job status sequences and failure knobs for poll, segment,
//     audio and create calls
//   - Request recording for asserting call order
//
// 2. Mocks (mock_history.go):
//   - MockHistoryStore: testify mock of repository.HistoryStore
//
// 3. Test Data Fixtures (fixtures.go):
//   - Sample jobs, history entries and manifests
//
// # Usage Examples
//
//	func TestSubmit(t *testing.T) {
//	    svc := testutil.NewFakeService(t)
//	    svc.Script = []model.JobStatus{model.JobStatusRunning, model.JobStatusSucceeded}
//
//	    client := remote.NewClient(remote.Config{BaseURL: svc.URL()}, nil)
//	    // ... drive the orchestrator against client
//	}
package testutil
