package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-detector/internal/config"
	"alfredoptarigan/resume-detector/internal/models"
)

func testConfig(endpoints config.EndpointsConfig) *config.Config {
	return &config.Config{
		Endpoints: endpoints,
		Documents: config.DocumentsConfig{AcceptedType: "application/pdf", MaxFileSize: 1 << 20},
		Report:    config.ReportConfig{Schema: config.SchemaCurrent},
		Telemetry: config.TelemetryConfig{Workers: 1, QueueSize: 4, DrainTimeout: 200 * time.Millisecond},
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	cmd := NewRootCommand(app)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand(NewApp(testConfig(config.EndpointsConfig{})))

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"submit", "report", "files"})

	flag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestSubmitCmd_SendsOnlyPDFs(t *testing.T) {
	var payload models.SubmissionPayload
	var hits, events atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/events" {
			events.Add(1)
			return
		}
		hits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer backend.Close()

	dir := t.TempDir()
	cv := writeFile(t, dir, "cv.pdf", "hello")
	notes := writeFile(t, dir, "notes.txt", "skip me")

	app := NewApp(testConfig(config.EndpointsConfig{
		SubmissionURL: backend.URL + "/process",
		EventsURL:     backend.URL + "/events",
	}))

	out, err := execute(t, app, "submit", "--email", "a@b.com", "--role", "Recruiter", cv, notes)

	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 1 file(s) that are not PDFs")
	assert.Contains(t, out, "We will email you our report soon!")
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, int32(1), events.Load())
	assert.Equal(t, []string{"aGVsbG8="}, payload.Resumes)
	assert.Equal(t, "Recruiter", payload.Role)
}

func TestSubmitCmd_StalledEventsDoNotHoldResult(t *testing.T) {
	stalled := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/events" {
			<-stalled
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(backend.Close)
	t.Cleanup(func() { close(stalled) })

	cv := writeFile(t, t.TempDir(), "cv.pdf", "hello")
	app := NewApp(testConfig(config.EndpointsConfig{
		SubmissionURL: backend.URL + "/process",
		EventsURL:     backend.URL + "/events",
	}))

	type outcome struct {
		out string
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		out, err := execute(t, app, "submit", "--email", "a@b.com", cv)
		done <- outcome{out, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "We will email you our report soon!")
	case <-time.After(3 * time.Second):
		t.Fatal("submit waited on the events endpoint")
	}
}

func TestSubmitCmd_ValidationError(t *testing.T) {
	dir := t.TempDir()
	cv := writeFile(t, dir, "cv.pdf", "hello")

	app := NewApp(testConfig(config.EndpointsConfig{SubmissionURL: "http://analysis.test"}))

	_, err := execute(t, app, "submit", cv)

	require.Error(t, err)
	assert.Equal(t, "Please provide email and select at least one PDF file", err.Error())
}

func TestSubmitCmd_MissingFile(t *testing.T) {
	app := NewApp(testConfig(config.EndpointsConfig{SubmissionURL: "http://analysis.test"}))

	_, err := execute(t, app, "submit", "--email", "a@b.com", filepath.Join(t.TempDir(), "gone.pdf"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func reportBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "abc" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"result":{"email":"a@b.com","results":[
			{"question":"Worked at Acme?","answer":"No","verification":"Bullsh*t","results":[
				{"url":"https://one.test","score":0.9},
				{"url":"https://two.test","score":0.8},
				{"url":"https://three.test","score":0.7}
			]}]}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestReportCmd_RendersReport(t *testing.T) {
	backend := reportBackend(t)
	app := NewApp(testConfig(config.EndpointsConfig{ReportURL: backend.URL}))

	out, err := execute(t, app, "report", "abc")

	require.NoError(t, err)
	assert.Contains(t, out, "Loading results...")
	assert.Contains(t, out, "Resume Analysis Results")
	assert.Contains(t, out, "Submission ID: abc")
	assert.Contains(t, out, "Total Claims Analyzed: 1")
	assert.Contains(t, out, "Claim #1")
	assert.Contains(t, out, "✗ Bullsh*t")
	assert.Contains(t, out, "Top Sources (3):")
	assert.Contains(t, out, "Score: 90.0%")
	assert.Contains(t, out, "Show 1 more sources")
	assert.NotContains(t, out, "https://three.test")
}

func TestReportCmd_AllExpandsDeferredSources(t *testing.T) {
	backend := reportBackend(t)
	app := NewApp(testConfig(config.EndpointsConfig{ReportURL: backend.URL}))

	out, err := execute(t, app, "report", "--all", "abc")

	require.NoError(t, err)
	assert.Contains(t, out, "https://three.test")
	assert.NotContains(t, out, "Show 1 more sources")
}

func TestReportCmd_JSON(t *testing.T) {
	backend := reportBackend(t)
	app := NewApp(testConfig(config.EndpointsConfig{ReportURL: backend.URL}))

	out, err := execute(t, app, "report", "--json", "abc")
	require.NoError(t, err)

	var page models.ReportPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 1, page.ClaimCount)
	assert.Equal(t, "false", page.Claims[0].StatusClass)
}

func TestReportCmd_NotFound(t *testing.T) {
	backend := reportBackend(t)
	app := NewApp(testConfig(config.EndpointsConfig{ReportURL: backend.URL}))

	_, err := execute(t, app, "report", "missing")

	require.Error(t, err)
	assert.Equal(t, "No results found", err.Error())
}

func TestReportCmd_RequiresID(t *testing.T) {
	app := NewApp(testConfig(config.EndpointsConfig{}))

	_, err := execute(t, app, "report")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestFilesCmd(t *testing.T) {
	dir := t.TempDir()
	cv := writeFile(t, dir, "cv.pdf", string(bytes.Repeat([]byte("x"), 1536)))
	notes := writeFile(t, dir, "notes.txt", "n")

	app := NewApp(testConfig(config.EndpointsConfig{}))

	out, err := execute(t, app, "files", cv, notes)

	require.NoError(t, err)
	assert.Contains(t, out, "cv.pdf (1.5 KB)")
	assert.NotContains(t, out, "notes.txt")
}
