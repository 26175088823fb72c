package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkroomhq/inkroom/internal/assist"
	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/editor"
	"github.com/inkroomhq/inkroom/internal/providers"
	"github.com/inkroomhq/inkroom/internal/server/endpoints"
)

func newTestServer(t *testing.T) (*Server, *providers.MockClient) {
	t.Helper()

	s, err := New(Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mock := &providers.MockClient{}
	s.Registry().Register("mock", mock)
	return s, mock
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	var resp endpoints.HealthResponse
	rec := doJSON(t, s.Handler(), "GET", "/health", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Status != "ok" {
		t.Fatalf("health status = %q", resp.Status)
	}
}

func TestStatus(t *testing.T) {
	s, _ := newTestServer(t)

	var resp endpoints.StatusResponse
	rec := doJSON(t, s.Handler(), "GET", "/status", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Server != "running" {
		t.Fatalf("server = %q", resp.Server)
	}
	if resp.Sections == 0 {
		t.Fatal("expected seeded sections in status")
	}
	if len(resp.Providers) != 1 || resp.Providers[0] != "mock" {
		t.Fatalf("providers = %v", resp.Providers)
	}
}

func TestGetAndUpdateBook(t *testing.T) {
	s, _ := newTestServer(t)

	var b book.Book
	rec := doJSON(t, s.Handler(), "GET", "/book", nil, &b)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(b.Sections) == 0 {
		t.Fatal("expected seeded sections")
	}

	title := "새 제목"
	persona := "미니멀리스트 편집자"
	rec = doJSON(t, s.Handler(), "PATCH", "/book", endpoints.UpdateBookRequest{
		Title:     &title,
		AIPersona: &persona,
	}, &b)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if b.Title != title || b.AIPersona != persona {
		t.Fatalf("update not applied: title=%q persona=%q", b.Title, b.AIPersona)
	}
	if b.Description == "" {
		t.Fatal("untouched description was cleared")
	}

	rec = doJSON(t, s.Handler(), "PATCH", "/book", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty body status = %d", rec.Code)
	}
}

func TestUpdateBookSnakeCaseKeys(t *testing.T) {
	s, _ := newTestServer(t)

	// Request keys follow the same snake_case convention the book
	// document is served with.
	raw := `{"ai_persona":"다정한 멘토","target_audience":"초등 고학년"}`
	req := httptest.NewRequest("PATCH", "/book", strings.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var b book.Book
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.AIPersona != "다정한 멘토" || b.TargetAudience != "초등 고학년" {
		t.Fatalf("persona=%q audience=%q", b.AIPersona, b.TargetAudience)
	}
	if !strings.Contains(rec.Body.String(), `"ai_persona"`) {
		t.Fatalf("response missing snake_case key: %s", rec.Body.String())
	}
}

func TestSectionLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	var sections []book.Section
	doJSON(t, h, "GET", "/book/sections", nil, &sections)
	initial := len(sections)
	if initial == 0 {
		t.Fatal("expected seeded sections")
	}

	var added book.Section
	rec := doJSON(t, h, "POST", "/book/sections", nil, &added)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d", rec.Code)
	}
	if added.Title != editor.DefaultSectionTitle {
		t.Fatalf("added title = %q", added.Title)
	}

	var active book.Section
	doJSON(t, h, "GET", "/book/sections/active", nil, &active)
	if active.ID != added.ID {
		t.Fatalf("new section should be active, got %s", active.ID)
	}

	rec = doJSON(t, h, "PATCH", "/book/sections/active", endpoints.UpdateSectionRequest{
		Field: "content", Value: "바람이 분다",
	}, &active)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	if active.Content != "바람이 분다" {
		t.Fatalf("content = %q", active.Content)
	}

	doJSON(t, h, "POST", "/book/sections/active/insert", endpoints.InsertTextRequest{Text: "살아야겠다"}, &active)
	if active.Content != "바람이 분다 살아야겠다" {
		t.Fatalf("content after insert = %q", active.Content)
	}

	doJSON(t, h, "POST", "/book/sections/reorder", endpoints.ReorderSectionsRequest{From: initial, To: 0}, &sections)
	if sections[0].ID != added.ID {
		t.Fatalf("reorder did not move section: %s", sections[0].ID)
	}
	if len(sections) != initial+1 {
		t.Fatalf("section count = %d", len(sections))
	}

	rec = doJSON(t, h, "POST", "/book/sections/"+sections[1].ID+"/activate", nil, &active)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate status = %d", rec.Code)
	}
	if active.ID != sections[1].ID {
		t.Fatalf("active = %s, want %s", active.ID, sections[1].ID)
	}
}

func TestApplyTOC(t *testing.T) {
	s, _ := newTestServer(t)

	titles := []string{"프롤로그", "1장", "에필로그"}
	var sections []book.Section
	rec := doJSON(t, s.Handler(), "POST", "/book/toc", endpoints.ApplyTOCRequest{Titles: titles}, &sections)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sections) != len(titles) {
		t.Fatalf("section count = %d", len(sections))
	}
	for i, sec := range sections {
		if sec.Title != titles[i] {
			t.Fatalf("section %d title = %q", i, sec.Title)
		}
		if sec.Content != "" {
			t.Fatalf("section %d content not empty", i)
		}
	}

	rec = doJSON(t, s.Handler(), "POST", "/book/toc", endpoints.ApplyTOCRequest{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty titles status = %d", rec.Code)
	}
}

func TestImageLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	var sections []book.Section
	doJSON(t, h, "GET", "/book/sections", nil, &sections)
	secID := sections[0].ID

	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	var img book.BookImage
	rec := doJSON(t, h, "POST", "/book/sections/"+secID+"/images", endpoints.AttachImageRequest{
		Data:     base64.StdEncoding.EncodeToString(pngHeader),
		MimeType: "image/png",
	}, &img)
	if rec.Code != http.StatusCreated {
		t.Fatalf("attach status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(img.URL, "data:image/png;base64,") {
		t.Fatalf("image url = %q", img.URL)
	}
	if img.Size != book.ImageSizeMedium {
		t.Fatalf("default size = %q", img.Size)
	}

	rec = doJSON(t, h, "PATCH", "/book/sections/"+secID+"/images/"+img.ID, endpoints.ResizeImageRequest{Size: "lg"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("resize status = %d", rec.Code)
	}

	rec = doJSON(t, h, "PATCH", "/book/sections/"+secID+"/images/"+img.ID, endpoints.ResizeImageRequest{Size: "huge"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid size status = %d", rec.Code)
	}

	rec = doJSON(t, h, "DELETE", "/book/sections/"+secID+"/images/"+img.ID, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	doJSON(t, h, "GET", "/book/sections", nil, &sections)
	if len(sections[0].Images) != 0 {
		t.Fatalf("images after delete = %d", len(sections[0].Images))
	}

	rec = doJSON(t, h, "POST", "/book/sections/no-such-section/images", endpoints.AttachImageRequest{
		Data: base64.StdEncoding.EncodeToString(pngHeader),
	}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown section status = %d", rec.Code)
	}
}

func TestAssistTOC(t *testing.T) {
	s, mock := newTestServer(t)
	mock.ResponseText = `{"titles":["첫 만남","갈등","화해","새 출발","에필로그"]}`

	var resp endpoints.SuggestTOCResponse
	rec := doJSON(t, s.Handler(), "POST", "/assist/toc", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Titles) != 5 || resp.Titles[0] != "첫 만남" {
		t.Fatalf("titles = %v", resp.Titles)
	}
}

func TestAssistTOCFallback(t *testing.T) {
	s, mock := newTestServer(t)
	mock.ShouldFail = true

	var resp endpoints.SuggestTOCResponse
	rec := doJSON(t, s.Handler(), "POST", "/assist/toc", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := []string{"프롤로그", "서론", "첫 번째 이야기", "결말"}
	if len(resp.Titles) != len(want) {
		t.Fatalf("fallback titles = %v", resp.Titles)
	}
	for i := range want {
		if resp.Titles[i] != want[i] {
			t.Fatalf("fallback titles = %v", resp.Titles)
		}
	}
}

func TestAssistSuggestions(t *testing.T) {
	s, mock := newTestServer(t)
	mock.ResponseText = `{"suggestions":[{"text":"그날 밤 비가 내렸다.","type":"continuation"}]}`

	var resp endpoints.SuggestionsResponse
	rec := doJSON(t, s.Handler(), "POST", "/assist/suggestions", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].Type != book.SuggestionContinuation {
		t.Fatalf("suggestions = %v", resp.Suggestions)
	}
}

func TestAssistVocabulary(t *testing.T) {
	s, mock := newTestServer(t)
	mock.ResponseText = `{"words":[{"word":"아련하다","meaning":"기억이 흐릿하다","nuance":"그리움이 섞인 흐릿함"}]}`

	var resp endpoints.VocabularyResponse
	rec := doJSON(t, s.Handler(), "POST", "/assist/vocabulary", endpoints.VocabularyRequest{Thought: "옛날 생각"}, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Words) != 1 || resp.Words[0].Word != "아련하다" {
		t.Fatalf("words = %v", resp.Words)
	}

	rec = doJSON(t, s.Handler(), "POST", "/assist/vocabulary", endpoints.VocabularyRequest{Thought: "  "}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank thought status = %d", rec.Code)
	}
}

func TestCallLogEndpoints(t *testing.T) {
	s, mock := newTestServer(t)
	mock.ResponseText = `{"titles":["하나","둘","셋","넷","다섯"]}`

	doJSON(t, s.Handler(), "POST", "/assist/toc", nil, nil)
	doJSON(t, s.Handler(), "POST", "/assist/toc", nil, nil)

	var calls []assist.Call
	rec := doJSON(t, s.Handler(), "GET", "/assist/calls", nil, &calls)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(calls) != 2 {
		t.Fatalf("call count = %d", len(calls))
	}

	var one assist.Call
	rec = doJSON(t, s.Handler(), "GET", "/assist/calls/"+calls[0].ID, nil, &one)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if one.Feature != assist.FeatureTOC {
		t.Fatalf("feature = %q", one.Feature)
	}

	rec = doJSON(t, s.Handler(), "GET", "/assist/calls/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing call status = %d", rec.Code)
	}

	rec = doJSON(t, s.Handler(), "GET", "/assist/calls?limit=1", nil, &calls)
	if rec.Code != http.StatusOK || len(calls) != 1 {
		t.Fatalf("limited list: status=%d count=%d", rec.Code, len(calls))
	}
}

func TestSaveState(t *testing.T) {
	s, _ := newTestServer(t)

	var state editor.SaveState
	rec := doJSON(t, s.Handler(), "GET", "/book/save-state", nil, &state)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if state.Status != editor.SaveStatusClean {
		t.Fatalf("initial save status = %q", state.Status)
	}

	doJSON(t, s.Handler(), "POST", "/book/sections/active/insert", endpoints.InsertTextRequest{Text: "한 줄"}, nil)

	doJSON(t, s.Handler(), "GET", "/book/save-state", nil, &state)
	if state.Status == editor.SaveStatusClean {
		t.Fatal("save status should reflect the edit")
	}
}
