package assist

import (
	"strings"
	"testing"

	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/providers"
)

func TestSuggestTableOfContents(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"titles":["여명","긴 항해","정착","귀환"]}`
	g := New(mock)

	titles := g.SuggestTableOfContents(t.Context(), "새로운 세계의 시작", "SF 서사시")
	if len(titles) != 4 || titles[0] != "여명" {
		t.Fatalf("titles = %v", titles)
	}
	if mock.RequestCount() != 1 {
		t.Fatalf("request count = %d", mock.RequestCount())
	}

	req := mock.LastRequest()
	if req.ResponseFormat == nil {
		t.Fatal("no response format declared")
	}
	if !strings.Contains(req.UserPrompt(), "새로운 세계의 시작") {
		t.Fatalf("prompt missing title: %q", req.UserPrompt())
	}
}

func TestSuggestTableOfContentsPassesThroughEmptyList(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"titles":[]}`
	g := New(mock)

	// A well-formed empty answer is the model's answer; the default
	// outline is reserved for failures.
	titles := g.SuggestTableOfContents(t.Context(), "t", "d")
	if len(titles) != 0 {
		t.Fatalf("titles = %v, want empty", titles)
	}
}

func TestSuggestTableOfContentsFallsBackOnGarbage(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "not json"
	g := New(mock)

	titles := g.SuggestTableOfContents(t.Context(), "t", "d")
	want := []string{"프롤로그", "서론", "첫 번째 이야기", "결말"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestSuggestTableOfContentsFallsBackOnRequestError(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ShouldFail = true
	g := New(mock)

	titles := g.SuggestTableOfContents(t.Context(), "t", "d")
	if len(titles) != 4 {
		t.Fatalf("titles = %v, want 4-item default", titles)
	}
}

func TestWritingSuggestionsShortCircuitsOnEmptyInput(t *testing.T) {
	mock := providers.NewMockClient()
	g := New(mock)

	got := g.WritingSuggestions(t.Context(), "", "", "문학 에디터", "SF 서사시")
	if len(got) != 0 {
		t.Fatalf("suggestions = %v, want empty", got)
	}
	if mock.RequestCount() != 0 {
		t.Fatalf("request count = %d, want 0", mock.RequestCount())
	}
}

func TestWritingSuggestions(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"suggestions":[
		{"text":"밤은 길었다.","type":"continuation"},
		{"text":"별빛이 스며드는","type":"phrase"},
		{"text":"주인공의 과거 회상 장면","type":"idea"}
	]}`
	g := New(mock)

	got := g.WritingSuggestions(t.Context(), "별들은 차갑게 빛났다", "프롤로그", "문학 에디터", "SF 서사시")
	if len(got) != 3 {
		t.Fatalf("len(suggestions) = %d", len(got))
	}
	if got[0].Type != book.SuggestionContinuation || got[2].Type != book.SuggestionIdea {
		t.Fatalf("types = %v", got)
	}

	req := mock.LastRequest()
	if !strings.Contains(req.SystemPrompt(), "문학 에디터") {
		t.Fatalf("system prompt missing persona: %q", req.SystemPrompt())
	}
	if !strings.Contains(req.UserPrompt(), "프롤로그") {
		t.Fatalf("user prompt missing section title: %q", req.UserPrompt())
	}
}

func TestWritingSuggestionsEmptyOnGarbage(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "not json"
	g := New(mock)

	if got := g.WritingSuggestions(t.Context(), "본문", "제목", "p", "c"); len(got) != 0 {
		t.Fatalf("suggestions = %v, want empty", got)
	}
}

func TestWritingSuggestionsCapsAtThree(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"suggestions":[
		{"text":"하나","type":"phrase"},
		{"text":"둘","type":"phrase"},
		{"text":"셋","type":"phrase"},
		{"text":"넷","type":"phrase"}
	]}`
	g := New(mock)

	if got := g.WritingSuggestions(t.Context(), "본문", "제목", "p", "c"); len(got) != 3 {
		t.Fatalf("len(suggestions) = %d, want 3", len(got))
	}
}

func TestRecommendVocabulary(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"words":[{"word":"아련하다","meaning":"희미하고 애틋하다","nuance":"그리움을 담은 장면에"}]}`
	g := New(mock)

	got := g.RecommendVocabulary(t.Context(), "가슴이 뭉클한 순간")
	if len(got) != 1 || got[0].Word != "아련하다" {
		t.Fatalf("words = %v", got)
	}
}

func TestRecommendVocabularyEmptyOnGarbage(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "not json"
	g := New(mock)

	if got := g.RecommendVocabulary(t.Context(), "쓸쓸함"); len(got) != 0 {
		t.Fatalf("words = %v, want empty", got)
	}
}

func TestGatewayRecordsCalls(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"titles":["a"]}`
	log := NewCallLog(10)
	g := New(mock, WithCallLog(log))

	g.SuggestTableOfContents(t.Context(), "t", "d")
	g.RecommendVocabulary(t.Context(), "슬픔")

	calls := log.List(0)
	if len(calls) != 2 {
		t.Fatalf("len(calls) = %d", len(calls))
	}
	// Newest first.
	if calls[0].Feature != FeatureVocabulary || calls[1].Feature != FeatureTOC {
		t.Fatalf("features = %s, %s", calls[0].Feature, calls[1].Feature)
	}

	got, ok := log.Get(calls[0].ID)
	if !ok || got.Feature != FeatureVocabulary {
		t.Fatalf("Get() = %+v, %v", got, ok)
	}
}

func TestCallLogBounded(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"titles":["a"]}`
	log := NewCallLog(3)
	g := New(mock, WithCallLog(log))

	for i := 0; i < 5; i++ {
		g.SuggestTableOfContents(t.Context(), "t", "d")
	}
	if got := len(log.List(0)); got != 3 {
		t.Fatalf("len(calls) = %d, want 3", got)
	}
}
