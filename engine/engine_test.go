package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/pdfquery/embedding"
	"github.com/Abraxas-365/pdfquery/llm"
	"github.com/Abraxas-365/pdfquery/pdf"
)

// fakeEmbedder returns fixed vectors keyed by input text; unknown inputs
// get a unit vector. Texts in failOn always error.
type fakeEmbedder struct {
	vectors map[string][]float32
	failOn  map[string]bool
	calls   int
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, documents []string) ([][]float32, error) {
	out := make([][]float32, len(documents))
	for i, doc := range documents {
		vec, err := f.EmbedQuery(ctx, doc)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failOn[text] {
		return nil, embedding.NewEmbeddingError("EmbedQuery", nil, embedding.ErrCodeAPIError, "provider down")
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

// fakeLLM records the prompts it receives and answers with a canned reply.
type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	for _, m := range messages {
		if m.Role == llm.RoleUser {
			f.prompts = append(f.prompts, m.Content)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Message{Role: llm.RoleAssistant, Content: f.reply}, nil
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	msg, err := f.Chat(ctx, []llm.Message{llm.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func testEngine(t *testing.T, embedder *fakeEmbedder, model *fakeLLM, opts ...Option) *Engine {
	t.Helper()
	base := []Option{
		WithChunkSize(4),
		WithChunkOverlap(1),
		WithMaxRetries(1),
		WithBackoff(time.Millisecond, 5*time.Millisecond),
	}
	e, err := New(embedder, model, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() unexpected error = %v", err)
	}
	return e
}

func fullInfo() *pdf.ProcessingInfo {
	return &pdf.ProcessingInfo{TotalPages: 1, ReadablePages: 1}
}

// sentenceSplitter is a minimal alternative splitter; it stands in for
// any non-default document.Splitter such as the token-based one.
type sentenceSplitter struct{}

func (sentenceSplitter) SplitText(text string) ([]string, error) {
	var chunks []string
	for _, piece := range strings.Split(text, ".") {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks, nil
}

func TestNew_WithSplitterReplacesDefault(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"first sentence here": {1, 0, 0},
			"second one":          {0, 1, 0},
			"the question":        {1, 0, 0},
		},
	}
	model := &fakeLLM{reply: "answer"}
	e, err := New(embedder, model,
		WithSplitter(sentenceSplitter{}),
		WithTopK(1),
		WithMaxRetries(0),
		WithBackoff(time.Millisecond, 5*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New() unexpected error = %v", err)
	}

	_, err = e.answerFromText(context.Background(),
		"first sentence here. second one.", fullInfo(), "the question")
	if err != nil {
		t.Fatalf("answerFromText() unexpected error = %v", err)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model received %d prompts, want 1", len(model.prompts))
	}
	if !strings.Contains(model.prompts[0], "first sentence here") {
		t.Errorf("prompt missing the custom splitter's chunk: %q", model.prompts[0])
	}
	if strings.Contains(model.prompts[0], "second one") {
		t.Error("prompt contains a chunk outside top-K, custom splitter likely ignored")
	}
}

func TestNew_InvalidChunkConfig(t *testing.T) {
	_, err := New(&fakeEmbedder{}, &fakeLLM{}, WithChunkSize(10), WithChunkOverlap(10))
	if err == nil {
		t.Fatal("New() error = nil, want chunk config error")
	}
}

func TestAnswerFromText_UsesTopChunks(t *testing.T) {
	// Three chunks; the second one matches the query vector exactly.
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"alpha beta gamma delta": {0, 1, 0},
			"delta epsilon zeta eta": {0.2, 0.8, 0.1},
			"eta theta iota":         {0, 0, 1},
			"which words":            {0.2, 0.8, 0.1},
		},
	}
	model := &fakeLLM{reply: "The words are delta through eta."}
	e := testEngine(t, embedder, model, WithTopK(1))

	answer, err := e.answerFromText(context.Background(),
		"alpha beta gamma delta epsilon zeta eta theta iota",
		fullInfo(), "which words")
	if err != nil {
		t.Fatalf("answerFromText() unexpected error = %v", err)
	}
	if answer.Text != "The words are delta through eta." {
		t.Errorf("answerFromText() text = %q", answer.Text)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model received %d prompts, want 1", len(model.prompts))
	}
	if !strings.Contains(model.prompts[0], "delta epsilon zeta eta") {
		t.Errorf("prompt missing the best-matching chunk: %q", model.prompts[0])
	}
	if strings.Contains(model.prompts[0], "eta theta iota") {
		t.Error("prompt contains a chunk outside top-K")
	}
}

func TestAnswerFromText_ChunkFailureIsIsolated(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"good chunk words here": {1, 0, 0},
			"the question":          {1, 0, 0},
		},
		failOn: map[string]bool{"here bad chunk words": true},
	}
	model := &fakeLLM{reply: "answer"}
	e := testEngine(t, embedder, model, WithTopK(3), WithMaxRetries(0))

	answer, err := e.answerFromText(context.Background(),
		"good chunk words here bad chunk words here",
		fullInfo(), "the question")
	if err != nil {
		t.Fatalf("answerFromText() unexpected error = %v", err)
	}
	if answer.Text != "answer" {
		t.Errorf("answerFromText() text = %q, want %q", answer.Text, "answer")
	}
	if !strings.Contains(model.prompts[0], "good chunk words here") {
		t.Error("surviving chunk missing from prompt")
	}
	if strings.Contains(model.prompts[0], "bad chunk") {
		t.Error("failed chunk leaked into prompt")
	}
}

func TestAnswerFromText_AllChunksFail(t *testing.T) {
	embedder := &fakeEmbedder{
		failOn: map[string]bool{
			"alpha beta gamma delta": true,
			"delta epsilon":          true,
		},
	}
	e := testEngine(t, embedder, &fakeLLM{reply: "unused"}, WithMaxRetries(0))

	_, err := e.answerFromText(context.Background(),
		"alpha beta gamma delta epsilon", fullInfo(), "q")
	if !embedding.IsCode(err, embedding.ErrCodeNoEmbeddings) {
		t.Errorf("answerFromText() error = %v, want code %s", err, embedding.ErrCodeNoEmbeddings)
	}
}

func TestAnswerFromText_EmptyTextSkipsProvider(t *testing.T) {
	model := &fakeLLM{reply: "unused"}
	embedder := &fakeEmbedder{}
	e := testEngine(t, embedder, model)

	answer, err := e.answerFromText(context.Background(), "   ", fullInfo(), "anything")
	if err != nil {
		t.Fatalf("answerFromText() unexpected error = %v", err)
	}
	if answer.Text != noContentFallback {
		t.Errorf("answerFromText() text = %q, want no-content fallback", answer.Text)
	}
	if len(model.prompts) != 0 {
		t.Error("generation provider was called despite empty retrieval")
	}
}

func TestAnswerFromText_EmptyProviderResponse(t *testing.T) {
	e := testEngine(t, &fakeEmbedder{}, &fakeLLM{reply: "   "})

	answer, err := e.answerFromText(context.Background(), "some words to chunk", fullInfo(), "q")
	if err != nil {
		t.Fatalf("answerFromText() unexpected error = %v", err)
	}
	if answer.Text != emptyResponseFallback {
		t.Errorf("answerFromText() text = %q, want empty-response fallback", answer.Text)
	}
}

func TestAnswerFromText_GenerationFailureAfterRetries(t *testing.T) {
	model := &fakeLLM{err: llm.NewLLMError("Chat", errors.New("503"), llm.ErrCodeAPIError, "server error")}
	e := testEngine(t, &fakeEmbedder{}, model, WithMaxRetries(1))

	_, err := e.answerFromText(context.Background(), "some words to chunk", fullInfo(), "q")
	if err == nil {
		t.Fatal("answerFromText() error = nil, want retry exhaustion")
	}
	var lerr *llm.LLMError
	if !errors.As(err, &lerr) {
		t.Errorf("answerFromText() error %v does not wrap the provider error", err)
	}
	if len(model.prompts) != 2 {
		t.Errorf("model attempts = %d, want 2 (1 initial + 1 retry)", len(model.prompts))
	}
}

func TestAnswerFromText_PartialReadProvenanceNote(t *testing.T) {
	e := testEngine(t, &fakeEmbedder{}, &fakeLLM{reply: "the answer"})
	info := &pdf.ProcessingInfo{
		TotalPages:    10,
		ReadablePages: 3,
		PartialRead:   true,
		FallbackUsed:  true,
	}

	answer, err := e.answerFromText(context.Background(), "recovered words only", info, "q")
	if err != nil {
		t.Fatalf("answerFromText() unexpected error = %v", err)
	}
	if !strings.Contains(answer.Text, "3 of the document's 10 pages") {
		t.Errorf("answerFromText() text missing provenance note: %q", answer.Text)
	}
	if !strings.HasPrefix(answer.Text, "the answer") {
		t.Errorf("answerFromText() note should follow the answer: %q", answer.Text)
	}
}

func TestProcess_RejectsInvalidUpload(t *testing.T) {
	e := testEngine(t, &fakeEmbedder{}, &fakeLLM{})

	_, _, err := e.Process(context.Background(), nil, "empty.pdf")
	if !pdf.IsCode(err, pdf.ErrCodeFileTooLarge) {
		t.Errorf("Process() error = %v, want code %s", err, pdf.ErrCodeFileTooLarge)
	}

	_, _, err = e.Process(context.Background(), []byte("not a pdf at all"), "fake.pdf")
	if !pdf.IsCode(err, pdf.ErrCodeInvalidFileSignature) {
		t.Errorf("Process() error = %v, want code %s", err, pdf.ErrCodeInvalidFileSignature)
	}
}

func TestProcess_DoesNotRetryDocumentErrors(t *testing.T) {
	// A corrupted document must fail fast instead of burning the retry
	// budget: the error surfaces as the PDF error itself, not exhaustion.
	e := testEngine(t, &fakeEmbedder{}, &fakeLLM{}, WithMaxRetries(3))

	start := time.Now()
	_, _, err := e.Process(context.Background(), []byte("%PDF-1.4\ngarbage"), "broken.pdf")
	if !pdf.IsCode(err, pdf.ErrCodeCorruptedDocument) {
		t.Fatalf("Process() error = %v, want code %s", err, pdf.ErrCodeCorruptedDocument)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Process() took %s, document errors should not back off", elapsed)
	}
}
