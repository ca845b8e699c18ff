package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"alznews/internal/metrics"
	"alznews/internal/news"
)

// Summarizer generates short Korean investor-facing summaries with Gemini.
// Articles are sent in numbered batches so one request covers many articles.
type Summarizer struct {
	client    *genai.Client
	model     string
	batchSize int
	log       *slog.Logger
}

func NewSummarizer(ctx context.Context, apiKey, model string, batchSize int, log *slog.Logger) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if batchSize <= 0 {
		batchSize = 10
	}

	return &Summarizer{
		client:    client,
		model:     model,
		batchSize: batchSize,
		log:       log,
	}, nil
}

func (s *Summarizer) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Summarize returns summaries keyed by article ID. Batches run concurrently
// and independently; a failed batch only loses its own summaries.
func (s *Summarizer) Summarize(ctx context.Context, articles []news.Article) map[string]string {
	summaries := make(map[string]string)
	if len(articles) == 0 {
		return summaries
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for start := 0; start < len(articles); start += s.batchSize {
		end := start + s.batchSize
		if end > len(articles) {
			end = len(articles)
		}
		batch := articles[start:end]

		wg.Add(1)
		go func(batch []news.Article) {
			defer wg.Done()

			result, err := s.summarizeBatch(ctx, batch)
			if err != nil {
				s.log.Warn("summary batch failed", "articles", len(batch), "error", err)
				return
			}

			mu.Lock()
			for id, summary := range result {
				summaries[id] = summary
			}
			mu.Unlock()
		}(batch)
	}
	wg.Wait()

	metrics.Global.AddSummariesGenerated(len(summaries))
	return summaries
}

func (s *Summarizer) summarizeBatch(ctx context.Context, batch []news.Article) (map[string]string, error) {
	model := s.client.GenerativeModel(s.model)

	var sb strings.Builder
	sb.WriteString("다음은 알츠하이머 치료제 관련 뉴스 기사 목록입니다. ")
	sb.WriteString("각 기사를 아리바이오(AriBio) 투자자 관점에서 한국어 2~3문장으로 요약해 주세요.\n")
	sb.WriteString("기사가 아리바이오, 경쟁사, 규제, 시장에 미치는 의미를 짚어 주세요.\n\n")
	sb.WriteString("응답은 반드시 아래 형식을 지켜 주세요. 각 줄은 대괄호 번호로 시작합니다:\n")
	sb.WriteString("[1] 요약 내용\n[2] 요약 내용\n\n기사 목록:\n")

	for i, a := range batch {
		body := a.Description
		if a.FullContent != "" {
			body = a.FullContent
		}
		fmt.Fprintf(&sb, "[%d] 제목: %s\n내용: %s\n\n", i+1, a.Title, sanitize(body, 2000))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	response := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	summaries := make(map[string]string)
	for n, text := range ParseNumberedSummaries(response) {
		if n < 1 || n > len(batch) {
			continue
		}
		summaries[batch[n-1].ID] = text
	}
	return summaries, nil
}

var numberedLine = regexp.MustCompile(`^\[(\d+)\]\s*(.*)$`)

// ParseNumberedSummaries maps "[n] text" lines to n -> text. Lines without a
// bracket number continue the previous entry.
func ParseNumberedSummaries(response string) map[int]string {
	entries := make(map[int]string)
	current := 0

	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := numberedLine.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			current = n
			entries[n] = strings.TrimSpace(m[2])
			continue
		}

		if current > 0 {
			if entries[current] != "" {
				entries[current] += " "
			}
			entries[current] += line
		}
	}

	for n, text := range entries {
		if text == "" {
			delete(entries, n)
		}
	}
	return entries
}

// sanitize collapses whitespace and caps the text on a rune boundary so
// prompts stay a predictable size.
func sanitize(text string, maxRunes int) string {
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, "\r", "")), " ")
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes])
}
