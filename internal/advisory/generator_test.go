package advisory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ib-riskcalc/internal/models"

	"github.com/go-playground/validator/v10"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	content string
	err     error
}

func (f fakeChat) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func newTestGenerator(client chatClient) *Generator {
	return &Generator{
		client:   client,
		model:    "test-model",
		timeout:  time.Second,
		validate: validator.New(),
	}
}

var testAsset = models.Asset{
	Name: "Сервер БД", Type: models.AssetPhysicalServer,
	Location: "ЦОД-1", Critical: true,
}

const validResponse = `[
  {"text": "Ведётся ли резервное копирование БД?", "dimension": "D",
   "weight": 5, "answer_type": "binary", "intent": "inverted"},
  {"text": "Насколько полно шифруются резервные копии?", "dimension": "C",
   "weight": 4, "answer_type": "scale5", "intent": "inverted"}
]`

func TestGenerateFromAdvisory(t *testing.T) {
	g := newTestGenerator(fakeChat{content: validResponse})

	qs, source := g.Generate(context.Background(), testAsset)
	require.Equal(t, models.SourceAdvisory, source)
	require.Len(t, qs, 2)

	assert.Equal(t, models.DimAvailability, qs[0].Dimension)
	assert.Equal(t, 5, qs[0].Weight)
	assert.Equal(t, models.AnswerBinary, qs[0].AnswerType)
	assert.Equal(t, models.IntentInverted, qs[0].Intent)
	assert.Equal(t, models.SourceAdvisory, qs[0].Source)
	assert.Equal(t, models.AnswerScale5, qs[1].AnswerType)
}

func TestGenerateStripsMarkdownFence(t *testing.T) {
	g := newTestGenerator(fakeChat{content: "```json\n" + validResponse + "\n```"})

	qs, source := g.Generate(context.Background(), testAsset)
	assert.Equal(t, models.SourceAdvisory, source)
	assert.Len(t, qs, 2)
}

func TestGenerateFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		client fakeChat
	}{
		{"ошибка клиента", fakeChat{err: errors.New("api unavailable")}},
		{"мусор вместо JSON", fakeChat{content: "к сожалению, не могу помочь"}},
		{"пустой массив", fakeChat{content: "[]"}},
		{"вес вне шкалы", fakeChat{content: `[{"text": "Есть ли DRP на случай отказа?",
			"dimension": "D", "weight": 9, "answer_type": "binary", "intent": "direct"}]`}},
		{"неизвестное измерение", fakeChat{content: `[{"text": "Есть ли DRP на случай отказа?",
			"dimension": "X", "weight": 3, "answer_type": "binary", "intent": "direct"}]`}},
		{"слишком короткий текст", fakeChat{content: `[{"text": "Да?",
			"dimension": "D", "weight": 3, "answer_type": "binary", "intent": "direct"}]`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(tc.client)

			qs, source := g.Generate(context.Background(), testAsset)
			assert.Equal(t, models.SourceFallback, source)
			require.NotEmpty(t, qs)
			for _, q := range qs {
				assert.Equal(t, models.SourceFallback, q.Source)
			}
		})
	}
}

func TestAnalyzeReturnsSummary(t *testing.T) {
	g := newTestGenerator(fakeChat{content: "  Основной риск — отказ СХД. Рекомендуется резервирование.  "})

	summary, err := g.Analyze(context.Background(), testAsset,
		models.ImpactResult{ImpactD: 5, ImpactI: 2, ImpactC: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Основной риск — отказ СХД. Рекомендуется резервирование.", summary)
}

func TestAnalyzeErrors(t *testing.T) {
	cases := []struct {
		name   string
		client fakeChat
	}{
		{"ошибка клиента", fakeChat{err: errors.New("api unavailable")}},
		{"пустой ответ", fakeChat{content: "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(tc.client)

			_, err := g.Analyze(context.Background(), testAsset, models.ImpactResult{}, nil)
			assert.Error(t, err)
		})
	}
}

// один кандидат вне схемы отклоняет весь пакет, частичного принятия нет
func TestGenerateRejectsWholeBatch(t *testing.T) {
	mixed := `[
	  {"text": "Ведётся ли резервное копирование БД?", "dimension": "D",
	   "weight": 5, "answer_type": "binary", "intent": "inverted"},
	  {"text": "Контролируется ли целостность конфигураций?", "dimension": "I",
	   "weight": 0, "answer_type": "binary", "intent": "inverted"}
	]`
	g := newTestGenerator(fakeChat{content: mixed})

	qs, source := g.Generate(context.Background(), testAsset)
	assert.Equal(t, models.SourceFallback, source)
	assert.Equal(t, Fallback(), qs)
}
