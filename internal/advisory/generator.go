package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ib-riskcalc/internal/models"

	"github.com/go-playground/validator/v10"
	openai "github.com/sashabaranov/go-openai"
)

// Кандидат вопроса от LLM. Выход модели не является доверенным:
// перед превращением в доменный тип каждый кандидат проходит
// валидацию по схеме вопроса.
type Candidate struct {
	Text       string `json:"text" validate:"required,min=8"`
	Dimension  string `json:"dimension" validate:"required,oneof=D I C"`
	Weight     int    `json:"weight" validate:"required,gte=1,lte=5"`
	AnswerType string `json:"answer_type" validate:"required,oneof=binary scale5"`
	Intent     string `json:"intent" validate:"required,oneof=direct inverted"`
}

// минимальный интерфейс клиента OpenAI — в тестах подменяется фейком
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Generator struct {
	client   chatClient
	model    string
	timeout  time.Duration
	validate *validator.Validate
}

func New(apiKey, model string, timeout time.Duration) *Generator {
	return &Generator{
		client:   openai.NewClient(apiKey),
		model:    model,
		timeout:  timeout,
		validate: validator.New(),
	}
}

const systemPrompt = `Ты помощник аудитора ИБ. Для описанного актива предложи вопросы анкеты ` +
	`оценки рисков по методике MAGERIT. Ответь строго JSON-массивом объектов ` +
	`{"text","dimension","weight","answer_type","intent"}: dimension из D/I/C, ` +
	`weight 1..5, answer_type из binary/scale5, intent из direct/inverted.`

// Generate запрашивает у LLM кандидатов вопросов по активу. Любой
// сбой — таймаут, мусор вместо JSON, кандидаты вне схемы — приводит
// к фиксированному набору из каталога с источником fallback:
// детерминированные расчёты никогда не блокируются советчиком.
func (g *Generator) Generate(ctx context.Context, asset models.Asset) ([]models.Question, models.QuestionSource) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Актив: %s; тип: %s; расположение: %s; критичный: %t",
		asset.Name, asset.Type, asset.Location, asset.Critical)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("advisory: generation failed, using fallback: %v", err)
		return Fallback(), models.SourceFallback
	}
	if len(resp.Choices) == 0 {
		log.Printf("advisory: empty response, using fallback")
		return Fallback(), models.SourceFallback
	}

	questions, err := g.parse(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("advisory: invalid candidates, using fallback: %v", err)
		return Fallback(), models.SourceFallback
	}
	return questions, models.SourceAdvisory
}

func (g *Generator) parse(content string) ([]models.Question, error) {
	// модели любят заворачивать JSON в markdown-ограждение
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var candidates []Candidate
	if err := json.Unmarshal([]byte(content), &candidates); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	questions := make([]models.Question, 0, len(candidates))
	for i, c := range candidates {
		if err := g.validate.Struct(c); err != nil {
			return nil, fmt.Errorf("candidate %d rejected: %w", i, err)
		}
		questions = append(questions, toQuestion(c, models.SourceAdvisory))
	}
	return questions, nil
}

func toQuestion(c Candidate, source models.QuestionSource) models.Question {
	return models.Question{
		Text:       c.Text,
		Dimension:  models.Dimension(c.Dimension),
		Weight:     c.Weight,
		AnswerType: models.AnswerType(c.AnswerType),
		Intent:     models.QuestionIntent(c.Intent),
		Source:     source,
	}
}
