package advisory

import (
	"context"
	"fmt"
	"strings"

	"ib-riskcalc/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

const analysisPrompt = `Ты помощник аудитора ИБ. По данным оценки актива составь краткий ` +
	`анализ: ключевые угрозы и уязвимости, рекомендуемые меры защиты, ` +
	`комментарий к уровню риска. Отвечай связным текстом на русском, без markdown.`

// Analyze запрашивает у LLM консультативный разбор рассчитанных
// результатов актива. В отличие от генерации вопросов fallback-текста
// нет: анализ — необязательное дополнение, при сбое вызывающий
// получает ошибку, а не суррогат.
func (g *Generator) Analyze(ctx context.Context, asset models.Asset, impact models.ImpactResult, risk *models.RiskResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var b strings.Builder
	fmt.Fprintf(&b, "Актив: %s; тип: %s; критичный: %t\n", asset.Name, asset.Type, asset.Critical)
	fmt.Fprintf(&b, "Воздействие D/I/C: %d/%d/%d\n", impact.ImpactD, impact.ImpactI, impact.ImpactC)
	if risk != nil {
		fmt.Fprintf(&b, "Присущий риск: %.1f (%s); остаточный: %.1f (%s)\n",
			risk.InherentRisk, risk.InherentLevel, risk.ResidualRisk, risk.ResidualLevel)
		for _, tr := range risk.Threats {
			fmt.Fprintf(&b, "Угроза %d: риск %.1f (%s)\n", tr.ThreatID, tr.Value, tr.Level)
		}
	} else {
		b.WriteString("Риск не определён: к активу не привязаны угрозы\n")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisPrompt},
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("advisory analysis: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("advisory analysis: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
