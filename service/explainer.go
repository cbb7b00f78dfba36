package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"refi-advisor/domain"
)

// ErrEmptyExplanation is returned when the model answers with no text.
var ErrEmptyExplanation = errors.New("llm returned no explanation")

const (
	HeadlineWorthwhile    = "✅ מומלץ לבצע מחזור!"
	HeadlineNotWorthwhile = "❌ לא מומלץ לבצע מחזור"
)

// Explainer turns an advisory result into a short Hebrew justification.
// On error the caller falls back to the template wording.
type Explainer interface {
	ExplainRefinance(ctx context.Context, scenario domain.RefinanceScenario, result domain.AdvisoryResult) (string, error)
}

// Headline is the one-line verdict shown above the figures.
func Headline(result domain.AdvisoryResult) string {
	if result.IsWorthwhile {
		return HeadlineWorthwhile
	}
	return HeadlineNotWorthwhile
}

// NewExplainer returns an LLM-backed explainer when apiKey is set and the
// templated one otherwise.
func NewExplainer(apiKey, model string, timeout time.Duration, policy domain.RefinancePolicy) Explainer {
	if apiKey == "" {
		return NewTemplateExplainer(policy)
	}
	return NewOpenAIExplainer(openai.NewClient(apiKey), model, timeout, policy)
}

type TemplateExplainer struct {
	policy domain.RefinancePolicy
}

func NewTemplateExplainer(policy domain.RefinancePolicy) *TemplateExplainer {
	return &TemplateExplainer{policy: policy}
}

func (e *TemplateExplainer) ExplainRefinance(
	_ context.Context,
	scenario domain.RefinanceScenario,
	result domain.AdvisoryResult,
) (string, error) {
	return e.explain(scenario, result), nil
}

func (e *TemplateExplainer) explain(scenario domain.RefinanceScenario, result domain.AdvisoryResult) string {
	var b strings.Builder
	b.WriteString(Headline(result))

	switch result.Reason {
	case domain.ReasonWorthwhile:
		fmt.Fprintf(&b, " החיסכון החודשי הוא %s (%s מההחזר הנוכחי), וסך החיסכון לאורך התקופה הוא %s.",
			FormatILS(result.MonthlySavings), FormatPercent(result.SavingsPercentage), FormatILS(result.TotalSavings))
		if scenario.Costs > 0 {
			fmt.Fprintf(&b, " עלויות המחזור יוחזרו תוך %d חודשים.", breakEvenDisplay(result.BreakEvenMonths))
		}
	case domain.ReasonSavingsTooSmall:
		fmt.Fprintf(&b, ": החיסכון החודשי (%s) אינו עולה על הסף של %s.",
			FormatILS(result.MonthlySavings), FormatILS(e.policy.MinMonthlySavings))
	case domain.ReasonNegativeTotalSavings:
		fmt.Fprintf(&b, ": עלויות המחזור (%s) גבוהות מסך החיסכון לאורך התקופה (%s).",
			FormatILS(scenario.Costs), FormatILS(result.TotalSavings+scenario.Costs))
	case domain.ReasonBreakEvenTooLong:
		if result.NeverBreaksEven {
			b.WriteString(": עלויות המחזור לא יוחזרו לעולם.")
		} else {
			fmt.Fprintf(&b, ": נקודת האיזון (%d חודשים) אינה קצרה מ-%d חודשים.",
				breakEvenDisplay(result.BreakEvenMonths), int(e.policy.MaxBreakEvenMonths))
		}
	}
	return b.String()
}

// breakEvenDisplay rounds the break-even period up to whole months.
func breakEvenDisplay(months float64) int {
	return int(math.Ceil(months))
}

// OpenAIExplainer asks a chat model to reword the verdict. The decision
// itself always comes from the engine; the template text is passed along
// as the basis of the answer.
type OpenAIExplainer struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	template *TemplateExplainer
}

func NewOpenAIExplainer(
	client *openai.Client,
	model string,
	timeout time.Duration,
	policy domain.RefinancePolicy,
) *OpenAIExplainer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIExplainer{
		client:   client,
		model:    model,
		timeout:  timeout,
		template: NewTemplateExplainer(policy),
	}
}

const explainerSystemPrompt = "אתה יועץ משכנתאות בישראל. הסבר בעברית פשוטה, ב-2 עד 3 משפטים, את ההמלצה שכבר התקבלה. אל תשנה את ההמלצה ואל תמציא מספרים. הצג סכומים בשקלים."

func (e *OpenAIExplainer) ExplainRefinance(
	ctx context.Context,
	scenario domain.RefinanceScenario,
	result domain.AdvisoryResult,
) (string, error) {
	basis := e.template.explain(scenario, result)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(`נתוני המחזור:
- יתרת משכנתא: %s
- ריבית נוכחית: %s, ריבית מוצעת: %s
- תקופה שנותרה: %.0f שנים
- החזר חודשי נוכחי: %s, החזר חודשי חדש: %s
- חיסכון חודשי: %s, חיסכון כולל אחרי עלויות: %s
- עלויות מחזור: %s
- קוד החלטה: %s
- המלצה סופית: %s
ההסבר הבסיסי: %s`,
		FormatILS(scenario.Current.Principal),
		FormatPercent(scenario.Current.AnnualRatePercent), FormatPercent(scenario.Proposed.AnnualRatePercent),
		scenario.Current.RemainingYears,
		FormatILS(result.CurrentMonthlyPayment), FormatILS(result.NewMonthlyPayment),
		FormatILS(result.MonthlySavings), FormatILS(result.TotalSavings),
		FormatILS(scenario.Costs),
		result.Reason,
		Headline(result),
		basis,
	)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: explainerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("llm explanation: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyExplanation
	}

	return Headline(result) + " " + strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
