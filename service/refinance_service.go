package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"refi-advisor/domain"
	"refi-advisor/repository"
)

type RefinanceService struct {
	policy    domain.Policy
	repo      repository.AdvisoryRepository
	cache     repository.CacheRepository
	explainer Explainer
	fallback  *TemplateExplainer
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewRefinanceService wires the advisory engine to its cache, calculation
// log and explainer.
func NewRefinanceService(
	policy domain.Policy,
	repo repository.AdvisoryRepository,
	cache repository.CacheRepository,
	explainer Explainer,
	cacheTTL time.Duration,
) *RefinanceService {
	fallback := NewTemplateExplainer(policy.Refinance)
	if explainer == nil {
		explainer = fallback
	}
	return &RefinanceService{
		policy:    policy,
		repo:      repo,
		cache:     cache,
		explainer: explainer,
		fallback:  fallback,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// cachedAdvisory is what the cache keeps per scenario.
type cachedAdvisory struct {
	Result      domain.AdvisoryResult `json:"result"`
	Explanation string                `json:"explanation"`
}

// Evaluate validates the request, runs the engine and logs the outcome.
// Validation failures come back as ValidationErrors and leave no record.
func (s *RefinanceService) Evaluate(
	ctx context.Context,
	req domain.RefinanceRequest,
) (domain.RefinanceEvaluation, error) {

	scenario, err := ValidateRefinance(req, s.policy.Bounds)
	if err != nil {
		return domain.RefinanceEvaluation{}, err
	}

	key := s.cacheKey(scenario)
	advisory, hit := s.lookup(ctx, key)
	if !hit {
		result, err := EvaluateRefinance(scenario, s.policy.Refinance)
		if err != nil {
			return domain.RefinanceEvaluation{}, fmt.Errorf("evaluate refinance: %w", err)
		}
		explanation, err := s.explainer.ExplainRefinance(ctx, scenario, result)
		advisory = cachedAdvisory{Result: result, Explanation: explanation}
		if err != nil {
			// Template wording stands in for this request only; the next
			// one retries the explainer.
			log.Warn().Err(err).Msg("explanation failed, using template")
			advisory.Explanation = s.fallback.explain(scenario, result)
		} else {
			s.store(ctx, key, advisory)
		}
	}

	evaluation := domain.RefinanceEvaluation{
		ID:          uuid.NewString(),
		Scenario:    scenario,
		Result:      advisory.Result,
		Explanation: advisory.Explanation,
		Formatted:   FormatAdvisory(advisory.Result),
	}

	// Save the record (a failure here is not fatal)
	record := domain.AdvisoryRecord{
		ID:        evaluation.ID,
		CreatedAt: s.now(),
		Scenario:  scenario,
		Result:    advisory.Result,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		log.Warn().Err(err).Str("id", record.ID).Msg("failed to save refinance evaluation")
	}

	log.Debug().
		Str("id", evaluation.ID).
		Bool("cache_hit", hit).
		Str("reason", string(advisory.Result.Reason)).
		Msg("refinance evaluated")

	return evaluation, nil
}

// History returns the most recent evaluations, newest first.
func (s *RefinanceService) History(ctx context.Context, limit int) ([]domain.AdvisoryRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return records, nil
}

// Policy exposes the policy the service decides with.
func (s *RefinanceService) Policy() domain.Policy {
	return s.policy
}

func (s *RefinanceService) lookup(ctx context.Context, key string) (cachedAdvisory, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return cachedAdvisory{}, false
	}
	var advisory cachedAdvisory
	if err := json.Unmarshal([]byte(raw), &advisory); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
		return cachedAdvisory{}, false
	}
	return advisory, true
}

func (s *RefinanceService) store(ctx context.Context, key string, advisory cachedAdvisory) {
	raw, err := json.Marshal(advisory)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode advisory for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache advisory")
	}
}

// cacheKey hashes the scenario together with the decision policy so a
// policy change never serves stale verdicts.
func (s *RefinanceService) cacheKey(scenario domain.RefinanceScenario) string {
	parts := []float64{
		scenario.Current.Principal,
		scenario.Current.AnnualRatePercent,
		scenario.Proposed.AnnualRatePercent,
		scenario.Current.RemainingYears,
		scenario.Costs,
		s.policy.Refinance.MinMonthlySavings,
		s.policy.Refinance.MaxBreakEvenMonths,
	}
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
	}
	return "refi:v1:" + strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

// FormatAdvisory renders the figures of result for display.
func FormatAdvisory(result domain.AdvisoryResult) domain.FormattedAdvisory {
	return domain.FormattedAdvisory{
		CurrentMonthlyPayment: FormatILS(result.CurrentMonthlyPayment),
		NewMonthlyPayment:     FormatILS(result.NewMonthlyPayment),
		MonthlySavings:        FormatILS(result.MonthlySavings),
		TotalSavings:          FormatILS(result.TotalSavings),
		SavingsPercentage:     FormatPercent(result.SavingsPercentage),
		Headline:              Headline(result),
	}
}
