package planner

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/meal"
	"github.com/alchemorsel/mealplan/internal/domain/plan"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Options tunes the week assembler
type Options struct {
	// ParallelDays generates the seven days concurrently. Results are
	// identical to sequential runs for the same seed.
	ParallelDays bool
	// SeedSource supplies a seed when a command has none
	SeedSource func() uint64
	// Now supplies the default start date
	Now func() time.Time
}

// Service implements the meal planning use cases
type Service struct {
	profiles  outbound.ProfileService
	diets     outbound.DietCompatibilityResolver
	catalogue outbound.RecipeCatalogue
	days      *DayGenerator
	plans     outbound.WeekPlanRepository
	notifier  outbound.PlanNotifier
	metrics   Metrics
	opts      Options
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewService creates a new meal plan service
func NewService(
	profiles outbound.ProfileService,
	diets outbound.DietCompatibilityResolver,
	catalogue outbound.RecipeCatalogue,
	days *DayGenerator,
	plans outbound.WeekPlanRepository,
	notifier outbound.PlanNotifier,
	metrics Metrics,
	opts Options,
	logger *zap.Logger,
) *Service {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if opts.SeedSource == nil {
		opts.SeedSource = rand.Uint64
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		profiles:  profiles,
		diets:     diets,
		catalogue: catalogue,
		days:      days,
		plans:     plans,
		notifier:  notifier,
		metrics:   metrics,
		opts:      opts,
		tracer:    otel.Tracer(tracerName),
		logger:    logger.Named("planner-service"),
	}
}

var _ inbound.MealPlanService = (*Service)(nil)

// GenerateWeekPlan builds, stores and announces seven consecutive days for a
// user. Any failing day aborts the whole week before anything is stored.
func (s *Service) GenerateWeekPlan(ctx context.Context, cmd inbound.GenerateWeekPlanCommand) (*inbound.WeekPlanDTO, error) {
	started := time.Now()

	seed := s.opts.SeedSource()
	if cmd.Seed != nil {
		seed = *cmd.Seed
	}
	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = s.opts.Now()
	}
	startDate = plan.CalendarDate(startDate)

	ctx, span := s.tracer.Start(ctx, "planner.GenerateWeekPlan",
		trace.WithAttributes(
			attribute.String("user.id", cmd.UserID.String()),
			attribute.String("plan.start_date", startDate.Format(time.DateOnly)),
			attribute.Int64("plan.seed", int64(seed)),
		),
	)
	defer span.End()

	s.logger.Info("Generating week plan",
		zap.String("user_id", cmd.UserID.String()),
		zap.Time("start_date", startDate),
		zap.Uint64("seed", seed),
		zap.Bool("parallel", s.opts.ParallelDays),
	)

	wp, err := s.generate(ctx, cmd, startDate, seed)
	if err != nil {
		outcome := OutcomeFailed
		if meal.IsNoCandidateRecipes(err) {
			outcome = OutcomeNoCandidates
		}
		s.metrics.RecordWeekPlan(outcome, time.Since(started))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		s.logger.Warn("Week plan generation failed",
			zap.String("user_id", cmd.UserID.String()),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.plans.Save(ctx, wp); err != nil {
		s.metrics.RecordWeekPlan(OutcomeFailed, time.Since(started))
		return nil, errors.NewDatabaseError("save week plan", err)
	}

	s.publishEvents(ctx, wp)
	s.metrics.RecordWeekPlan(OutcomeSuccess, time.Since(started))

	dto := entityToDTO(wp)

	s.logger.Info("Week plan generated successfully",
		zap.String("plan_id", dto.ID.String()),
		zap.Float64("week_calories", dto.Totals.Calories),
		zap.Duration("elapsed", time.Since(started)),
	)

	return dto, nil
}

func (s *Service) generate(ctx context.Context, cmd inbound.GenerateWeekPlanCommand, startDate time.Time, seed uint64) (*plan.WeekPlan, error) {
	target, err := s.profiles.GetNutritionTargetForUser(ctx, cmd.UserID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrProfileNotFound) {
			return nil, errors.NewProfileNotFoundError(cmd.UserID.String())
		}
		return nil, errors.NewExternalServiceError("profile service", err)
	}
	if err := target.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	diets, err := s.diets.ResolveCompatibleDietTypes(ctx, target.DietType)
	if err != nil {
		if stderrors.Is(err, meal.ErrUnknownDietType) {
			return nil, errors.NewValidationError(err.Error())
		}
		return nil, errors.NewExternalServiceError("diet compatibility resolver", err)
	}

	days, err := s.generateDays(ctx, startDate, target, diets, seed)
	if err != nil {
		return nil, err
	}

	wp, err := plan.NewGeneratedWeekPlan(cmd.UserID, cmd.AuthorID, startDate, seed, days)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return wp, nil
}

// generateDays runs one engine search per day. Day i draws from its own
// PCG stream (seed, i) so the outcome does not depend on scheduling.
func (s *Service) generateDays(ctx context.Context, startDate time.Time, target meal.Target, diets []meal.DietType, seed uint64) ([]plan.DayPlan, error) {
	days := make([]plan.DayPlan, plan.DaysPerWeek)

	generateDay := func(ctx context.Context, i int) error {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		day, err := s.days.Generate(ctx, startDate.AddDate(0, 0, i), target, diets, rng)
		if err != nil {
			return dayError(err)
		}
		days[i] = *day
		return nil
	}

	if !s.opts.ParallelDays {
		for i := range days {
			if err := generateDay(ctx, i); err != nil {
				return nil, err
			}
		}
		return days, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range days {
		g.Go(func() error {
			return generateDay(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return days, nil
}

// dayError keeps planning failures and cancellations recognisable to callers
func dayError(err error) error {
	switch {
	case meal.IsNoCandidateRecipes(err):
		return err
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, meal.ErrRecipeNotFound):
		return errors.NewExternalServiceError("recipe catalogue", err)
	default:
		return errors.Wrap(err, "day generation failed")
	}
}

func (s *Service) publishEvents(ctx context.Context, wp *plan.WeekPlan) {
	if s.notifier == nil {
		return
	}

	for _, event := range wp.Events() {
		generated, ok := event.(plan.PlanGeneratedEvent)
		if !ok {
			continue
		}
		if err := s.notifier.NotifyPlanGenerated(ctx, generated); err != nil {
			s.logger.Error("Failed to publish event",
				zap.String("event", event.EventName()),
				zap.String("plan_id", wp.ID().String()),
				zap.Error(err),
			)
		}
	}
}

// CreateManualWeekPlan stores a hand-authored week. Nutrition comes from the
// catalogue and is aggregated the same way as generated plans.
func (s *Service) CreateManualWeekPlan(ctx context.Context, cmd inbound.CreateManualWeekPlanCommand) (*inbound.WeekPlanDTO, error) {
	s.logger.Info("Creating manual week plan",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("days", len(cmd.Days)),
	)

	days := make([]plan.DayPlan, 0, len(cmd.Days))
	for _, dayCmd := range cmd.Days {
		meals := make([]plan.Meal, 0, len(dayCmd.Meals))
		for _, mealCmd := range dayCmd.Meals {
			facts, err := s.catalogue.GetNutritionFacts(ctx, mealCmd.RecipeID)
			if err != nil {
				if stderrors.Is(err, meal.ErrRecipeNotFound) {
					return nil, errors.NewValidationError(err.Error()).
						WithMetadata("recipe_id", string(mealCmd.RecipeID))
				}
				return nil, errors.NewExternalServiceError("recipe catalogue", err)
			}
			meals = append(meals, plan.Meal{
				MealType: mealCmd.MealType,
				Position: mealCmd.Position,
				RecipeID: mealCmd.RecipeID,
				Facts:    facts,
			})
		}

		day, err := plan.NewDayPlan(dayCmd.Date, meals)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		days = append(days, day)
	}

	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = s.opts.Now()
	}

	wp, err := plan.NewManualWeekPlan(cmd.UserID, cmd.AuthorID, startDate, days)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.plans.Save(ctx, wp); err != nil {
		return nil, errors.NewDatabaseError("save week plan", err)
	}

	dto := entityToDTO(wp)

	s.logger.Info("Manual week plan created successfully",
		zap.String("plan_id", dto.ID.String()),
		zap.Float64("week_calories", dto.Totals.Calories),
	)

	return dto, nil
}

// GetWeekPlan retrieves a week plan by ID
func (s *Service) GetWeekPlan(ctx context.Context, planID uuid.UUID) (*inbound.WeekPlanDTO, error) {
	wp, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		if stderrors.Is(err, plan.ErrPlanNotFound) {
			return nil, errors.NewPlanNotFoundError(planID.String())
		}
		return nil, errors.NewDatabaseError("find week plan", err)
	}
	return entityToDTO(wp), nil
}

// ListWeekPlans lists a user's plans, most recent week first
func (s *Service) ListWeekPlans(ctx context.Context, ownerID uuid.UUID, params inbound.PaginationParams) (*inbound.WeekPlanList, error) {
	page, pageSize := normalizePagination(params)

	plans, total, err := s.plans.FindByOwner(ctx, ownerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.NewDatabaseError("list week plans", err)
	}

	dtos := make([]inbound.WeekPlanDTO, len(plans))
	for i, wp := range plans {
		dtos[i] = *entityToDTO(wp)
	}

	return &inbound.WeekPlanList{
		Plans:      dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func normalizePagination(params inbound.PaginationParams) (int, int) {
	page, pageSize := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
