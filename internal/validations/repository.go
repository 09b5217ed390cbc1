package validations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
	"github.com/KHUSHI-P15/Hackout/internal/reports"
	"github.com/KHUSHI-P15/Hackout/internal/triage"
	"github.com/KHUSHI-P15/Hackout/pkg/pagination"
	"github.com/KHUSHI-P15/Hackout/pkg/query"
	"github.com/KHUSHI-P15/Hackout/pkg/repository"
)

type repo struct {
	db         *sql.DB
	rt         *triage.Runtime
	backends   classify.Status
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a validation repository implementing the System interface.
// It internally constructs the triage runtime from the provided dependencies.
func New(
	db *sql.DB,
	classifier *classify.Classifier,
	backends classify.Status,
	logger *slog.Logger,
	pagination pagination.Config,
	reports reports.System,
) System {
	rt := &triage.Runtime{
		Classifier: classifier,
		Reports:    reports,
		Logger:     logger.With("pipeline", "triage"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		backends:   backends,
		logger:     logger.With("system", "validations"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Validation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "AIResult")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count validations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanValidation)
	if err != nil {
		return nil, fmt.Errorf("query validations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Validation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanValidation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) FindByReport(ctx context.Context, reportID uuid.UUID) (*Validation, error) {
	active := true
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("ReportID", &reportID).
		WhereEquals("IsActive", &active).
		BuildSingleOrNull()

	v, err := repository.QueryOne(ctx, r.db, q, args, scanValidation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

// Analyze runs the triage pipeline for a report and persists the outcome
// as the report's active validation record. A prior active record for the
// same report is deactivated within the same transaction.
func (r *repo) Analyze(ctx context.Context, reportID uuid.UUID) (*AnalysisOutcome, error) {
	analysis, err := triage.Execute(ctx, r.rt, reportID)
	if err != nil {
		return nil, fmt.Errorf("analyze report %s: %w", reportID, err)
	}

	aiResult := ResultNoMangroveDetected
	if analysis.Verdict.MangroveDetected {
		aiResult = ResultMangroveDetected
	}

	metadataJSON, err := json.Marshal(metadataFrom(analysis, r.backends.Active))
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	insertQ := `
		INSERT INTO ai_validations(id, report_id, ai_result, confidence, verified, is_active, metadata)
		VALUES ($1, $2, $3, $4, FALSE, TRUE, $5)
		RETURNING id, report_id, ai_result, confidence, verified, is_active,
				  metadata, human_feedback, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		reportID,
		aiResult,
		scaleConfidence(analysis.AverageConfidence),
		metadataJSON,
	}

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Validation, error) {
		if _, err := tx.ExecContext(
			ctx,
			"UPDATE ai_validations SET is_active = FALSE, updated_at = NOW() WHERE report_id = $1 AND is_active = TRUE",
			reportID,
		); err != nil {
			return Validation{}, fmt.Errorf("deactivate prior validation: %w", err)
		}

		return repository.QueryOne(ctx, tx, insertQ, insertArgs, scanValidation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report analyzed",
		"id", v.ID,
		"report_id", reportID,
		"ai_result", v.AIResult,
		"confidence", v.Confidence,
		"action", analysis.Verdict.RecommendedAction,
	)

	return &AnalysisOutcome{Validation: v, Analysis: analysis}, nil
}

// Reconcile records human verifier feedback against the report's active
// validation record. AI accuracy is correct when the verifier's judgement
// matches the stored AI result. Repeated reconciliation overwrites prior
// feedback (last write wins).
func (r *repo) Reconcile(ctx context.Context, reportID uuid.UUID, cmd ReconcileCommand) (*Validation, error) {
	if cmd.VerifiedBy == "" {
		return nil, fmt.Errorf("%w: verified_by required", ErrInvalidFeedback)
	}

	current, err := r.FindByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	accuracy := accuracyOf(current.AIResult, cmd.IsMangrove)

	feedback := HumanFeedback{
		VerifiedBy:       cmd.VerifiedBy,
		VerificationDate: time.Now().UTC(),
		Assessment: Assessment{
			IsMangrove: cmd.IsMangrove,
			Comments:   cmd.Comments,
		},
		AIAccuracy:       accuracy,
		ConfidenceRating: cmd.ConfidenceRating,
	}

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return nil, fmt.Errorf("marshal human_feedback: %w", err)
	}

	updateQ := `
		UPDATE ai_validations
		SET verified = TRUE, human_feedback = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, report_id, ai_result, confidence, verified, is_active,
				  metadata, human_feedback, created_at, updated_at`

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Validation, error) {
		return repository.QueryOne(ctx, tx, updateQ, []any{current.ID, feedbackJSON}, scanValidation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("validation reconciled",
		"id", v.ID,
		"report_id", reportID,
		"verified_by", cmd.VerifiedBy,
		"ai_accuracy", accuracy,
	)
	return &v, nil
}

// statsQuery covers active records only. Records superseded by a re-analysis
// remain in the table for audit but carry is_active = FALSE.
const statsQuery = `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE verified),
		COALESCE(AVG(confidence), 0),
		COUNT(*) FILTER (WHERE human_feedback IS NOT NULL),
		COUNT(*) FILTER (WHERE human_feedback->>'ai_accuracy' = 'correct')
	FROM ai_validations
	WHERE is_active`

// Stats aggregates AI performance over the active validation records and
// attaches the backend selection snapshot taken at startup.
func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	var (
		total    int
		verified int
		avg      float64
		feedback int
		correct  int
	)

	if err := r.db.QueryRowContext(ctx, statsQuery).Scan(&total, &verified, &avg, &feedback, &correct); err != nil {
		return nil, fmt.Errorf("query validation stats: %w", err)
	}

	return statsFrom(total, verified, avg, feedback, correct, r.backends), nil
}

// statsFrom derives the reported rates from raw aggregate counts. Rates are
// percentages rounded to two decimals and left at zero when the denominator
// is zero.
func statsFrom(total, verified int, avg float64, feedback, correct int, backends classify.Status) *Stats {
	stats := &Stats{
		TotalValidations:  total,
		VerifiedCount:     verified,
		AverageConfidence: roundRate(avg),
		FeedbackCount:     feedback,
		Backends:          backends,
	}

	if total > 0 {
		stats.VerificationRate = roundRate(float64(verified) / float64(total) * 100)
	}

	if feedback > 0 {
		stats.AccuracyRate = roundRate(float64(correct) / float64(feedback) * 100)
	}

	return stats
}

func metadataFrom(a *triage.Analysis, backend string) Metadata {
	flags := a.Flags
	if flags == nil {
		flags = []string{}
	}

	return Metadata{
		Backend:               backend,
		TotalImages:           a.TotalImages,
		SuccessfulAnalyses:    a.SuccessfulAnalyses,
		FailedAnalyses:        a.FailedAnalyses,
		MangroveDetectedCount: a.MangroveDetectedCount,
		EvidenceStrength:      a.Verdict.EvidenceStrength,
		ConsensusLevel:        a.Verdict.ConsensusLevel,
		RecommendedAction:     a.Verdict.RecommendedAction,
		Flags:                 flags,
		ProcessingTimeMS:      a.ProcessingTime,
	}
}

// accuracyOf grades a stored AI result against the human verdict: the AI was
// correct when both agree the report shows mangrove damage, or both agree it
// does not.
func accuracyOf(aiResult string, humanIsMangrove bool) string {
	if humanIsMangrove == (aiResult == ResultMangroveDetected) {
		return AccuracyCorrect
	}
	return AccuracyIncorrect
}

// scaleConfidence converts a 0..1 confidence to an integer percentage.
func scaleConfidence(confidence float64) int {
	return int(math.Round(confidence * 100))
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}
