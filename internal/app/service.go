// Package app provides the core service that runs professor lookup
// queries: acquire a page session, poll until the course table stabilizes,
// extract, reconcile against the grade store, and present.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avasisht/gradelens/internal/adapters/gradestore"
	"github.com/avasisht/gradelens/internal/adapters/page"
	"github.com/avasisht/gradelens/internal/adapters/report"
	"github.com/avasisht/gradelens/internal/domain/extract"
	"github.com/avasisht/gradelens/internal/domain/model"
	"github.com/avasisht/gradelens/internal/domain/reconcile"
	"github.com/avasisht/gradelens/pkg/logger"
	"github.com/avasisht/gradelens/pkg/metrics"
)

// Pipeline stage names used in error metrics.
const (
	stageSession   = "session"
	stageExtract   = "extract"
	stageStore     = "store"
	stageReconcile = "reconcile"
	stageRender    = "render"
)

// Result is the outcome of one successful lookup.
type Result struct {
	QueryID   string
	Professor string
	Rows      []model.ReconciledRow
}

// Service runs lookup queries. Each query is fully sequential and shares
// no mutable state with the next; the page session is scoped to one query
// and released on every exit path.
type Service struct {
	opener    page.Opener
	store     gradestore.Store
	engine    *reconcile.Engine
	extractor *extract.Extractor
	poller    *page.Poller

	baseURL         string
	instructorField string
	submitField     string
	resultsFrame    string
	chartPath       string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOpener sets the page session opener.
func WithOpener(opener page.Opener) Option {
	return func(s *Service) {
		if opener != nil {
			s.opener = opener
		}
	}
}

// WithStore sets the grade store.
func WithStore(store gradestore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the reconciliation engine.
func WithEngine(engine *reconcile.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithExtractor sets the course extractor.
func WithExtractor(extractor *extract.Extractor) Option {
	return func(s *Service) {
		if extractor != nil {
			s.extractor = extractor
		}
	}
}

// WithPoller sets the stabilization poller.
func WithPoller(poller *page.Poller) Option {
	return func(s *Service) {
		if poller != nil {
			s.poller = poller
		}
	}
}

// WithBaseURL sets the course-listing page URL.
func WithBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithFormFields sets the instructor input, submit element, and results
// frame names. Empty names keep the defaults.
func WithFormFields(instructor, submit, frame string) Option {
	return func(s *Service) {
		if instructor != "" {
			s.instructorField = instructor
		}
		if submit != "" {
			s.submitField = submit
		}
		if frame != "" {
			s.resultsFrame = frame
		}
	}
}

// WithChartPath enables chart rendering to the given PNG path after each
// successful query.
func WithChartPath(path string) Option {
	return func(s *Service) {
		s.chartPath = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		engine:          reconcile.New(),
		extractor:       extract.New(),
		poller:          page.NewPoller(),
		instructorField: "instructname",
		submitField:     "showlist",
		resultsFrame:    "stu_course",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Lookup runs one professor query end to end and returns the reconciled
// rows. The error taxonomy surfaces unwrapped for the caller to classify:
// extract.ErrMalformedTable and reconcile.ErrEmptyResult both mean "no
// courses found"; gradestore.ErrDataSource and reconcile.ErrNormalization
// are fatal for the query only.
func (s *Service) Lookup(ctx context.Context, professor string) (*Result, error) {
	queryID := uuid.NewString()
	start := time.Now()
	metrics.RecordQuery()

	log := s.logger.Named("lookup")
	log.Info(ctx, "starting query",
		logger.String("queryID", queryID),
		logger.String("professor", professor),
	)

	snapshot, err := s.fetchSnapshot(ctx, professor)
	if err != nil {
		metrics.RecordQueryError(stageSession)
		return nil, fmt.Errorf("fetch course table: %w", err)
	}

	courses, err := s.extractor.Courses(snapshot)
	if err != nil {
		metrics.RecordQueryError(stageExtract)
		return nil, err
	}
	metrics.RecordCoursesExtracted(len(courses))
	log.Debug(ctx, "extracted courses",
		logger.String("queryID", queryID),
		logger.Int("count", len(courses)),
	)

	grades, err := s.store.Load(ctx)
	if err != nil {
		metrics.RecordQueryError(stageStore)
		return nil, err
	}

	rows, err := s.engine.Reconcile(ctx, courses, grades)
	if err != nil {
		metrics.RecordQueryError(stageReconcile)
		return nil, err
	}

	metrics.RecordQueryDuration(time.Since(start).Seconds())
	log.Info(ctx, "query complete",
		logger.String("queryID", queryID),
		logger.Int("rows", len(rows)),
		logger.Float64("seconds", time.Since(start).Seconds()),
	)
	return &Result{QueryID: queryID, Professor: professor, Rows: rows}, nil
}

// fetchSnapshot drives the remote page inside a scoped session: navigate,
// fill the instructor form, submit, switch to the results frame, and poll
// until the rendered table stabilizes. The session is closed on every
// path before the snapshot is returned.
func (s *Service) fetchSnapshot(ctx context.Context, professor string) (model.TableSnapshot, error) {
	var snapshot model.TableSnapshot
	err := page.WithSession(ctx, s.opener, func(sess page.Session) error {
		if err := sess.Navigate(ctx, s.baseURL); err != nil {
			return err
		}
		if err := sess.Fill(ctx, s.instructorField, professor); err != nil {
			return err
		}
		if err := sess.Submit(ctx, s.submitField); err != nil {
			return err
		}
		if err := sess.SwitchFrame(ctx, s.resultsFrame); err != nil {
			return err
		}

		src := page.SourceFunc(func(ctx context.Context) (model.TableSnapshot, error) {
			html, err := sess.PageSource(ctx)
			if err != nil {
				return model.TableSnapshot{}, err
			}
			return page.ParseTable(html)
		})

		var err error
		snapshot, err = s.poller.Await(ctx, src)
		return err
	})
	return snapshot, err
}

// Run is the interactive query loop: prompt for a professor name, run the
// lookup, print the table (and chart when configured), repeat. A blank
// name exits. Per-query failures are reported and never kill the loop.
func (s *Service) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "\nEnter the professor's name (blank to exit): ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		professor := strings.TrimSpace(scanner.Text())
		if professor == "" {
			fmt.Fprintln(out, "No name entered. Exiting.")
			return nil
		}

		fmt.Fprintf(out, "Fetching courses for %q...\n", professor)
		result, err := s.Lookup(ctx, professor)
		switch {
		case errors.Is(err, extract.ErrMalformedTable), errors.Is(err, reconcile.ErrEmptyResult):
			fmt.Fprintln(out, "No courses found for this professor.")
			continue
		case err != nil:
			s.logger.Error(ctx, "query failed", logger.Error(err))
			fmt.Fprintf(out, "Lookup failed: %v\n", err)
			continue
		}

		fmt.Fprintf(out, "\nGrade distribution for courses taught by %s:\n", professor)
		if err := report.WriteTable(out, result.Rows); err != nil {
			return err
		}
		s.renderChart(ctx, out, result)
	}
}

// renderChart writes the aggregated distribution chart when configured.
// Chart failures are reported but never fail the query.
func (s *Service) renderChart(ctx context.Context, out io.Writer, result *Result) {
	if s.chartPath == "" {
		return
	}
	f, err := os.Create(s.chartPath)
	if err != nil {
		metrics.RecordQueryError(stageRender)
		s.logger.Warn(ctx, "chart file create failed", logger.Error(err))
		return
	}
	defer f.Close()

	if err := report.RenderChart(f, result.Rows, result.Professor); err != nil {
		metrics.RecordQueryError(stageRender)
		if !errors.Is(err, report.ErrNoData) {
			s.logger.Warn(ctx, "chart render failed", logger.Error(err))
		}
		return
	}
	fmt.Fprintf(out, "Distribution chart written to %s\n", s.chartPath)
}
