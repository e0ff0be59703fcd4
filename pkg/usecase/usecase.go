package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
	"github.com/secmon-lab/riskcard/pkg/service/render"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
)

// Dashboard serves the one report loaded at startup. The report is
// immutable, so a Dashboard is safe for concurrent use.
type Dashboard struct {
	report  *model.RiskReport
	metrics interfaces.RenderObserver

	etagOnce sync.Once
	etag     string
	etagErr  error
}

type Option func(*Dashboard)

// WithMetrics records every render pass
func WithMetrics(m interfaces.RenderObserver) Option {
	return func(d *Dashboard) {
		d.metrics = m
	}
}

func New(report *model.RiskReport, opts ...Option) *Dashboard {
	d := &Dashboard{
		report: report,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Report returns the served report
func (d *Dashboard) Report() *model.RiskReport {
	return d.report
}

func (d *Dashboard) render(ctx context.Context, format render.Format) ([]byte, error) {
	start := time.Now()
	doc, err := render.Document(d.report, format)
	elapsed := time.Since(start)

	if d.metrics != nil {
		d.metrics.ObserveRender(string(format), elapsed, err)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render report", goerr.V(FormatKey, format))
	}

	logging.From(ctx).Debug("report rendered",
		"format", format,
		"size", len(doc),
		"elapsed", elapsed,
	)
	return doc, nil
}

// Render writes the report document in format to w. Nothing is written if
// rendering fails.
func (d *Dashboard) Render(ctx context.Context, w io.Writer, format render.Format) error {
	doc, err := d.render(ctx, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(doc); err != nil {
		return goerr.Wrap(err, "failed to write report", goerr.V(FormatKey, format))
	}
	return nil
}

// RenderHTML writes the HTML score card to w
func (d *Dashboard) RenderHTML(ctx context.Context, w io.Writer) error {
	return d.Render(ctx, w, render.FormatHTML)
}

// RenderJSON writes the report as JSON to w
func (d *Dashboard) RenderJSON(ctx context.Context, w io.Writer) error {
	return d.Render(ctx, w, render.FormatJSON)
}

// ETag returns a strong entity tag of the HTML document. It is computed on
// first use; the document never changes afterwards.
func (d *Dashboard) ETag(ctx context.Context) (string, error) {
	d.etagOnce.Do(func() {
		doc, err := d.render(ctx, render.FormatHTML)
		if err != nil {
			d.etagErr = err
			return
		}
		sum := sha256.Sum256(doc)
		d.etag = `"` + hex.EncodeToString(sum[:16]) + `"`
	})
	return d.etag, d.etagErr
}

// Summary is the headline figures of the report
type Summary struct {
	Borrower             string         `json:"borrower"`
	CreditScore          int            `json:"credit_score"`
	ScoreReference       int            `json:"score_reference"`
	ScoreDelta           int            `json:"score_delta"`
	Band                 types.RiskBand `json:"band"`
	BandLabel            string         `json:"band_label"`
	RiskRating           string         `json:"risk_rating"`
	Trend                types.Trend    `json:"trend"`
	ProbabilityOfDefault float64        `json:"probability_of_default_12m"`
	CreditLimit          string         `json:"recommended_credit_limit"`
	Verdict              types.Verdict  `json:"verdict"`
	Recommendation       string         `json:"recommendation,omitempty"`
}

// Summary returns the headline figures
func (d *Dashboard) Summary() Summary {
	r := d.report
	band := r.Band()
	return Summary{
		Borrower:             r.Borrower(),
		CreditScore:          r.CreditScore(),
		ScoreReference:       r.ScoreReference(),
		ScoreDelta:           r.ScoreDelta(),
		Band:                 band,
		BandLabel:            band.Label(),
		RiskRating:           r.RiskRating().Label.String(),
		Trend:                r.RiskRating().Trend,
		ProbabilityOfDefault: r.DefaultProbability().Percent,
		CreditLimit:          r.CreditLimit().Amount.String(),
		Verdict:              r.Decision().Verdict,
		Recommendation:       r.Decision().Recommendation,
	}
}
