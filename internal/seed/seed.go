// Package seed loads the reference data the API serves: the coordinate and
// plane catalogs, sample news and the first terms version.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/geo"
)

// ChunkSize is the number of coordinates inserted per statement.
const ChunkSize = 50

// Report summarises a coordinate import.
type Report struct {
	Inserted int
	Skipped  int // blank rows
	Rejected int // rows whose coordinate could not be parsed
}

// Seeder writes reference data. Cache may be nil.
type Seeder struct {
	repo   *repository.Repository
	terms  service.TermsService
	users  service.UserService
	cache  service.Cache
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Seeder.
func New(repo *repository.Repository, terms service.TermsService, users service.UserService, cache service.Cache, logger *zap.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		terms:  terms,
		users:  users,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Coordinates ──────────────────────

// Coordinates imports rows of (location name, "N9 38.060 E39 15.780").
// The first row is a header. Rows missing either column are skipped and rows
// with an unparsable coordinate are rejected; neither stops the import.
func (s *Seeder) Coordinates(ctx context.Context, rows [][]string) (*Report, error) {
	report := &Report{}
	coords := make([]model.Coordinate, 0, len(rows))

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			report.Skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		raw := strings.TrimSpace(row[1])
		p, err := geo.ParseDegreesMinutes(raw)
		if err != nil {
			report.Rejected++
			s.logger.Warn("coordinate row rejected",
				zap.Int("line", i+1),
				zap.String("location_name", name),
				zap.String("coordinate", raw),
				zap.Error(err),
			)
			continue
		}

		coords = append(coords, model.Coordinate{
			LocationName: name,
			Coordinate:   raw,
			Latitude:     p.Latitude,
			Longitude:    p.Longitude,
			IsActive:     true,
		})
	}

	if len(coords) > 0 {
		if err := s.repo.Coordinate.CreateBatch(ctx, coords, ChunkSize); err != nil {
			return report, fmt.Errorf("insert coordinates: %w", err)
		}
	}
	report.Inserted = len(coords)
	s.invalidate(ctx, service.CoordinatesCacheKey)

	s.logger.Info("coordinates imported",
		zap.Int("inserted", report.Inserted),
		zap.Int("skipped", report.Skipped),
		zap.Int("rejected", report.Rejected),
	)
	return report, nil
}

// ────────────────────── Planes ──────────────────────

var defaultPlanes = []model.Plane{
	{Name: "CARAVAN", Model: "CESSNA C208", Capacity: "1MT", Speed: 140},
	{Name: "CARAVAN", Model: "LET 410", Capacity: "2MT", Speed: 160},
}

// Planes inserts the default fleet into an empty catalog and returns the
// number of rows written.
func (s *Seeder) Planes(ctx context.Context) (int, error) {
	n, err := s.repo.Plane.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("plane catalog not empty, skipping", zap.Int64("count", n))
		return 0, nil
	}

	for i := range defaultPlanes {
		plane := defaultPlanes[i]
		if err := s.repo.Plane.Create(ctx, &plane); err != nil {
			return i, fmt.Errorf("insert plane %s %s: %w", plane.Name, plane.Model, err)
		}
	}
	s.invalidate(ctx, service.PlanesCacheKey)
	return len(defaultPlanes), nil
}

// ────────────────────── News ──────────────────────

type sampleNews struct {
	title, content, regions, postedBy string
	daysAgo                           int
}

var samples = []sampleNews{
	{
		title:    "New Flight Routes to Africa Announced",
		content:  "Several airlines have announced new direct flight routes connecting major African cities. This expansion is expected to boost tourism and business travel across the continent.",
		regions:  "Africa, Kenya, Nigeria, South Africa",
		postedBy: "Flight News Team",
		daysAgo:  1,
	},
	{
		title:    "Aviation Industry Shows Strong Recovery",
		content:  "The global aviation industry continues its recovery with passenger numbers reaching 85% of pre-pandemic levels. Airlines are optimistic about the coming year.",
		regions:  "Global, Europe, Asia, Americas",
		postedBy: "Industry Reporter",
		daysAgo:  3,
	},
	{
		title:    "Sustainable Aviation Fuel Initiative Launched",
		content:  "A new initiative to promote sustainable aviation fuel usage has been launched by major airlines. This effort aims to reduce carbon emissions by 50% by 2030.",
		regions:  "Global, Europe, North America",
		postedBy: "Environmental Team",
		daysAgo:  5,
	},
	{
		title:    "Airport Expansion Projects Underway",
		content:  "Multiple airports across East Africa are undergoing major expansion projects to accommodate increasing passenger traffic and improve services.",
		regions:  "East Africa, Kenya, Tanzania, Uganda",
		postedBy: "Infrastructure News",
		daysAgo:  7,
	},
	{
		title:    "New Aircraft Technology Unveiled",
		content:  "Leading aircraft manufacturers have unveiled new fuel-efficient aircraft designs that promise to revolutionize air travel with improved performance and reduced environmental impact.",
		regions:  "Global, Technology",
		postedBy: "Tech Reporter",
		daysAgo:  10,
	},
}

// News inserts the sample feed into an empty news table.
func (s *Seeder) News(ctx context.Context) (int, error) {
	n, err := s.repo.News.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("news table not empty, skipping", zap.Int64("count", n))
		return 0, nil
	}

	now := s.now()
	for i, sample := range samples {
		content := sample.content
		item := &model.News{
			Title:      sample.title,
			Content:    &content,
			Regions:    sample.regions,
			PostedBy:   sample.postedBy,
			DatePosted: now.AddDate(0, 0, -sample.daysAgo),
			IsActive:   true,
		}
		if err := s.repo.News.Create(ctx, item); err != nil {
			return i, fmt.Errorf("insert news %q: %w", sample.title, err)
		}
	}
	return len(samples), nil
}

// ────────────────────── Terms ──────────────────────

const (
	TermsTitle   = "Terms and Conditions"
	TermsVersion = "1.0"
)

// Terms publishes version 1.0 unless some version is already active.
func (s *Seeder) Terms(ctx context.Context) (*dto.TermsResponse, error) {
	active, err := s.terms.GetActive(ctx)
	if err == nil {
		s.logger.Info("terms already active, skipping", zap.String("version", active.Version))
		return active, nil
	}
	if !errors.Is(err, service.ErrTermsNotFound) {
		return nil, err
	}
	return s.terms.Publish(ctx, TermsTitle, termsContent(s.now()), TermsVersion)
}

func termsContent(updated time.Time) string {
	return `<h1>Terms and Conditions for 24 Hour Flight Distance</h1>

<h2>1. Acceptance of Terms</h2>
<p>By downloading, installing, or using the 24 Hour Flight Distance application, you agree to be bound by these Terms and Conditions.</p>

<h2>2. Description of Service</h2>
<p>24 Hour Flight Distance is a mobile application that provides flight distance calculations and related aviation information services.</p>

<h2>3. User Registration</h2>
<p>To access certain features of the app, you must register for an account. You agree to:</p>
<ul>
    <li>Provide accurate and complete information</li>
    <li>Keep your account information updated</li>
    <li>Maintain the security of your account</li>
    <li>Accept responsibility for all activities under your account</li>
</ul>

<h2>4. Account Approval</h2>
<p>New user registrations require administrator approval before access is granted. We reserve the right to approve or deny any registration at our discretion.</p>

<h2>5. Acceptable Use</h2>
<p>You agree not to use the service for any unlawful purpose or in any way that could damage the service or interfere with other users.</p>

<h2>6. Privacy</h2>
<p>Your privacy is important to us. Please review our Privacy Policy to understand how we collect and use your information.</p>

<h2>7. Disclaimer</h2>
<p>The information provided by this application is for general informational purposes only. We make no warranties about the accuracy or completeness of the information.</p>

<h2>8. Changes to Terms</h2>
<p>We reserve the right to modify these terms at any time. Changes will be effective immediately upon posting within the application.</p>

<h2>9. Contact Information</h2>
<p>If you have any questions about these Terms and Conditions, please contact us through the application support channels.</p>

<p><strong>Last Updated:</strong> ` + updated.Format("January 2, 2006") + `</p>
`
}

// ────────────────────── Users ──────────────────────

// Activate approves the account registered under email.
func (s *Seeder) Activate(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := s.users.SetActiveByEmail(ctx, email, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user activated", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// ── helpers ──

func (s *Seeder) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
