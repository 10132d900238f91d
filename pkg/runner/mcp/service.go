// Package mcp provides the Model Context Protocol server integration for sidekick.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/sidekick/pkg/activity"
	"tableflip.dev/sidekick/pkg/app"
	"tableflip.dev/sidekick/pkg/effect"
	"tableflip.dev/sidekick/pkg/entry"
	"tableflip.dev/sidekick/pkg/journal"
	"tableflip.dev/sidekick/pkg/timeutil"
)

// Service adapts app.Service to tool-friendly inputs and outputs.
type Service struct {
	App *app.Service
}

// NewService builds a service wrapper around the application service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

var errNoApp = errors.New("service is not configured")

// FeedEntryDTO is a transport-friendly projection of a feed entry.
type FeedEntryDTO struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Label        string `json:"label"`
	Value        string `json:"value,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	TimestampISO string `json:"time"`
	SourceID     string `json:"sourceId"`
}

// IntakeDTO describes a stored intake.
type IntakeDTO struct {
	ID           string `json:"id"`
	DoseMg       int    `json:"doseMg"`
	WithFood     bool   `json:"withFood"`
	Note         string `json:"note,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	TimestampISO string `json:"time"`
}

// CurveDTO is the effect curve of today's intake.
type CurveDTO struct {
	Intake        *IntakeDTO     `json:"intake,omitempty"`
	DoseMg        int            `json:"doseMg"`
	OffsetMinutes int            `json:"offsetMinutes"`
	Points        []effect.Point `json:"points"`
	Marker        effect.Marker  `json:"marker"`
	Current       float64        `json:"current"`
}

// RecordDTO acknowledges a write.
type RecordDTO struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Timestamp    int64  `json:"timestamp"`
	TimestampISO string `json:"time"`
	Summary      string `json:"summary"`
}

// FeedOptions bounds the activity feed. Window is a duration such as "1d"
// or "12h" ending now; Since and Until override it when set.
type FeedOptions struct {
	Window string
	Since  string
	Until  string
}

// ActivityFeed returns feed entries newest first.
func (s *Service) ActivityFeed(ctx context.Context, opts FeedOptions) ([]FeedEntryDTO, error) {
	if s.App == nil {
		return nil, errNoApp
	}
	now := s.now()

	window, _, err := timeutil.ParseWindow(opts.Window)
	if err != nil {
		return nil, err
	}
	since, until := now.Add(-window), now
	if opts.Since != "" {
		if since, err = entry.ParseTime(opts.Since); err != nil {
			return nil, fmt.Errorf("invalid since value: %w", err)
		}
	}
	if opts.Until != "" {
		if until, err = entry.ParseTime(opts.Until); err != nil {
			return nil, fmt.Errorf("invalid until value: %w", err)
		}
	}

	entries, err := s.App.Logs(ctx, since, until)
	if err != nil {
		return nil, err
	}
	out := make([]FeedEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toFeedDTO(e))
	}
	return out, nil
}

// ExportReport renders the Markdown report of the last days days.
func (s *Service) ExportReport(ctx context.Context, days int) (string, error) {
	if s.App == nil {
		return "", errNoApp
	}
	return s.App.Export(ctx, days)
}

// EffectCurve samples today's effect curve. Dose and offset override the
// stored values when given.
func (s *Service) EffectCurve(ctx context.Context, dose, offset *int) (CurveDTO, error) {
	if s.App == nil {
		return CurveDTO{}, errNoApp
	}
	opts := app.CurveOptions{OffsetMinutes: offset}
	if dose != nil {
		d := entry.Dose(*dose)
		opts.Dose = &d
	}
	res, err := s.App.Curve(ctx, opts)
	if err != nil {
		return CurveDTO{}, err
	}
	out := CurveDTO{
		DoseMg:        int(res.Dose),
		OffsetMinutes: res.OffsetMinutes,
		Points:        res.Points,
		Marker:        res.Marker,
		Current:       res.Current,
	}
	if res.Intake != nil {
		dto := toIntakeDTO(*res.Intake)
		out.Intake = &dto
	}
	return out, nil
}

// LogNote stores a note.
func (s *Service) LogNote(ctx context.Context, content, at string) (RecordDTO, error) {
	if s.App == nil {
		return RecordDTO{}, errNoApp
	}
	when, err := parseAt(at)
	if err != nil {
		return RecordDTO{}, err
	}
	n, err := s.App.Note(ctx, content, when)
	if err != nil {
		return RecordDTO{}, rejected(err, "note content is empty")
	}
	return record(n.ID, activity.KindNote, n.Timestamp, activity.NoteLabel(n.Content)), nil
}

// CheckinOptions holds the ratings of a check-in; zero means unset.
type CheckinOptions struct {
	Mood         int
	Focus        int
	Irritability int
	Restlessness int
	Note         string
	At           string
}

// LogCheckin stores a check-in. At least one rating or a note is required.
func (s *Service) LogCheckin(ctx context.Context, opts CheckinOptions) (RecordDTO, error) {
	if s.App == nil {
		return RecordDTO{}, errNoApp
	}
	values := entry.Ratings{
		Mood:         opts.Mood,
		Focus:        opts.Focus,
		Irritability: opts.Irritability,
		Restlessness: opts.Restlessness,
	}.Clean()
	note := strings.TrimSpace(opts.Note)
	if values.Empty() && note == "" {
		return RecordDTO{}, errors.New("check-in needs at least one rating between 1 and 5 or a note")
	}
	when, err := parseAt(opts.At)
	if err != nil {
		return RecordDTO{}, err
	}
	c, err := s.App.Checkin(ctx, values, note, when)
	if err != nil {
		return RecordDTO{}, err
	}
	return record(c.ID, activity.KindCheckin, c.Timestamp, activity.CheckinSummary(c)), nil
}

// LogMeal stores a meal.
func (s *Service) LogMeal(ctx context.Context, mealType, description, at string) (RecordDTO, error) {
	if s.App == nil {
		return RecordDTO{}, errNoApp
	}
	t, err := entry.ParseMealType(mealType)
	if err != nil {
		return RecordDTO{}, err
	}
	when, err := parseAt(at)
	if err != nil {
		return RecordDTO{}, err
	}
	m, err := s.App.Meal(ctx, t, description, when)
	if err != nil {
		return RecordDTO{}, rejected(err, "meal description is empty")
	}
	return record(m.ID, activity.KindMeal, m.Timestamp, m.Type.Label()+": "+m.Description), nil
}

// MedicationOptions describes an intake. A nil WithFood uses the last value.
type MedicationOptions struct {
	DoseMg   int
	WithFood *bool
	Note     string
	At       string
}

// LogMedication stores an intake.
func (s *Service) LogMedication(ctx context.Context, opts MedicationOptions) (IntakeDTO, error) {
	if s.App == nil {
		return IntakeDTO{}, errNoApp
	}
	dose := entry.Dose(opts.DoseMg)
	if !dose.Valid() {
		return IntakeDTO{}, entry.ErrInvalidDose
	}
	when, err := parseAt(opts.At)
	if err != nil {
		return IntakeDTO{}, err
	}
	withFood := true
	if opts.WithFood != nil {
		withFood = *opts.WithFood
	} else if view, err := s.App.Settings(ctx); err == nil {
		withFood = view.LastWithFood
	}
	in := journal.IntakeInput{Dose: dose, WithFood: withFood, Note: opts.Note}
	if !when.IsZero() {
		in.Timestamp = entry.FromTime(when)
	}
	intake, err := s.App.TakeMedication(ctx, in)
	if err != nil {
		return IntakeDTO{}, err
	}
	return toIntakeDTO(intake), nil
}

func (s *Service) now() time.Time {
	if s.App != nil && s.App.Now != nil {
		return s.App.Now()
	}
	return time.Now()
}

func parseAt(at string) (time.Time, error) {
	if strings.TrimSpace(at) == "" {
		return time.Time{}, nil
	}
	t, err := entry.ParseTime(at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid at value: %w", err)
	}
	return t, nil
}

func rejected(err error, msg string) error {
	if errors.Is(err, app.ErrRejected) {
		return errors.New(msg)
	}
	return err
}

func record(id string, kind activity.Kind, ts entry.Timestamp, summary string) RecordDTO {
	return RecordDTO{
		ID:           id,
		Type:         string(kind),
		Timestamp:    int64(ts),
		TimestampISO: ts.String(),
		Summary:      summary,
	}
}

func toFeedDTO(e activity.Entry) FeedEntryDTO {
	_, source := activity.SourceID(e.ID)
	return FeedEntryDTO{
		ID:           e.ID,
		Type:         string(e.Kind),
		Label:        e.Label,
		Value:        e.Value,
		Timestamp:    int64(e.Timestamp),
		TimestampISO: e.Timestamp.String(),
		SourceID:     source,
	}
}

func toIntakeDTO(in entry.Intake) IntakeDTO {
	return IntakeDTO{
		ID:           in.ID,
		DoseMg:       int(in.DoseMg),
		WithFood:     in.WithFood,
		Note:         in.Note,
		Timestamp:    int64(in.Timestamp),
		TimestampISO: in.Timestamp.String(),
	}
}
