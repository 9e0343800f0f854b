package companion

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/careclient"
)

// DataAPI is the slice of the care client the dashboard needs.
type DataAPI interface {
	Medications(ctx context.Context) ([]careclient.Medication, error)
	MedicationLogs(ctx context.Context, startDate, endDate string) ([]careclient.MedicationLog, error)
	RecordCompliance(ctx context.Context, medicationID, date, status string, takenAt *time.Time) error
	Nominees(ctx context.Context) ([]careclient.Nominee, error)
}

// MedicationItem is a medication joined with its log for the day.
type MedicationItem struct {
	ID            string
	Name          string
	Dosage        string
	ScheduledTime string
	Status        string
	TakenAt       string
}

type MedicationStats struct {
	Taken   int
	Pending int
	Missed  int
}

// Dashboard orchestrates data loading and medication compliance state for
// the companion view.
type Dashboard struct {
	mu       sync.Mutex
	api      DataAPI
	notifier Notifier
	logger   *zap.SugaredLogger
	now      func() time.Time

	medications []MedicationItem
	nominees    []careclient.Nominee
}

func NewDashboard(api DataAPI, notifier Notifier, logger *zap.SugaredLogger) *Dashboard {
	return &Dashboard{
		api:      api,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Load fetches medications, today's logs, and nominees concurrently. All
// three must succeed; a partial failure fails the whole load and prior
// data is kept.
func (d *Dashboard) Load(ctx context.Context) error {

	today := d.now().Format("2006-01-02")

	var (
		meds     []careclient.Medication
		logs     []careclient.MedicationLog
		nominees []careclient.Nominee
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meds, err = d.api.Medications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = d.api.MedicationLogs(gctx, today, today)
		return err
	})
	g.Go(func() error {
		var err error
		nominees, err = d.api.Nominees(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		d.logger.Errorw("Failed to load dashboard data", "error", err)
		d.notifier.Failure("Could not load data")
		return err
	}

	items := joinMedications(meds, logs)

	d.mu.Lock()
	d.medications = items
	d.nominees = nominees
	d.mu.Unlock()

	return nil
}

// joinMedications matches each medication with its log for the day. A
// medication without a log entry is pending.
func joinMedications(meds []careclient.Medication, logs []careclient.MedicationLog) []MedicationItem {

	logsByMedication := make(map[string]careclient.MedicationLog, len(logs))
	for _, log := range logs {
		logsByMedication[log.MedicationID] = log
	}

	items := make([]MedicationItem, 0, len(meds))
	for _, med := range meds {
		item := MedicationItem{
			ID:            med.ID,
			Name:          med.Name,
			Dosage:        med.Dosage,
			ScheduledTime: med.ScheduledTime,
			Status:        "pending",
		}
		if log, ok := logsByMedication[med.ID]; ok {
			item.Status = log.Status
			if log.TakenAt != nil {
				item.TakenAt = log.TakenAt.Local().Format("3:04 PM")
			}
		}
		items = append(items, item)
	}

	return items
}

func (d *Dashboard) Medications() []MedicationItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]MedicationItem, len(d.medications))
	copy(out, d.medications)
	return out
}

func (d *Dashboard) Nominees() []careclient.Nominee {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]careclient.Nominee, len(d.nominees))
	copy(out, d.nominees)
	return out
}

// Stats aggregates today's medication statuses. Pure local computation,
// no server round-trip.
func (d *Dashboard) Stats() MedicationStats {

	d.mu.Lock()
	defer d.mu.Unlock()

	var stats MedicationStats
	for _, med := range d.medications {
		switch med.Status {
		case "taken":
			stats.Taken++
		case "missed":
			stats.Missed++
		default:
			stats.Pending++
		}
	}

	return stats
}

// Adherence is the percentage of today's medications taken. An empty list
// counts as full adherence.
func (d *Dashboard) Adherence() int {

	stats := d.Stats()
	total := stats.Taken + stats.Pending + stats.Missed
	if total == 0 {
		return 100
	}

	return int(math.Round(100 * float64(stats.Taken) / float64(total)))
}

// MarkTaken optimistically flips the medication to taken before the
// compliance call. On failure the whole dataset is reloaded from the
// server to discard the speculative change; the snapshot is never patched
// back by hand since the server may have moved on concurrently.
func (d *Dashboard) MarkTaken(ctx context.Context, medicationID string) error {

	now := d.now()

	d.mu.Lock()
	found := false
	for i := range d.medications {
		if d.medications[i].ID == medicationID {
			d.medications[i].Status = "taken"
			d.medications[i].TakenAt = now.Format("3:04 PM")
			found = true
			break
		}
	}
	d.mu.Unlock()

	if !found {
		return fmt.Errorf("unknown medication %q", medicationID)
	}

	err := d.api.RecordCompliance(ctx, medicationID, now.Format("2006-01-02"), "taken", &now)
	if err != nil {
		d.notifier.Failure("Failed to update status")
		if loadErr := d.Load(ctx); loadErr != nil {
			d.logger.Errorw("Reload after failed compliance update failed", "error", loadErr)
		}
		return err
	}

	d.notifier.Success("Medication recorded")
	return nil
}
