package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Osprey/Models"
	"Osprey/Schedule"

	"github.com/robfig/cron/v3"
)

// InspectionChecker sweeps every task's schedule once a day and logs the
// ones due today that are still pending, so missed inspections surface in
// the logs before anyone opens a calendar.
type InspectionChecker struct {
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

// NewInspectionChecker creates a new inspection checker
func NewInspectionChecker(runImmediately bool) *InspectionChecker {
	return &InspectionChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		runImmediately: runImmediately,
	}
}

// Start initiates the daily sweep at 6:00 AM
func (s *InspectionChecker) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 6 * * *", func() {
		log.Println("Running scheduled daily inspection sweep")
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Inspection sweep scheduler started - will run daily at 6:00 AM")

	if s.runImmediately {
		log.Println("Running initial inspection sweep")
		s.runSweep()
	}
	return nil
}

// Stop terminates the checker
func (s *InspectionChecker) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Inspection sweep scheduler stopped")
	}
}

// UpdateSchedule changes the sweep schedule.
// Format: "0 0 6 * * *" = at 06:00:00 AM every day
func (s *InspectionChecker) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled inspection sweep")
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Inspection sweep schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCheck executes a sweep outside the schedule
func (s *InspectionChecker) RunManualCheck() {
	log.Println("Running manual inspection sweep")
	s.runSweep()
}

func (s *InspectionChecker) runSweep() {
	today := time.Now()
	todayKey := today.Format(Schedule.DateLayout)

	var maintenances []Models.Maintenance
	if err := Models.DB.Preload("Tasks").Find(&maintenances).Error; err != nil {
		log.Printf("Error in inspection sweep: %v\n", err)
		return
	}
	var assets []Models.Asset
	if err := Models.DB.Find(&assets).Error; err != nil {
		log.Printf("Error in inspection sweep: %v\n", err)
		return
	}
	refs := make([]Schedule.AssetRef, 0, len(assets))
	for _, a := range assets {
		refs = append(refs, Schedule.AssetRef{ID: a.ID, Location: a.LocationDescription})
	}

	dueCount := 0
	for mi := range maintenances {
		maintenance := &maintenances[mi]
		for ti := range maintenance.Tasks {
			task := &maintenance.Tasks[ti]
			frequency, periods := Models.EffectiveSchedule(task, maintenance)
			dates := Schedule.ExpandDates(periods, frequency, today.Year())

			dueToday := false
			for _, d := range dates {
				if d.Format(Schedule.DateLayout) == todayKey {
					dueToday = true
					break
				}
			}
			if !dueToday {
				continue
			}

			outcomes := s.outcomesForTask(maintenance.ID, task.Name, todayKey, refs)
			status := Schedule.Reconcile(today, today, outcomes)
			if status.Class == Schedule.ClassPending {
				dueCount++
				log.Printf("Inspection due today: %s / %s (%d record(s) so far)",
					maintenance.Name, task.Name, status.InspectionCount)
			}
			if status.Class == Schedule.ClassFault {
				log.Printf("Fault reported today: %s / %s", maintenance.Name, task.Name)
			}
		}
	}

	if dueCount == 0 {
		log.Println("No pending inspections due today")
	} else {
		log.Printf("%d task(s) due today still pending", dueCount)
	}
}

func (s *InspectionChecker) outcomesForTask(maintenanceID uint, taskName, date string, refs []Schedule.AssetRef) []Schedule.InspectionOutcome {
	matched := Schedule.MatchAssets(taskName, refs)
	if len(matched) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(matched))
	for _, a := range matched {
		ids = append(ids, a.ID)
	}

	var records []Models.InspectionRecord
	if err := Models.DB.Where("maintenance_id = ? AND asset_id IN ? AND date = ? AND unlinked = ?",
		maintenanceID, ids, date, false).Find(&records).Error; err != nil {
		log.Printf("Error loading inspections for %s: %v\n", taskName, err)
		return nil
	}

	outcomes := make([]Schedule.InspectionOutcome, 0, len(records))
	for _, rec := range records {
		outcomes = append(outcomes, Schedule.InspectionOutcome{
			InspectionStatus: rec.InspectionStatus,
			Status:           rec.Status,
		})
	}
	return outcomes
}
