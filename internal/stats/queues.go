package stats

import (
	"sort"
	"time"

	"hospital-queue/internal/models"
)

// Operational is the operational-summary payload.
type Operational struct {
	TotalQueues        int             `json:"total_queues"`
	StatusCounts       map[string]int  `json:"status_counts"`
	CompletedQueues    int             `json:"completed_queues"`
	NoShowCount        int             `json:"no_show_count"`
	NoShowRatePercent  float64         `json:"no_show_rate_percent"`
	WaitTimeMinutes    MinuteSummary   `json:"wait_time_minutes"`
	ServiceTimeMinutes MinuteSummary   `json:"service_time_minutes"`
	MonthlyVisits      []MonthlyVisits `json:"monthly_visits"`
	TopDoctorsByVisits []DoctorVisits  `json:"top_doctors_by_visits"`
}

// WaitTime is registration to service start.
func WaitTime(q models.Queue) (time.Duration, bool) {
	return Elapsed(&q.RegistrationTime, q.ServiceStartTime)
}

// ServiceTime is service start to service end.
func ServiceTime(q models.Queue) (time.Duration, bool) {
	return Elapsed(q.ServiceStartTime, q.ServiceEndTime)
}

// OperationalSummary reports queue throughput and timings next to the visit
// volume. Cancelled entries count as no-shows. Only statuses that occur appear
// in StatusCounts.
func OperationalSummary(queues []models.Queue, visits []models.VisitHistory) Operational {
	counts := map[string]int{}
	var waits, services []time.Duration
	for _, q := range queues {
		counts[orUnknown(string(q.Status))]++
		if d, ok := WaitTime(q); ok {
			waits = append(waits, d)
		}
		if d, ok := ServiceTime(q); ok {
			services = append(services, d)
		}
	}
	noShow := counts[string(models.StatusCancelled)]
	return Operational{
		TotalQueues:        len(queues),
		StatusCounts:       counts,
		CompletedQueues:    counts[string(models.StatusCompleted)],
		NoShowCount:        noShow,
		NoShowRatePercent:  NoShowRate(noShow, len(queues)),
		WaitTimeMinutes:    SummarizeMinutes(waits),
		ServiceTimeMinutes: SummarizeMinutes(services),
		MonthlyVisits:      MonthlyVisitCounts(visits),
		TopDoctorsByVisits: DoctorVisitCounts(visits, topN),
	}
}

func statusCounts() map[string]int {
	m := make(map[string]int, len(models.QueueStatuses))
	for _, s := range models.QueueStatuses {
		m[string(s)] = 0
	}
	return m
}

type ClinicQueues struct {
	ClinicID     string         `json:"clinic_id"`
	ClinicName   string         `json:"clinic_name"`
	TotalQueues  int            `json:"total_queues"`
	StatusCounts map[string]int `json:"status_counts"`
}

// QueueDay is the queue-summary payload. Date is empty when every day is
// included.
type QueueDay struct {
	Date               string         `json:"date,omitempty"`
	TotalQueues        int            `json:"total_queues"`
	StatusCounts       map[string]int `json:"status_counts"`
	CurrentlyWaiting   int            `json:"currently_waiting"`
	Clinics            []ClinicQueues `json:"clinics"`
	AverageWaitMinutes *float64       `json:"average_wait_minutes"`
}

// QueueSummary breaks down the entries registered on date (YYYY-MM-DD) by
// status and clinic. An empty date takes every entry.
func QueueSummary(queues []models.Queue, date string) QueueDay {
	out := QueueDay{Date: date, StatusCounts: statusCounts(), Clinics: []ClinicQueues{}}
	clinics := map[string]*ClinicQueues{}
	var waits []time.Duration
	for _, q := range queues {
		if date != "" {
			if day, ok := DayKey(q.RegistrationTime); !ok || day != date {
				continue
			}
		}
		out.TotalQueues++
		out.StatusCounts[orUnknown(string(q.Status))]++
		if q.Status == models.StatusWaiting {
			out.CurrentlyWaiting++
		}
		c, ok := clinics[q.ClinicID]
		if !ok {
			c = &ClinicQueues{ClinicID: q.ClinicID, ClinicName: q.ClinicName, StatusCounts: statusCounts()}
			clinics[q.ClinicID] = c
		}
		c.TotalQueues++
		c.StatusCounts[orUnknown(string(q.Status))]++
		if d, ok := WaitTime(q); ok {
			waits = append(waits, d)
		}
	}
	for _, id := range sortedKeys(clinics) {
		out.Clinics = append(out.Clinics, *clinics[id])
	}
	out.AverageWaitMinutes = SummarizeMinutes(waits).Avg
	return out
}

type ClinicDensity struct {
	ClinicID     string  `json:"clinic_id"`
	ClinicName   string  `json:"clinic_name"`
	IsActive     bool    `json:"is_active"`
	TotalQueues  int     `json:"total_queues"`
	WaitingNow   int     `json:"waiting_now"`
	TotalVisits  int     `json:"total_visits"`
	SharePercent float64 `json:"share_percent"`
}

// ClinicDensities reports the load on every clinic, including clinics with no
// traffic and clinic ids that only survive on queue or visit rows after the
// clinic was deleted. Busiest clinics come first.
func ClinicDensities(clinics []models.Clinic, queues []models.Queue, visits []models.VisitHistory) []ClinicDensity {
	byID := map[string]*ClinicDensity{}
	entry := func(id, name string) *ClinicDensity {
		d, ok := byID[id]
		if !ok {
			d = &ClinicDensity{ClinicID: id, ClinicName: name}
			byID[id] = d
		}
		return d
	}
	for _, c := range clinics {
		d := entry(c.ID, c.Name)
		d.IsActive = c.IsActive
	}
	for _, q := range queues {
		d := entry(q.ClinicID, q.ClinicName)
		d.TotalQueues++
		if q.Status == models.StatusWaiting {
			d.WaitingNow++
		}
	}
	for _, v := range visits {
		entry(v.ClinicID, v.ClinicName).TotalVisits++
	}

	out := make([]ClinicDensity, 0, len(byID))
	for _, d := range byID {
		if len(queues) > 0 {
			d.SharePercent = round2(float64(d.TotalQueues) / float64(len(queues)) * 100)
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQueues != out[j].TotalQueues {
			return out[i].TotalQueues > out[j].TotalQueues
		}
		return out[i].ClinicID < out[j].ClinicID
	})
	return out
}
