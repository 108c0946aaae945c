package stats

import (
	"sort"

	"hospital-queue/internal/models"
)

type PaymentModeRevenue struct {
	ModeOfPayment string  `json:"mode_of_payment"`
	TotalAmount   float64 `json:"total_amount"`
	VisitCount    int     `json:"visit_count"`
}

type AppointmentModeRevenue struct {
	ModeOfAppointment string  `json:"mode_of_appointment"`
	TotalAmount       float64 `json:"total_amount"`
	VisitCount        int     `json:"visit_count"`
}

type MonthlyRevenue struct {
	Month      string  `json:"month"`
	Revenue    float64 `json:"revenue"`
	VisitCount int     `json:"visit_count"`
}

// Financial is the financial-summary payload.
type Financial struct {
	TotalAmount              float64                  `json:"total_amount"`
	TotalVisits              int                      `json:"total_visits"`
	RevenueByPaymentMode     []PaymentModeRevenue     `json:"revenue_by_payment_mode"`
	RevenueByAppointmentMode []AppointmentModeRevenue `json:"revenue_by_appointment_mode"`
	MonthlyRevenue           []MonthlyRevenue         `json:"monthly_revenue"`
}

type bucket struct {
	amount float64
	count  int
}

// FinancialSummary totals visit payments overall, per payment mode, per
// appointment mode and per month. Visits with an unusable visit_date count in
// the totals but not in the monthly rollup.
func FinancialSummary(visits []models.VisitHistory) Financial {
	out := Financial{
		RevenueByPaymentMode:     []PaymentModeRevenue{},
		RevenueByAppointmentMode: []AppointmentModeRevenue{},
		MonthlyRevenue:           []MonthlyRevenue{},
	}
	byPayment := map[string]*bucket{}
	byAppointment := map[string]*bucket{}
	byMonth := map[string]*bucket{}
	add := func(m map[string]*bucket, key string, amount float64) {
		b, ok := m[key]
		if !ok {
			b = &bucket{}
			m[key] = b
		}
		b.amount += amount
		b.count++
	}

	var total float64
	for _, v := range visits {
		total += v.PaymentAmount
		add(byPayment, orUnknown(v.ModeOfPayment), v.PaymentAmount)
		add(byAppointment, orUnknown(v.ModeOfAppointment), v.PaymentAmount)
		if month, ok := MonthKey(v.VisitDate); ok {
			add(byMonth, month, v.PaymentAmount)
		}
	}
	out.TotalAmount = round2(total)
	out.TotalVisits = len(visits)

	for _, mode := range sortedKeys(byPayment) {
		b := byPayment[mode]
		out.RevenueByPaymentMode = append(out.RevenueByPaymentMode, PaymentModeRevenue{mode, round2(b.amount), b.count})
	}
	for _, mode := range sortedKeys(byAppointment) {
		b := byAppointment[mode]
		out.RevenueByAppointmentMode = append(out.RevenueByAppointmentMode, AppointmentModeRevenue{mode, round2(b.amount), b.count})
	}
	for _, month := range sortedKeys(byMonth) {
		b := byMonth[month]
		out.MonthlyRevenue = append(out.MonthlyRevenue, MonthlyRevenue{month, round2(b.amount), b.count})
	}
	return out
}

type MonthlyVisits struct {
	Month  string `json:"month"`
	Visits int    `json:"visits"`
}

// MonthlyVisitCounts counts visits per YYYY-MM, ascending.
func MonthlyVisitCounts(visits []models.VisitHistory) []MonthlyVisits {
	counts := map[string]int{}
	for _, v := range visits {
		if month, ok := MonthKey(v.VisitDate); ok {
			counts[month]++
		}
	}
	out := make([]MonthlyVisits, 0, len(counts))
	for _, month := range sortedKeys(counts) {
		out = append(out, MonthlyVisits{month, counts[month]})
	}
	return out
}

type DailyVisits struct {
	Date    string  `json:"date"`
	Visits  int     `json:"visits"`
	Revenue float64 `json:"revenue"`
}

// DailyVisitCounts counts visits and revenue per YYYY-MM-DD, ascending.
func DailyVisitCounts(visits []models.VisitHistory) []DailyVisits {
	byDay := map[string]*bucket{}
	for _, v := range visits {
		day, ok := DayKey(v.VisitDate)
		if !ok {
			continue
		}
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.amount += v.PaymentAmount
		b.count++
	}
	out := make([]DailyVisits, 0, len(byDay))
	for _, day := range sortedKeys(byDay) {
		out = append(out, DailyVisits{Date: day, Visits: byDay[day].count, Revenue: round2(byDay[day].amount)})
	}
	return out
}

type DoctorVisits struct {
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	VisitCount int    `json:"visit_count"`
}

type PatientVisits struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	VisitCount  int    `json:"visit_count"`
}

type ClinicVisits struct {
	ClinicID   string `json:"clinic_id"`
	ClinicName string `json:"clinic_name"`
	VisitCount int    `json:"visit_count"`
}

type AppointmentModeVisits struct {
	ModeOfAppointment string `json:"mode_of_appointment"`
	VisitCount        int    `json:"visit_count"`
}

// Patients is the patient-summary payload.
type Patients struct {
	TotalPatients             int                     `json:"total_patients"`
	TopPatientsByVisits       []PatientVisits         `json:"top_patients_by_visits"`
	VisitsByModeOfAppointment []AppointmentModeVisits `json:"visits_by_mode_of_appointment"`
	VisitsByClinic            []ClinicVisits          `json:"visits_by_clinic"`
	VisitsByDoctor            []DoctorVisits          `json:"visits_by_doctor"`
}

// pair is an (id, name) grouping key; the same id under two names is two
// groups.
type pair struct{ id, name string }

// countPairs groups visits by key and returns the groups by count descending,
// then id and name ascending.
func countPairs(visits []models.VisitHistory, key func(models.VisitHistory) pair) ([]pair, map[pair]int) {
	counts := map[pair]int{}
	for _, v := range visits {
		counts[key(v)]++
	}
	keys := make([]pair, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		if a.id != b.id {
			return a.id < b.id
		}
		return a.name < b.name
	})
	return keys, counts
}

func byDoctor(v models.VisitHistory) pair  { return pair{v.DoctorID, v.DoctorName} }
func byPatient(v models.VisitHistory) pair { return pair{v.PatientID, v.PatientName} }
func byClinic(v models.VisitHistory) pair  { return pair{v.ClinicID, v.ClinicName} }

// DoctorVisitCounts ranks doctors by recorded visits. limit <= 0 returns all.
func DoctorVisitCounts(visits []models.VisitHistory, limit int) []DoctorVisits {
	keys, counts := countPairs(visits, byDoctor)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]DoctorVisits, 0, len(keys))
	for _, k := range keys {
		out = append(out, DoctorVisits{k.id, k.name, counts[k]})
	}
	return out
}

// PatientSummary describes who visits, how, where and whom.
func PatientSummary(visits []models.VisitHistory) Patients {
	out := Patients{
		VisitsByModeOfAppointment: []AppointmentModeVisits{},
		VisitsByClinic:            []ClinicVisits{},
	}

	distinct := map[string]struct{}{}
	modes := map[string]int{}
	for _, v := range visits {
		distinct[v.PatientID] = struct{}{}
		modes[orUnknown(v.ModeOfAppointment)]++
	}
	out.TotalPatients = len(distinct)

	patients, counts := countPairs(visits, byPatient)
	if len(patients) > topN {
		patients = patients[:topN]
	}
	out.TopPatientsByVisits = make([]PatientVisits, 0, len(patients))
	for _, k := range patients {
		out.TopPatientsByVisits = append(out.TopPatientsByVisits, PatientVisits{k.id, k.name, counts[k]})
	}

	for _, mode := range sortedKeys(modes) {
		out.VisitsByModeOfAppointment = append(out.VisitsByModeOfAppointment, AppointmentModeVisits{mode, modes[mode]})
	}

	clinics, clinicCounts := countPairs(visits, byClinic)
	for _, k := range clinics {
		out.VisitsByClinic = append(out.VisitsByClinic, ClinicVisits{k.id, k.name, clinicCounts[k]})
	}

	out.VisitsByDoctor = DoctorVisitCounts(visits, 0)
	return out
}
