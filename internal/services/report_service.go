package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// AppointmentPrice is the flat amount revenue figures assume per appointment.
	AppointmentPrice = 350.0
	unspecifiedType  = "Belirtilmemiş"
	newPatientWindow = 30 * 24 * time.Hour
)

var turkishMonths = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// servicePrices keys are lower-cased appointment types.
var servicePrices = map[string]float64{
	"diş kontrolü":   250,
	"dolgu":          300,
	"kanal tedavisi": 500,
	"diş çekimi":     400,
	"diş beyazlatma": 600,
}

var statusAliases = map[string]string{
	"tamamlandı": "completed",
	"completed":  "completed",
	"iptal":      "cancelled",
	"cancelled":  "cancelled",
	"bekliyor":   "pending",
	"pending":    "pending",
}

// foldings lower-cases s with Turkish rules and with neutral rules. Turkish
// maps I to ı, which breaks English words such as "PENDING". A Caser holds
// state, so each call gets its own.
func foldings(s string) [2]string {
	return [2]string{
		cases.Lower(language.Turkish).String(s),
		cases.Lower(language.Und).String(s),
	}
}

// statusClass folds an appointment status to completed, cancelled, pending
// or "". Turkish and English spellings match in any case.
func statusClass(status string) string {
	for _, folded := range foldings(status) {
		if class, ok := statusAliases[folded]; ok {
			return class
		}
	}
	return ""
}

func servicePrice(appointmentType string) float64 {
	for _, folded := range foldings(appointmentType) {
		if p, ok := servicePrices[folded]; ok {
			return p
		}
	}
	return AppointmentPrice
}

// snapshot is every row the aggregate reports read.
type snapshot struct {
	users        []models.User
	doctors      []models.Doctor
	appointments []models.Appointment
}

func loadSnapshot(ctx context.Context, uow repository.UnitOfWork) (*snapshot, error) {
	users, err := uow.Users().GetAll(ctx)
	if err != nil {
		return nil, unknown(err)
	}
	doctors, err := uow.Doctors().GetAll(ctx)
	if err != nil {
		return nil, unknown(err)
	}
	appointments, err := uow.Appointments().GetAll(ctx)
	if err != nil {
		return nil, unknown(err)
	}
	return &snapshot{users: users, doctors: doctors, appointments: appointments}, nil
}

func (s *snapshot) patients() []models.User {
	out := make([]models.User, 0, len(s.users))
	for i := range s.users {
		if s.users[i].IsPatient() {
			out = append(out, s.users[i])
		}
	}
	return out
}

// ReportService computes the clinic report from live rows only; no figure is
// estimated or padded with sample data.
type ReportService struct {
	uow repository.Factory
	now func() time.Time
}

func NewReportService(uow repository.Factory) *ReportService {
	return &ReportService{uow: uow, now: time.Now}
}

func (s *ReportService) GetReportData(ctx context.Context) (*dto.ReportData, error) {
	uow := s.uow()
	defer uow.Close()

	snap, err := loadSnapshot(ctx, uow)
	if err != nil {
		return nil, err
	}
	now := s.now()

	appointmentStats := s.appointmentStats(snap.appointments, now)
	return &dto.ReportData{
		PatientStats:     s.patientStats(snap, now),
		AppointmentStats: appointmentStats,
		RevenueStats:     s.revenueStats(appointmentStats),
		DoctorStats:      doctorStats(snap),
	}, nil
}

func (s *ReportService) patientStats(snap *snapshot, now time.Time) dto.PatientStats {
	withAppointments := make(map[uuid.UUID]bool, len(snap.appointments))
	for i := range snap.appointments {
		withAppointments[snap.appointments[i].PatientID] = true
	}

	var stats dto.PatientStats
	cutoff := now.Add(-newPatientWindow)
	for _, p := range snap.patients() {
		stats.TotalPatients++
		if !p.CreatedAt.Before(cutoff) {
			stats.NewPatients++
		}
		if withAppointments[p.ID] {
			stats.ActivePatients++
		} else {
			stats.InactivePatients++
		}
	}
	return stats
}

func (s *ReportService) appointmentStats(appointments []models.Appointment, now time.Time) dto.AppointmentStats {
	stats := dto.AppointmentStats{
		TotalAppointments:   len(appointments),
		AppointmentsByMonth: make([]dto.MonthCount, 12),
		AppointmentsByType:  []dto.TypeCount{},
	}

	// Bucket i is the calendar month i months before now.
	y, m, _ := now.Date()
	current := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	for i := range stats.AppointmentsByMonth {
		month := current.AddDate(0, -i, 0)
		stats.AppointmentsByMonth[i].Month = turkishMonths[month.Month()-1]
	}

	byType := make(map[string]int)
	for i := range appointments {
		a := &appointments[i]
		switch statusClass(a.Status) {
		case "completed":
			stats.CompletedAppointments++
		case "cancelled":
			stats.CancelledAppointments++
		case "pending":
			stats.PendingAppointments++
		}

		ay, am, _ := a.Date.In(now.Location()).Date()
		months := (y-ay)*12 + int(m-am)
		if months >= 0 && months < 12 {
			stats.AppointmentsByMonth[months].Count++
		}

		t := a.Type
		if t == "" {
			t = unspecifiedType
		}
		byType[t]++
	}

	for t, n := range byType {
		stats.AppointmentsByType = append(stats.AppointmentsByType, dto.TypeCount{Type: t, Count: n})
	}
	sort.Slice(stats.AppointmentsByType, func(i, j int) bool {
		a, b := stats.AppointmentsByType[i], stats.AppointmentsByType[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})
	return stats
}

func (s *ReportService) revenueStats(appointments dto.AppointmentStats) dto.RevenueStats {
	stats := dto.RevenueStats{
		TotalRevenue:     float64(appointments.TotalAppointments) * AppointmentPrice,
		PendingPayments:  float64(appointments.PendingAppointments) * AppointmentPrice,
		RevenueByMonth:   make([]dto.MonthAmount, len(appointments.AppointmentsByMonth)),
		RevenueByService: make([]dto.ServiceRevenue, 0, len(appointments.AppointmentsByType)),
	}
	for i, mc := range appointments.AppointmentsByMonth {
		stats.RevenueByMonth[i] = dto.MonthAmount{Month: mc.Month, Amount: float64(mc.Count) * AppointmentPrice}
	}
	for _, tc := range appointments.AppointmentsByType {
		stats.RevenueByService = append(stats.RevenueByService, dto.ServiceRevenue{
			Service: tc.Type,
			Amount:  float64(tc.Count) * servicePrice(tc.Type),
		})
	}
	return stats
}

func doctorStats(snap *snapshot) dto.DoctorStats {
	stats := dto.DoctorStats{
		DoctorPatientDistribution:     make([]dto.DoctorPatients, 0, len(snap.doctors)),
		DoctorAppointmentDistribution: make([]dto.DoctorAppointments, 0, len(snap.doctors)),
	}
	for i := range snap.doctors {
		d := &snap.doctors[i]
		label := fmt.Sprintf("Doktor #%s", d.ID)
		if d.Name != "" {
			label = "Dr. " + d.Name
		}

		patients := make(map[uuid.UUID]bool)
		count := 0
		for j := range snap.appointments {
			if snap.appointments[j].DoctorID == d.ID {
				count++
				patients[snap.appointments[j].PatientID] = true
			}
		}
		stats.DoctorPatientDistribution = append(stats.DoctorPatientDistribution, dto.DoctorPatients{Doctor: label, Patients: len(patients)})
		stats.DoctorAppointmentDistribution = append(stats.DoctorAppointmentDistribution, dto.DoctorAppointments{Doctor: label, Appointments: count})
	}
	return stats
}
