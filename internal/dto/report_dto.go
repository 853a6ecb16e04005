package dto

type ReportData struct {
	PatientStats     PatientStats     `json:"patientStats"`
	AppointmentStats AppointmentStats `json:"appointmentStats"`
	RevenueStats     RevenueStats     `json:"revenueStats"`
	DoctorStats      DoctorStats      `json:"doctorPatientStats"`
}

type PatientStats struct {
	TotalPatients    int `json:"totalPatients"`
	NewPatients      int `json:"newPatients"`
	ActivePatients   int `json:"activePatients"`
	InactivePatients int `json:"inactivePatients"`
}

type AppointmentStats struct {
	TotalAppointments     int          `json:"totalAppointments"`
	CompletedAppointments int          `json:"completedAppointments"`
	CancelledAppointments int          `json:"cancelledAppointments"`
	PendingAppointments   int          `json:"pendingAppointments"`
	AppointmentsByMonth   []MonthCount `json:"appointmentsByMonth"`
	AppointmentsByType    []TypeCount  `json:"appointmentsByType"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type RevenueStats struct {
	TotalRevenue     float64          `json:"totalRevenue"`
	PendingPayments  float64          `json:"pendingPayments"`
	RevenueByMonth   []MonthAmount    `json:"revenueByMonth"`
	RevenueByService []ServiceRevenue `json:"revenueByService"`
}

type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type ServiceRevenue struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

type DoctorStats struct {
	DoctorPatientDistribution     []DoctorPatients     `json:"doctorPatientDistribution"`
	DoctorAppointmentDistribution []DoctorAppointments `json:"doctorAppointmentDistribution"`
}

type DoctorPatients struct {
	Doctor   string `json:"doctor"`
	Patients int    `json:"patients"`
}

type DoctorAppointments struct {
	Doctor       string `json:"doctor"`
	Appointments int    `json:"appointments"`
}

// DashboardStats is the admin landing page summary. Each *Percentage field
// is the rounded change against the previous 30-day period.
type DashboardStats struct {
	TotalPatients                 int `json:"totalPatients"`
	TotalPatientsPercentage       int `json:"totalPatientsPercentage"`
	TodayAppointments             int `json:"todayAppointments"`
	TodayAppointmentsPercentage   int `json:"todayAppointmentsPercentage"`
	ActivePatients                int `json:"activePatients"`
	ActivePatientsPercentage      int `json:"activePatientsPercentage"`
	PendingAppointments           int `json:"pendingAppointments"`
	PendingAppointmentsPercentage int `json:"pendingAppointmentsPercentage"`
}
