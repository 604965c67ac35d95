package school

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// FormatDate formats t as YYYY-MM-DD, the format of every date-only field.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

type (
	Totals struct {
		Students      int `json:"students"`
		Teachers      int `json:"teachers"`
		Staff         int `json:"staff"`
		Courses       int `json:"courses"`
		Announcements int `json:"announcements"`
		Exams         int `json:"exams"`
	}

	AttendanceStats struct {
		Date     string  `json:"date"`
		Present  int     `json:"present"`
		Absent   int     `json:"absent"`
		Late     int     `json:"late"`
		Recorded int     `json:"recorded"`
		Rate     float64 `json:"rate"` // percentage of recorded students who attended (present or late)
	}

	FeesStats struct {
		Due         int64 `json:"due"`
		Paid        int64 `json:"paid"`
		Outstanding int64 `json:"outstanding"` // sum of stored balances
		InArrears   int   `json:"in_arrears"`  // students with a positive balance
	}

	FinanceSummary struct {
		Income            int64            `json:"income"`
		Expenses          int64            `json:"expenses"`
		NetIncome         int64            `json:"net_income"`
		TotalTransactions int              `json:"total_transactions"`
		ByCategory        map[string]int64 `json:"by_category"`
	}

	ExamStats struct {
		Total     int `json:"total"`
		Upcoming  int `json:"upcoming"`
		Completed int `json:"completed"`
		Results   int `json:"results"`
	}

	Stats struct {
		Totals                   Totals                 `json:"totals"`
		StudentsByGender         map[Gender]int         `json:"students_by_gender"`
		TeachersByGender         map[Gender]int         `json:"teachers_by_gender"`
		StudentsByGrade          map[int]int            `json:"students_by_grade"`
		StaffByDepartment        map[Department]int     `json:"staff_by_department"`
		StaffByEmploymentType    map[EmploymentType]int `json:"staff_by_employment_type"`
		AverageTeacherExperience int                    `json:"average_teacher_experience"`
		Attendance               AttendanceStats        `json:"attendance"`
		Fees                     FeesStats              `json:"fees"`
		Finance                  FinanceSummary         `json:"finance"`
		Exams                    ExamStats              `json:"exams"`
	}
)

// Stats computes the dashboard numbers, with attendance taken on `date` (today when empty).
func (svc *Service) Stats(date string) (Stats, error) {
	snap, err := svc.repo.Snapshot()
	if err != nil {
		return Stats{}, errors.Wrap(err, "taking snapshot")
	}
	now := nowFunc()
	if date == "" {
		date = FormatDate(now)
	} else if err := checkDates(dateField{"date", date}); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Totals: Totals{
			Students:      len(snap.Students),
			Teachers:      len(snap.Teachers),
			Staff:         len(snap.Staff),
			Courses:       len(snap.Courses),
			Announcements: len(snap.Announcements),
			Exams:         len(snap.Exams),
		},
		StudentsByGender:         make(map[Gender]int),
		TeachersByGender:         make(map[Gender]int),
		StudentsByGrade:          make(map[int]int),
		StaffByDepartment:        make(map[Department]int, len(Departments)),
		StaffByEmploymentType:    make(map[EmploymentType]int),
		AverageTeacherExperience: AverageExperience(snap.Teachers),
		Attendance:               ComputeAttendanceStats(snap.Attendance, date),
		Fees:                     ComputeFeesStats(snap.Students),
		Finance:                  SummarizeFinance(snap.FinanceRecords),
		Exams:                    ComputeExamStats(snap.Exams, snap.ExamResults, now),
	}
	for _, s := range snap.Students {
		stats.StudentsByGender[s.Gender]++
		stats.StudentsByGrade[s.Grade]++
	}
	for _, t := range snap.Teachers {
		stats.TeachersByGender[t.Gender]++
	}
	for _, d := range Departments {
		stats.StaffByDepartment[d] = 0
	}
	for _, s := range snap.Staff {
		stats.StaffByDepartment[s.Department]++
		stats.StaffByEmploymentType[s.EmploymentType]++
	}
	return stats, nil
}

// FinanceSummary summarizes the records matching filter.
func (svc *Service) FinanceSummary(filter FinanceFilter) (FinanceSummary, error) {
	records, err := svc.QueryFinanceRecords(filter)
	if err != nil {
		return FinanceSummary{}, err
	}
	return SummarizeFinance(records), nil
}

// AverageExperience is the mean teacher experience rounded to the nearest year.
func AverageExperience(teachers []Teacher) int {
	if len(teachers) == 0 {
		return 0
	}
	var sum int
	for _, t := range teachers {
		sum += t.Experience
	}
	return int(math.Round(float64(sum) / float64(len(teachers))))
}

func ComputeAttendanceStats(records []AttendanceRecord, date string) AttendanceStats {
	stats := AttendanceStats{Date: date}
	for _, r := range records {
		if r.Date != date {
			continue
		}
		switch r.Status {
		case StatusPresent:
			stats.Present++
		case StatusAbsent:
			stats.Absent++
		case StatusLate:
			stats.Late++
		default:
			continue
		}
		stats.Recorded++
	}
	stats.Rate = Percentage(float64(stats.Present+stats.Late), float64(stats.Recorded))
	return stats
}

func ComputeFeesStats(students []Student) FeesStats {
	var stats FeesStats
	for _, s := range students {
		stats.Due += s.SchoolFees.Due()
		stats.Paid += s.SchoolFees.TotalPaid
		stats.Outstanding += s.SchoolFees.Balance
		if s.SchoolFees.Balance > 0 {
			stats.InArrears++
		}
	}
	return stats
}

func SummarizeFinance(records []FinanceRecord) FinanceSummary {
	summary := FinanceSummary{
		TotalTransactions: len(records),
		ByCategory:        make(map[string]int64),
	}
	for _, f := range records {
		switch f.Type {
		case FinanceIncome:
			summary.Income += f.Amount
		case FinanceExpense:
			summary.Expenses += f.Amount
		}
		summary.ByCategory[f.Category] += f.Amount
	}
	summary.NetIncome = summary.Income - summary.Expenses
	return summary
}

// ComputeExamStats splits exams into upcoming (after today) and completed (today or before).
func ComputeExamStats(exams []Exam, results []ExamResult, now time.Time) ExamStats {
	today := FormatDate(now)
	stats := ExamStats{Total: len(exams), Results: len(results)}
	for _, e := range exams {
		if e.Date > today {
			stats.Upcoming++
		} else {
			stats.Completed++
		}
	}
	return stats
}

// Percentage returns part/total*100 rounded to one decimal, 0 when total is 0.
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(part/total*1000) / 10
}

// ExamResultDetail is a result joined with its exam and student names.
type ExamResultDetail struct {
	ExamResult
	ExamName    string  `json:"exam_name"`
	StudentName string  `json:"student_name"`
	Percentage  float64 `json:"percentage"`
	Passed      bool    `json:"passed"`
}

// ExamResultDetails joins the results matching filter with their exam and student.
// Dangling references are reported as "Unknown Exam" and "Unknown Student".
func (svc *Service) ExamResultDetails(filter ExamResultFilter) ([]ExamResultDetail, error) {
	results, err := svc.QueryExamResults(filter)
	if err != nil {
		return nil, err
	}
	snap, err := svc.repo.Snapshot()
	if err != nil {
		return nil, errors.Wrap(err, "taking snapshot")
	}
	exams := make(map[string]Exam, len(snap.Exams))
	for _, e := range snap.Exams {
		exams[e.ID] = e
	}
	students := make(map[string]Student, len(snap.Students))
	for _, s := range snap.Students {
		students[s.ID] = s
	}

	details := make([]ExamResultDetail, 0, len(results))
	for _, r := range results {
		d := ExamResultDetail{ExamResult: r, ExamName: "Unknown Exam", StudentName: "Unknown Student"}
		if e, ok := exams[r.ExamID]; ok {
			d.ExamName = e.Name
			d.Percentage = Percentage(r.MarksObtained, float64(e.TotalMarks))
			d.Passed = r.MarksObtained >= float64(e.PassingMarks)
		}
		if s, ok := students[r.StudentID]; ok {
			d.StudentName = s.FullName()
		}
		details = append(details, d)
	}
	return details, nil
}
