package school

import (
	"cmp"
	"sort"
	"strings"

	"github.com/trezcool/shule/core"
)

// Query filters are bound from query strings. Zero values match everything.
// Dates are YYYY-MM-DD strings, so plain string comparison orders them; ranges are inclusive.

type StudentFilter struct {
	Search   string `query:"search"` // on "first last" and id
	Grade    int    `query:"grade"`
	Gender   Gender `query:"gender"`
	CourseID string `query:"course_id"`
}

func (qf *StudentFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Gender = Gender(core.CleanString(string(qf.Gender), true /* lower */))
	qf.CourseID = core.CleanString(qf.CourseID)
}

// Match does not check CourseID: membership needs the course, see Service.QueryStudents.
func (qf *StudentFilter) Match(s Student) bool {
	if qf.Search != "" && !(core.ContainsFold(s.FullName(), qf.Search) || core.ContainsFold(s.ID, qf.Search)) {
		return false
	}
	if qf.Grade != 0 && s.Grade != qf.Grade {
		return false
	}
	if qf.Gender != "" && s.Gender != qf.Gender {
		return false
	}
	return true
}

type TeacherFilter struct {
	Search         string         `query:"search"` // on name, subject and email
	Subject        string         `query:"subject"`
	Gender         Gender         `query:"gender"`
	EmploymentType EmploymentType `query:"employment_type"`
}

func (qf *TeacherFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Subject = core.CleanString(qf.Subject)
	qf.Gender = Gender(core.CleanString(string(qf.Gender), true /* lower */))
	qf.EmploymentType = EmploymentType(core.CleanString(string(qf.EmploymentType)))
}

func (qf *TeacherFilter) Match(t Teacher) bool {
	if qf.Search != "" &&
		!(core.ContainsFold(t.FullName(), qf.Search) ||
			core.ContainsFold(t.Subject, qf.Search) ||
			core.ContainsFold(t.Email, qf.Search)) {
		return false
	}
	if qf.Subject != "" && !strings.EqualFold(t.Subject, qf.Subject) {
		return false
	}
	if qf.Gender != "" && t.Gender != qf.Gender {
		return false
	}
	if qf.EmploymentType != "" && t.EmploymentType != qf.EmploymentType {
		return false
	}
	return true
}

type StaffFilter struct {
	Search         string         `query:"search"` // on name and position
	Department     Department     `query:"department"`
	Gender         Gender         `query:"gender"`
	EmploymentType EmploymentType `query:"employment_type"`
	Shift          Shift          `query:"shift"`
}

func (qf *StaffFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Department = Department(core.CleanString(string(qf.Department)))
	qf.Gender = Gender(core.CleanString(string(qf.Gender), true /* lower */))
	qf.EmploymentType = EmploymentType(core.CleanString(string(qf.EmploymentType)))
	qf.Shift = Shift(core.CleanString(string(qf.Shift)))
}

func (qf *StaffFilter) Match(s Staff) bool {
	if qf.Search != "" && !(core.ContainsFold(s.FullName(), qf.Search) || core.ContainsFold(s.Position, qf.Search)) {
		return false
	}
	if qf.Department != "" && s.Department != qf.Department {
		return false
	}
	if qf.Gender != "" && s.Gender != qf.Gender {
		return false
	}
	if qf.EmploymentType != "" && s.EmploymentType != qf.EmploymentType {
		return false
	}
	if qf.Shift != "" && s.Shift != qf.Shift {
		return false
	}
	return true
}

type CourseFilter struct {
	Search     string `query:"search"` // on name and subject
	GradeLevel int    `query:"grade_level"`
	TeacherID  string `query:"teacher_id"`
	StudentID  string `query:"student_id"`
	Unassigned bool   `query:"unassigned"`
}

func (qf *CourseFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.TeacherID = core.CleanString(qf.TeacherID)
	qf.StudentID = core.CleanString(qf.StudentID)
}

func (qf *CourseFilter) Match(c Course) bool {
	if qf.Search != "" && !(core.ContainsFold(c.Name, qf.Search) || core.ContainsFold(c.Subject, qf.Search)) {
		return false
	}
	if qf.GradeLevel != 0 && c.GradeLevel != qf.GradeLevel {
		return false
	}
	if qf.TeacherID != "" && !c.IsTaughtBy(qf.TeacherID) {
		return false
	}
	if qf.StudentID != "" && !c.HasStudent(qf.StudentID) {
		return false
	}
	if qf.Unassigned && c.TeacherID != nil {
		return false
	}
	return true
}

type AnnouncementFilter struct {
	Search         string   `query:"search"` // on title and content
	Priority       Priority `query:"priority"`
	TargetAudience Audience `query:"target_audience"`
	DateFrom       string   `query:"date_from"`
	DateTo         string   `query:"date_to"`
}

func (qf *AnnouncementFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Priority = Priority(core.CleanString(string(qf.Priority), true /* lower */))
	qf.TargetAudience = Audience(core.CleanString(string(qf.TargetAudience), true /* lower */))
	qf.DateFrom = core.CleanString(qf.DateFrom)
	qf.DateTo = core.CleanString(qf.DateTo)
}

func (qf *AnnouncementFilter) Match(a Announcement) bool {
	if qf.Search != "" && !(core.ContainsFold(a.Title, qf.Search) || core.ContainsFold(a.Content, qf.Search)) {
		return false
	}
	if qf.Priority != "" && a.Priority != qf.Priority {
		return false
	}
	if qf.TargetAudience != "" && a.TargetAudience != qf.TargetAudience {
		return false
	}
	return inDateRange(a.Date.Format(dateLayout), qf.DateFrom, qf.DateTo)
}

type AttendanceFilter struct {
	StudentID string           `query:"student_id"`
	CourseID  string           `query:"course_id"`
	Date      string           `query:"date"`
	DateFrom  string           `query:"date_from"`
	DateTo    string           `query:"date_to"`
	Status    AttendanceStatus `query:"status"`
}

func (qf *AttendanceFilter) Clean() {
	qf.StudentID = core.CleanString(qf.StudentID)
	qf.CourseID = core.CleanString(qf.CourseID)
	qf.Date = core.CleanString(qf.Date)
	qf.DateFrom = core.CleanString(qf.DateFrom)
	qf.DateTo = core.CleanString(qf.DateTo)
	qf.Status = AttendanceStatus(core.CleanString(string(qf.Status), true /* lower */))
}

// Match does not check CourseID: membership needs the course, see Service.QueryAttendance.
func (qf *AttendanceFilter) Match(r AttendanceRecord) bool {
	if qf.StudentID != "" && r.StudentID != qf.StudentID {
		return false
	}
	if qf.Date != "" && r.Date != qf.Date {
		return false
	}
	if qf.Status != "" && r.Status != qf.Status {
		return false
	}
	return inDateRange(r.Date, qf.DateFrom, qf.DateTo)
}

type ExamFilter struct {
	Search     string `query:"search"` // on name and venue
	Subject    string `query:"subject"`
	GradeLevel int    `query:"grade_level"`
}

func (qf *ExamFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Subject = core.CleanString(qf.Subject)
}

func (qf *ExamFilter) Match(e Exam) bool {
	if qf.Search != "" && !(core.ContainsFold(e.Name, qf.Search) || core.ContainsFold(e.Venue, qf.Search)) {
		return false
	}
	if qf.Subject != "" && !strings.EqualFold(e.Subject, qf.Subject) {
		return false
	}
	if qf.GradeLevel != 0 && e.GradeLevel != qf.GradeLevel {
		return false
	}
	return true
}

type ExamResultFilter struct {
	ExamID    string `query:"exam_id"`
	StudentID string `query:"student_id"`
}

func (qf *ExamResultFilter) Clean() {
	qf.ExamID = core.CleanString(qf.ExamID)
	qf.StudentID = core.CleanString(qf.StudentID)
}

func (qf *ExamResultFilter) Match(r ExamResult) bool {
	return (qf.ExamID == "" || r.ExamID == qf.ExamID) && (qf.StudentID == "" || r.StudentID == qf.StudentID)
}

type FinanceFilter struct {
	Type     FinanceType `query:"type"`
	Category string      `query:"category"`
	DateFrom string      `query:"date_from"`
	DateTo   string      `query:"date_to"`
}

func (qf *FinanceFilter) Clean() {
	qf.Type = FinanceType(core.CleanString(string(qf.Type), true /* lower */))
	qf.Category = core.CleanString(qf.Category)
	qf.DateFrom = core.CleanString(qf.DateFrom)
	qf.DateTo = core.CleanString(qf.DateTo)
}

func (qf *FinanceFilter) Match(f FinanceRecord) bool {
	if qf.Type != "" && f.Type != qf.Type {
		return false
	}
	if qf.Category != "" && f.Category != qf.Category {
		return false
	}
	return inDateRange(f.Date, qf.DateFrom, qf.DateTo)
}

func (qf *AnnouncementFilter) checkDates() error {
	return checkDates(dateField{"date_from", qf.DateFrom}, dateField{"date_to", qf.DateTo})
}

func (qf *AttendanceFilter) checkDates() error {
	return checkDates(dateField{"date", qf.Date}, dateField{"date_from", qf.DateFrom}, dateField{"date_to", qf.DateTo})
}

func (qf *FinanceFilter) checkDates() error {
	return checkDates(dateField{"date_from", qf.DateFrom}, dateField{"date_to", qf.DateTo})
}

func inDateRange(date, from, to string) bool {
	return (from == "" || date >= from) && (to == "" || date <= to)
}

// Orderings

type compareFunc[T any] func(a, b T) int

var (
	studentOrderings = map[string]compareFunc[Student]{
		"id":             func(a, b Student) int { return cmp.Compare(a.ID, b.ID) },
		"first_name":     func(a, b Student) int { return cmp.Compare(a.FirstName, b.FirstName) },
		"last_name":      func(a, b Student) int { return cmp.Compare(a.LastName, b.LastName) },
		"grade":          func(a, b Student) int { return cmp.Compare(a.Grade, b.Grade) },
		"date_of_birth":  func(a, b Student) int { return cmp.Compare(a.DateOfBirth, b.DateOfBirth) },
		"admission_date": func(a, b Student) int { return cmp.Compare(a.AdmissionDate, b.AdmissionDate) },
		"balance":        func(a, b Student) int { return cmp.Compare(a.SchoolFees.Balance, b.SchoolFees.Balance) },
	}

	teacherOrderings = map[string]compareFunc[Teacher]{
		"id":         func(a, b Teacher) int { return cmp.Compare(a.ID, b.ID) },
		"first_name": func(a, b Teacher) int { return cmp.Compare(a.FirstName, b.FirstName) },
		"last_name":  func(a, b Teacher) int { return cmp.Compare(a.LastName, b.LastName) },
		"subject":    func(a, b Teacher) int { return cmp.Compare(a.Subject, b.Subject) },
		"experience": func(a, b Teacher) int { return cmp.Compare(a.Experience, b.Experience) },
		"salary":     func(a, b Teacher) int { return cmp.Compare(a.Salary, b.Salary) },
		"hire_date":  func(a, b Teacher) int { return cmp.Compare(a.HireDate, b.HireDate) },
	}

	staffOrderings = map[string]compareFunc[Staff]{
		"id":         func(a, b Staff) int { return cmp.Compare(a.ID, b.ID) },
		"first_name": func(a, b Staff) int { return cmp.Compare(a.FirstName, b.FirstName) },
		"last_name":  func(a, b Staff) int { return cmp.Compare(a.LastName, b.LastName) },
		"department": func(a, b Staff) int { return cmp.Compare(a.Department, b.Department) },
		"salary":     func(a, b Staff) int { return cmp.Compare(a.Salary, b.Salary) },
		"hire_date":  func(a, b Staff) int { return cmp.Compare(a.HireDate, b.HireDate) },
	}
)

// sortByOrderings sorts items in place, keeping insertion order between equal items.
// Unknown fields are ignored.
func sortByOrderings[T any](items []T, orderings []core.Ordering, fields map[string]compareFunc[T]) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, ord := range orderings {
			compare, ok := fields[ord.Field]
			if !ok {
				continue
			}
			if c := compare(items[i], items[j]); c != 0 {
				if ord.Ascending {
					return c < 0
				}
				return c > 0
			}
		}
		return false
	})
}
