package school

import (
	"fmt"
	"net/mail"
	texttmpl "text/template"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// id prefixes per kind
const (
	studentPrefix      = "s"
	teacherPrefix      = "t"
	staffPrefix        = "st"
	coursePrefix       = "c"
	announcementPrefix = "a"
	examPrefix         = "e"
	examResultPrefix   = "r"
	financePrefix      = "f"
)

var (
	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
	newID   = func(prefix string) string { return prefix + "-" + uuid.NewString() } // mockable

	announcementTmpl = texttmpl.Must(texttmpl.New("announcement").Parse(`{{.Title}}

{{.Content}}

Priority: {{.Priority}}
Posted on {{.Date.Format "Monday, January 2, 2006"}}
`))
)

type (
	Repository interface {
		QueryStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		CreateStudent(s Student) (Student, error)
		UpdateStudent(s Student) (Student, error)
		// DeleteStudent removes the student, strips its id from every course
		// and drops its attendance records and exam results, all at once.
		DeleteStudent(id string) error

		QueryTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		CreateTeacher(t Teacher) (Teacher, error)
		UpdateTeacher(t Teacher) (Teacher, error)
		// DeleteTeacher removes the teacher and unassigns it from its courses.
		DeleteTeacher(id string) error

		QueryStaff() ([]Staff, error)
		GetStaffByID(id string) (Staff, error)
		CreateStaff(s Staff) (Staff, error)
		UpdateStaff(s Staff) (Staff, error)
		DeleteStaff(id string) error

		QueryCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		CreateCourse(c Course) (Course, error)
		UpdateCourse(c Course) (Course, error)
		DeleteCourse(id string) error

		// QueryAnnouncements returns the newest announcement first.
		QueryAnnouncements() ([]Announcement, error)
		GetAnnouncementByID(id string) (Announcement, error)
		// CreateAnnouncement inserts at index 0.
		CreateAnnouncement(a Announcement) (Announcement, error)
		// UpdateAnnouncement keeps the stored Date.
		UpdateAnnouncement(a Announcement) (Announcement, error)
		DeleteAnnouncement(id string) error

		QueryAttendance() ([]AttendanceRecord, error)
		// UpsertAttendance replaces the record with the same (StudentID, Date) in place, or appends it.
		UpsertAttendance(rec AttendanceRecord) (created bool, err error)

		QueryExams() ([]Exam, error)
		GetExamByID(id string) (Exam, error)
		CreateExam(e Exam) (Exam, error)
		UpdateExam(e Exam) (Exam, error)
		// DeleteExam removes the exam along with its results.
		DeleteExam(id string) error

		QueryExamResults() ([]ExamResult, error)
		CreateExamResult(r ExamResult) (ExamResult, error)
		DeleteExamResult(id string) error

		QueryFinanceRecords() ([]FinanceRecord, error)
		CreateFinanceRecord(f FinanceRecord) (FinanceRecord, error)
		DeleteFinanceRecord(id string) error

		Snapshot() (Snapshot, error)
	}

	Service struct {
		repo          Repository
		mailSvc       core.EmailService
		logger        core.Logger
		avatarBaseURL string
	}
)

// NewService returns the school service. mailSvc may be nil to disable announcement emails.
func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{
		repo:          repo,
		mailSvc:       mailSvc,
		logger:        logger,
		avatarBaseURL: conf.AvatarBaseURL,
	}
}

// AvatarURL derives the avatar reference of a person from its id.
func (svc *Service) AvatarURL(id string) string {
	return svc.avatarBaseURL + "?u=" + id
}

func (svc *Service) Snapshot() (Snapshot, error) {
	return svc.repo.Snapshot()
}

// Students

func (svc *Service) QueryStudents(filter StudentFilter, orderings []core.Ordering) ([]Student, error) {
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	var course *Course
	if filter.CourseID != "" {
		c, err := svc.repo.GetCourseByID(filter.CourseID)
		if err != nil {
			if IsNotFound(err) {
				return []Student{}, nil
			}
			return nil, errors.Wrap(err, "getting course")
		}
		course = &c
	}

	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if filter.Match(s) && (course == nil || course.HasStudent(s.ID)) {
			filtered = append(filtered, s)
		}
	}
	sortByOrderings(filtered, orderings, studentOrderings)
	return filtered, nil
}

func (svc *Service) GetStudentByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) AddStudent(sf StudentFields) (Student, error) {
	id := newID(studentPrefix)
	return svc.repo.CreateStudent(Student{
		ID:            id,
		AvatarURL:     svc.AvatarURL(id),
		StudentFields: sf,
	})
}

// UpdateStudent replaces the whole student matched by s.ID.
func (svc *Service) UpdateStudent(s Student) (Student, error) {
	if s.AvatarURL == "" {
		s.AvatarURL = svc.AvatarURL(s.ID)
	}
	s, err := svc.repo.UpdateStudent(s)
	if err == ErrEnrolledInGrade {
		return Student{}, core.NewFieldError("grade", errEnrolledInGradeText)
	}
	return s, err
}

func (svc *Service) DeleteStudent(id string) error {
	return svc.repo.DeleteStudent(id)
}

// Teachers

func (svc *Service) QueryTeachers(filter TeacherFilter, orderings []core.Ordering) ([]Teacher, error) {
	teachers, err := svc.repo.QueryTeachers()
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	filtered := make([]Teacher, 0, len(teachers))
	for _, t := range teachers {
		if filter.Match(t) {
			filtered = append(filtered, t)
		}
	}
	sortByOrderings(filtered, orderings, teacherOrderings)
	return filtered, nil
}

func (svc *Service) GetTeacherByID(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) AddTeacher(tf TeacherFields) (Teacher, error) {
	id := newID(teacherPrefix)
	return svc.repo.CreateTeacher(Teacher{
		ID:            id,
		AvatarURL:     svc.AvatarURL(id),
		TeacherFields: tf,
	})
}

func (svc *Service) UpdateTeacher(t Teacher) (Teacher, error) {
	if t.AvatarURL == "" {
		t.AvatarURL = svc.AvatarURL(t.ID)
	}
	return svc.repo.UpdateTeacher(t)
}

func (svc *Service) DeleteTeacher(id string) error {
	return svc.repo.DeleteTeacher(id)
}

// Staff

func (svc *Service) QueryStaff(filter StaffFilter, orderings []core.Ordering) ([]Staff, error) {
	staff, err := svc.repo.QueryStaff()
	if err != nil {
		return nil, errors.Wrap(err, "querying staff")
	}
	filtered := make([]Staff, 0, len(staff))
	for _, s := range staff {
		if filter.Match(s) {
			filtered = append(filtered, s)
		}
	}
	sortByOrderings(filtered, orderings, staffOrderings)
	return filtered, nil
}

func (svc *Service) GetStaffByID(id string) (Staff, error) {
	return svc.repo.GetStaffByID(id)
}

func (svc *Service) AddStaff(sf StaffFields) (Staff, error) {
	id := newID(staffPrefix)
	return svc.repo.CreateStaff(Staff{
		ID:          id,
		AvatarURL:   svc.AvatarURL(id),
		StaffFields: sf,
	})
}

func (svc *Service) UpdateStaff(s Staff) (Staff, error) {
	if s.AvatarURL == "" {
		s.AvatarURL = svc.AvatarURL(s.ID)
	}
	return svc.repo.UpdateStaff(s)
}

func (svc *Service) DeleteStaff(id string) error {
	return svc.repo.DeleteStaff(id)
}

// Courses

func (svc *Service) QueryCourses(filter CourseFilter) ([]Course, error) {
	courses, err := svc.repo.QueryCourses()
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	filtered := make([]Course, 0, len(courses))
	for _, c := range courses {
		if filter.Match(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (svc *Service) GetCourseByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) AddCourse(cf CourseFields) (Course, error) {
	c, err := svc.repo.CreateCourse(Course{
		ID:           newID(coursePrefix),
		CourseFields: cf,
	})
	return c, courseRefError(err, cf.GradeLevel)
}

func (svc *Service) UpdateCourse(c Course) (Course, error) {
	updated, err := svc.repo.UpdateCourse(c)
	return updated, courseRefError(err, c.GradeLevel)
}

// courseRefError reports the references the store refused as field errors.
func courseRefError(err error, grade int) error {
	switch err {
	case ErrTeacherNotFound:
		return core.NewFieldError("teacher_id", errTeacherNotFoundText)
	case ErrStudentNotFound:
		return core.NewFieldError("student_ids", errStudentNotFoundText)
	case ErrGradeMismatch:
		return core.NewFieldError("student_ids", fmt.Sprintf(errStudentsGradeText, grade))
	}
	return err
}

func (svc *Service) DeleteCourse(id string) error {
	return svc.repo.DeleteCourse(id)
}

// Announcements

func (svc *Service) QueryAnnouncements(filter AnnouncementFilter) ([]Announcement, error) {
	if err := filter.checkDates(); err != nil {
		return nil, err
	}
	announcements, err := svc.repo.QueryAnnouncements()
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	filtered := make([]Announcement, 0, len(announcements))
	for _, a := range announcements {
		if filter.Match(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (svc *Service) GetAnnouncementByID(id string) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(id)
}

// AddAnnouncement stamps the announcement with the current time, puts it first
// and emails it to its audience. A failed notification is logged, never returned.
func (svc *Service) AddAnnouncement(af AnnouncementFields) (Announcement, error) {
	a, err := svc.repo.CreateAnnouncement(Announcement{
		ID:                 newID(announcementPrefix),
		Date:               nowFunc(),
		AnnouncementFields: af,
	})
	if err != nil {
		return Announcement{}, err
	}
	if err := svc.notify(a); err != nil {
		svc.logger.Warn(fmt.Sprintf("notifying audience of announcement %s: %v", a.ID, err), err)
	}
	return a, nil
}

func (svc *Service) UpdateAnnouncement(a Announcement) (Announcement, error) {
	return svc.repo.UpdateAnnouncement(a)
}

func (svc *Service) DeleteAnnouncement(id string) error {
	return svc.repo.DeleteAnnouncement(id)
}

func (svc *Service) notify(a Announcement) error {
	if svc.mailSvc == nil {
		return nil
	}

	var recipients []mail.Address
	if a.TargetAudience.Includes(AudienceTeachers) {
		teachers, err := svc.repo.QueryTeachers()
		if err != nil {
			return errors.Wrap(err, "querying teachers")
		}
		for _, t := range teachers {
			if t.Email != "" {
				recipients = append(recipients, mail.Address{Name: t.FullName(), Address: t.Email})
			}
		}
	}
	if a.TargetAudience == AudienceAll {
		staff, err := svc.repo.QueryStaff()
		if err != nil {
			return errors.Wrap(err, "querying staff")
		}
		for _, s := range staff {
			if s.Email != "" {
				recipients = append(recipients, mail.Address{Name: s.FullName(), Address: s.Email})
			}
		}
	}

	messages := make([]*core.EmailMessage, 0, len(recipients))
	for _, to := range recipients {
		messages = append(messages, &core.EmailMessage{
			To:           []mail.Address{to},
			Subject:      subjectFor(a),
			Template:     announcementTmpl,
			TemplateData: a,
		})
	}
	if len(messages) > 0 {
		svc.mailSvc.SendMessages(messages...)
	}
	return nil
}

func subjectFor(a Announcement) string {
	if a.Priority == PriorityHigh {
		return fmt.Sprintf("[Important] %s", a.Title)
	}
	return a.Title
}

// Attendance

func (svc *Service) QueryAttendance(filter AttendanceFilter) ([]AttendanceRecord, error) {
	if err := filter.checkDates(); err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryAttendance()
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}

	var course *Course
	if filter.CourseID != "" {
		c, err := svc.repo.GetCourseByID(filter.CourseID)
		if err != nil {
			if IsNotFound(err) {
				return []AttendanceRecord{}, nil
			}
			return nil, errors.Wrap(err, "getting course")
		}
		course = &c
	}

	filtered := make([]AttendanceRecord, 0, len(records))
	for _, r := range records {
		if filter.Match(r) && (course == nil || course.HasStudent(r.StudentID)) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// UpsertAttendance records the status of a student for a day, replacing any previous status.
func (svc *Service) UpsertAttendance(rec AttendanceRecord) (AttendanceRecord, bool, error) {
	created, err := svc.repo.UpsertAttendance(rec)
	if err != nil {
		if err == ErrStudentNotFound {
			err = core.NewFieldError("student_id", errStudentNotFoundText)
		}
		return AttendanceRecord{}, false, err
	}
	return rec, created, nil
}

type DailyAttendanceEntry struct {
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Status      AttendanceStatus `json:"status"`
	Recorded    bool             `json:"recorded"`
}

// DailyAttendance lists every student of the course with their status on date (today when empty).
// Students without a record for that day are reported present.
func (svc *Service) DailyAttendance(courseID, date string) ([]DailyAttendanceEntry, error) {
	if date == "" {
		date = FormatDate(nowFunc())
	} else if err := checkDates(dateField{"date", date}); err != nil {
		return nil, err
	}
	course, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryAttendance()
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	statuses := make(map[string]AttendanceStatus)
	for _, r := range records {
		if r.Date == date {
			statuses[r.StudentID] = r.Status
		}
	}

	entries := make([]DailyAttendanceEntry, 0, len(course.StudentIDs))
	for _, sid := range course.StudentIDs {
		s, err := svc.repo.GetStudentByID(sid)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, errors.Wrap(err, "getting student")
		}
		entry := DailyAttendanceEntry{StudentID: s.ID, StudentName: s.FullName(), Status: StatusPresent}
		if status, ok := statuses[s.ID]; ok {
			entry.Status = status
			entry.Recorded = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Exams

func (svc *Service) QueryExams(filter ExamFilter) ([]Exam, error) {
	exams, err := svc.repo.QueryExams()
	if err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}
	filtered := make([]Exam, 0, len(exams))
	for _, e := range exams {
		if filter.Match(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (svc *Service) GetExamByID(id string) (Exam, error) {
	return svc.repo.GetExamByID(id)
}

func (svc *Service) AddExam(ef ExamFields) (Exam, error) {
	return svc.repo.CreateExam(Exam{ID: newID(examPrefix), ExamFields: ef})
}

// UpdateExam refuses a total below marks already recorded for the exam.
func (svc *Service) UpdateExam(e Exam) (Exam, error) {
	e, err := svc.repo.UpdateExam(e)
	if err == ErrMarksAboveTotal {
		return Exam{}, core.NewFieldError("total_marks", errTotalBelowMarksText)
	}
	return e, err
}

func (svc *Service) DeleteExam(id string) error {
	return svc.repo.DeleteExam(id)
}

func (svc *Service) QueryExamResults(filter ExamResultFilter) ([]ExamResult, error) {
	results, err := svc.repo.QueryExamResults()
	if err != nil {
		return nil, errors.Wrap(err, "querying exam results")
	}
	filtered := make([]ExamResult, 0, len(results))
	for _, r := range results {
		if filter.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// AddExamResult records a result; the letter grade is computed from the marks when left empty.
func (svc *Service) AddExamResult(examID string, rf ExamResultFields) (ExamResult, error) {
	exam, err := svc.repo.GetExamByID(examID)
	if err != nil {
		return ExamResult{}, err
	}
	if rf.Grade == "" {
		rf.Grade = GradeFor(rf.MarksObtained, exam.TotalMarks)
	}
	r, err := svc.repo.CreateExamResult(ExamResult{
		ID:               newID(examResultPrefix),
		ExamID:           exam.ID,
		ExamResultFields: rf,
	})
	switch err {
	case ErrStudentNotFound:
		return ExamResult{}, core.NewFieldError("student_id", errStudentNotFoundText)
	case ErrDuplicateResult:
		return ExamResult{}, core.NewFieldError("student_id", errDuplicateResultText)
	case ErrMarksAboveTotal:
		return ExamResult{}, core.NewFieldError("marks_obtained", fmt.Sprintf(errMarksAboveTotalText, exam.TotalMarks))
	}
	return r, err
}

func (svc *Service) DeleteExamResult(id string) error {
	return svc.repo.DeleteExamResult(id)
}

// GradeFor converts marks into a letter grade on the school's scale.
func GradeFor(marks float64, totalMarks int) string {
	if totalMarks <= 0 {
		return "F"
	}
	percentage := marks / float64(totalMarks) * 100
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B+"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C+"
	case percentage >= 50:
		return "C"
	case percentage >= 40:
		return "D"
	}
	return "F"
}

// Finance

func (svc *Service) QueryFinanceRecords(filter FinanceFilter) ([]FinanceRecord, error) {
	if err := filter.checkDates(); err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryFinanceRecords()
	if err != nil {
		return nil, errors.Wrap(err, "querying finance records")
	}
	filtered := make([]FinanceRecord, 0, len(records))
	for _, f := range records {
		if filter.Match(f) {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

func (svc *Service) AddFinanceRecord(ff FinanceRecordFields) (FinanceRecord, error) {
	f, err := svc.repo.CreateFinanceRecord(FinanceRecord{ID: newID(financePrefix), FinanceRecordFields: ff})
	if err == ErrStudentNotFound {
		return FinanceRecord{}, core.NewFieldError("student_id", errStudentNotFoundText)
	}
	return f, err
}

func (svc *Service) DeleteFinanceRecord(id string) error {
	return svc.repo.DeleteFinanceRecord(id)
}
