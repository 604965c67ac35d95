package inmemdb

import (
	"github.com/trezcool/shule/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

// clone returns a copy of s that never aliases the store; an empty s gives an empty, non-nil slice.
func clone[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}

func (repo *schoolRepository) courses() []school.Course {
	courses := make([]school.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, copyCourse(c))
	}
	return courses
}

func (repo *schoolRepository) Snapshot() (school.Snapshot, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return school.Snapshot{
		Students:       clone(repo.db.students),
		Teachers:       clone(repo.db.teachers),
		Staff:          clone(repo.db.staff),
		Courses:        repo.courses(),
		Announcements:  clone(repo.db.announcements),
		Attendance:     clone(repo.db.attendance),
		Exams:          clone(repo.db.exams),
		ExamResults:    clone(repo.db.examResults),
		FinanceRecords: clone(repo.db.financeRecords),
	}, nil
}

// Students

func (repo *schoolRepository) QueryStudents() ([]school.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.students), nil
}

func (repo *schoolRepository) findStudent(id string) int {
	for i, s := range repo.db.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (repo *schoolRepository) GetStudentByID(id string) (school.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.findStudent(id); i >= 0 {
		return repo.db.students[i], nil
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *schoolRepository) CreateStudent(s school.Student) (school.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.students = append(repo.db.students, s)
	return s, nil
}

func (repo *schoolRepository) UpdateStudent(s school.Student) (school.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findStudent(s.ID)
	if i < 0 {
		return school.Student{}, school.ErrStudentNotFound
	}
	if s.Grade != repo.db.students[i].Grade {
		for _, c := range repo.db.courses {
			if c.HasStudent(s.ID) && c.GradeLevel != s.Grade {
				return school.Student{}, school.ErrEnrolledInGrade
			}
		}
	}
	repo.db.students[i] = s
	return s, nil
}

func (repo *schoolRepository) DeleteStudent(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findStudent(id)
	if i < 0 {
		return school.ErrStudentNotFound
	}
	repo.db.students = append(repo.db.students[:i:i], repo.db.students[i+1:]...)

	// cascade-remove from courses
	for ci, c := range repo.db.courses {
		if !c.HasStudent(id) {
			continue
		}
		kept := make([]string, 0, len(c.StudentIDs)-1)
		for _, sid := range c.StudentIDs {
			if sid != id {
				kept = append(kept, sid)
			}
		}
		repo.db.courses[ci].StudentIDs = kept
	}

	// cascade-delete attendance and exam results
	attendance := make([]school.AttendanceRecord, 0, len(repo.db.attendance))
	for _, r := range repo.db.attendance {
		if r.StudentID != id {
			attendance = append(attendance, r)
		}
	}
	repo.db.attendance = attendance

	results := make([]school.ExamResult, 0, len(repo.db.examResults))
	for _, r := range repo.db.examResults {
		if r.StudentID != id {
			results = append(results, r)
		}
	}
	repo.db.examResults = results
	return nil
}

// Teachers

func (repo *schoolRepository) QueryTeachers() ([]school.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.teachers), nil
}

func (repo *schoolRepository) findTeacher(id string) int {
	for i, t := range repo.db.teachers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (repo *schoolRepository) GetTeacherByID(id string) (school.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.findTeacher(id); i >= 0 {
		return repo.db.teachers[i], nil
	}
	return school.Teacher{}, school.ErrTeacherNotFound
}

func (repo *schoolRepository) CreateTeacher(t school.Teacher) (school.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.teachers = append(repo.db.teachers, t)
	return t, nil
}

func (repo *schoolRepository) UpdateTeacher(t school.Teacher) (school.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findTeacher(t.ID)
	if i < 0 {
		return school.Teacher{}, school.ErrTeacherNotFound
	}
	repo.db.teachers[i] = t
	return t, nil
}

func (repo *schoolRepository) DeleteTeacher(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findTeacher(id)
	if i < 0 {
		return school.ErrTeacherNotFound
	}
	repo.db.teachers = append(repo.db.teachers[:i:i], repo.db.teachers[i+1:]...)

	// cascade-to-null: the courses stay, unassigned
	for ci, c := range repo.db.courses {
		if c.IsTaughtBy(id) {
			repo.db.courses[ci].TeacherID = nil
		}
	}
	return nil
}

// Staff

func (repo *schoolRepository) QueryStaff() ([]school.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.staff), nil
}

func (repo *schoolRepository) findStaff(id string) int {
	for i, s := range repo.db.staff {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (repo *schoolRepository) GetStaffByID(id string) (school.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.findStaff(id); i >= 0 {
		return repo.db.staff[i], nil
	}
	return school.Staff{}, school.ErrStaffNotFound
}

func (repo *schoolRepository) CreateStaff(s school.Staff) (school.Staff, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.staff = append(repo.db.staff, s)
	return s, nil
}

func (repo *schoolRepository) UpdateStaff(s school.Staff) (school.Staff, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findStaff(s.ID)
	if i < 0 {
		return school.Staff{}, school.ErrStaffNotFound
	}
	repo.db.staff[i] = s
	return s, nil
}

func (repo *schoolRepository) DeleteStaff(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findStaff(id)
	if i < 0 {
		return school.ErrStaffNotFound
	}
	repo.db.staff = append(repo.db.staff[:i:i], repo.db.staff[i+1:]...)
	return nil
}

// Courses

func (repo *schoolRepository) QueryCourses() ([]school.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.courses(), nil
}

func (repo *schoolRepository) findCourse(id string) int {
	for i, c := range repo.db.courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (repo *schoolRepository) GetCourseByID(id string) (school.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.findCourse(id); i >= 0 {
		return copyCourse(repo.db.courses[i]), nil
	}
	return school.Course{}, school.ErrCourseNotFound
}

// checkCourseRefs reports a teacher or student of c missing from the store,
// or a student of another grade.
func (repo *schoolRepository) checkCourseRefs(c school.Course) error {
	if c.TeacherID != nil && repo.findTeacher(*c.TeacherID) < 0 {
		return school.ErrTeacherNotFound
	}
	for _, sid := range c.StudentIDs {
		i := repo.findStudent(sid)
		if i < 0 {
			return school.ErrStudentNotFound
		}
		if repo.db.students[i].Grade != c.GradeLevel {
			return school.ErrGradeMismatch
		}
	}
	return nil
}

func (repo *schoolRepository) CreateCourse(c school.Course) (school.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if err := repo.checkCourseRefs(c); err != nil {
		return school.Course{}, err
	}
	c = copyCourse(c)
	repo.db.courses = append(repo.db.courses, c)
	return copyCourse(c), nil
}

func (repo *schoolRepository) UpdateCourse(c school.Course) (school.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findCourse(c.ID)
	if i < 0 {
		return school.Course{}, school.ErrCourseNotFound
	}
	if err := repo.checkCourseRefs(c); err != nil {
		return school.Course{}, err
	}
	c = copyCourse(c)
	repo.db.courses[i] = c
	return copyCourse(c), nil
}

func (repo *schoolRepository) DeleteCourse(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findCourse(id)
	if i < 0 {
		return school.ErrCourseNotFound
	}
	repo.db.courses = append(repo.db.courses[:i:i], repo.db.courses[i+1:]...)
	return nil
}

// Announcements

func (repo *schoolRepository) QueryAnnouncements() ([]school.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.announcements), nil
}

func (repo *schoolRepository) findAnnouncement(id string) int {
	for i, a := range repo.db.announcements {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (repo *schoolRepository) GetAnnouncementByID(id string) (school.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.findAnnouncement(id); i >= 0 {
		return repo.db.announcements[i], nil
	}
	return school.Announcement{}, school.ErrAnnouncementNotFound
}

func (repo *schoolRepository) CreateAnnouncement(a school.Announcement) (school.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	announcements := make([]school.Announcement, 0, len(repo.db.announcements)+1)
	announcements = append(announcements, a)
	repo.db.announcements = append(announcements, repo.db.announcements...)
	return a, nil
}

func (repo *schoolRepository) UpdateAnnouncement(a school.Announcement) (school.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findAnnouncement(a.ID)
	if i < 0 {
		return school.Announcement{}, school.ErrAnnouncementNotFound
	}
	a.Date = repo.db.announcements[i].Date
	repo.db.announcements[i] = a
	return a, nil
}

func (repo *schoolRepository) DeleteAnnouncement(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findAnnouncement(id)
	if i < 0 {
		return school.ErrAnnouncementNotFound
	}
	repo.db.announcements = append(repo.db.announcements[:i:i], repo.db.announcements[i+1:]...)
	return nil
}

// Attendance

func (repo *schoolRepository) QueryAttendance() ([]school.AttendanceRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.attendance), nil
}

func (repo *schoolRepository) UpsertAttendance(rec school.AttendanceRecord) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.findStudent(rec.StudentID) < 0 {
		return false, school.ErrStudentNotFound
	}
	for i, r := range repo.db.attendance {
		if r.SameKey(rec) {
			repo.db.attendance[i] = rec
			return false, nil
		}
	}
	repo.db.attendance = append(repo.db.attendance, rec)
	return true, nil
}

// Exams

func (repo *schoolRepository) QueryExams() ([]school.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.exams), nil
}

func (repo *schoolRepository) findExam(id string) int {
	for i, e := range repo.db.exams {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (repo *schoolRepository) GetExamByID(id string) (school.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.findExam(id); i >= 0 {
		return repo.db.exams[i], nil
	}
	return school.Exam{}, school.ErrExamNotFound
}

func (repo *schoolRepository) CreateExam(e school.Exam) (school.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.exams = append(repo.db.exams, e)
	return e, nil
}

func (repo *schoolRepository) UpdateExam(e school.Exam) (school.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findExam(e.ID)
	if i < 0 {
		return school.Exam{}, school.ErrExamNotFound
	}
	for _, r := range repo.db.examResults {
		if r.ExamID == e.ID && r.MarksObtained > float64(e.TotalMarks) {
			return school.Exam{}, school.ErrMarksAboveTotal
		}
	}
	repo.db.exams[i] = e
	return e, nil
}

func (repo *schoolRepository) DeleteExam(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findExam(id)
	if i < 0 {
		return school.ErrExamNotFound
	}
	repo.db.exams = append(repo.db.exams[:i:i], repo.db.exams[i+1:]...)

	results := make([]school.ExamResult, 0, len(repo.db.examResults))
	for _, r := range repo.db.examResults {
		if r.ExamID != id {
			results = append(results, r)
		}
	}
	repo.db.examResults = results
	return nil
}

func (repo *schoolRepository) QueryExamResults() ([]school.ExamResult, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.examResults), nil
}

func (repo *schoolRepository) CreateExamResult(r school.ExamResult) (school.ExamResult, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findExam(r.ExamID)
	if i < 0 {
		return school.ExamResult{}, school.ErrExamNotFound
	}
	if repo.findStudent(r.StudentID) < 0 {
		return school.ExamResult{}, school.ErrStudentNotFound
	}
	if r.MarksObtained > float64(repo.db.exams[i].TotalMarks) {
		return school.ExamResult{}, school.ErrMarksAboveTotal
	}
	for _, other := range repo.db.examResults {
		if other.ExamID == r.ExamID && other.StudentID == r.StudentID {
			return school.ExamResult{}, school.ErrDuplicateResult
		}
	}
	repo.db.examResults = append(repo.db.examResults, r)
	return r, nil
}

func (repo *schoolRepository) DeleteExamResult(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, r := range repo.db.examResults {
		if r.ID == id {
			repo.db.examResults = append(repo.db.examResults[:i:i], repo.db.examResults[i+1:]...)
			return nil
		}
	}
	return school.ErrExamResultNotFound
}

// Finance

func (repo *schoolRepository) QueryFinanceRecords() ([]school.FinanceRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.financeRecords), nil
}

func (repo *schoolRepository) CreateFinanceRecord(f school.FinanceRecord) (school.FinanceRecord, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if f.StudentID != "" && repo.findStudent(f.StudentID) < 0 {
		return school.FinanceRecord{}, school.ErrStudentNotFound
	}
	repo.db.financeRecords = append(repo.db.financeRecords, f)
	return f, nil
}

func (repo *schoolRepository) DeleteFinanceRecord(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, f := range repo.db.financeRecords {
		if f.ID == id {
			repo.db.financeRecords = append(repo.db.financeRecords[:i:i], repo.db.financeRecords[i+1:]...)
			return nil
		}
	}
	return school.ErrFinanceNotFound
}
