package inmemdb

import (
	"sync"

	"github.com/trezcool/shule/core/school"
)

// DB holds every collection behind a single lock so that a cascade touching
// several collections is applied in one critical section.
type DB struct {
	sync.RWMutex

	students       []school.Student
	teachers       []school.Teacher
	staff          []school.Staff
	courses        []school.Course
	announcements  []school.Announcement // newest first
	attendance     []school.AttendanceRecord
	exams          []school.Exam
	examResults    []school.ExamResult
	financeRecords []school.FinanceRecord
}

// Open returns an empty DB, or one holding a copy of seed.
func Open(seed ...school.Snapshot) (*DB, error) {
	db := &DB{}
	if len(seed) > 0 {
		db.load(seed[0])
	}
	return db, nil
}

func (db *DB) load(snap school.Snapshot) {
	db.Lock()
	defer db.Unlock()

	db.students = clone(snap.Students)
	db.teachers = clone(snap.Teachers)
	db.staff = clone(snap.Staff)
	db.courses = make([]school.Course, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		db.courses = append(db.courses, copyCourse(c))
	}
	db.announcements = clone(snap.Announcements)
	db.attendance = clone(snap.Attendance)
	db.exams = clone(snap.Exams)
	db.examResults = clone(snap.ExamResults)
	db.financeRecords = clone(snap.FinanceRecords)
}

// copyCourse detaches the reference fields of c from the original.
func copyCourse(c school.Course) school.Course {
	if c.TeacherID != nil {
		id := *c.TeacherID
		c.TeacherID = &id
	}
	if c.StudentIDs == nil {
		c.StudentIDs = []string{}
	} else {
		c.StudentIDs = append([]string{}, c.StudentIDs...)
	}
	if c.Schedule != nil {
		c.Schedule = append([]school.ScheduleSlot(nil), c.Schedule...)
	}
	if c.Textbooks != nil {
		c.Textbooks = append([]string(nil), c.Textbooks...)
	}
	return c
}
