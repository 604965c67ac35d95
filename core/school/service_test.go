package school_test

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	emailsvc "github.com/trezcool/shule/services/email"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
	testutil "github.com/trezcool/shule/tests"
)

var testNow = testutil.Now

func setup(t *testing.T) (*school.Service, *emailsvc.ConsoleServiceMock) {
	conf := testutil.NewConfig()
	db := testutil.OpenDB(t, true)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	t.Cleanup(school.MockNow(testNow))
	return school.NewService(inmemdb.NewSchoolRepository(db), mailSvc, &testutil.Logger{}, conf), mailSvc
}

var testValidate, testTranslator = testutil.NewValidator()

func newValidator() *validator.Validate {
	return testValidate
}

func TestService_AddStudent(t *testing.T) {
	svc, _ := setup(t)

	s := testutil.AddStudent(t, svc, "Auma", "Grace", 2)
	assert.True(t, strings.HasPrefix(s.ID, "s-"), "id %q", s.ID)
	assert.Equal(t, "https://i.pravatar.cc/150?u="+s.ID, s.AvatarURL)

	s2 := testutil.AddStudent(t, svc, "Auma", "Grace", 2)
	assert.NotEqual(t, s.ID, s2.ID)

	students, _ := svc.QueryStudents(school.StudentFilter{}, nil)
	assert.Len(t, students, 7)
	assert.Equal(t, s2.ID, students[6].ID, "appended last")
}

func TestService_ids(t *testing.T) {
	svc, _ := setup(t)
	defer school.MockIDs("t-new", "st-new", "c-new", "e-new", "f-new")()

	teacher, _ := svc.AddTeacher(school.TeacherFields{FirstName: "A", LastName: "B"})
	staff, _ := svc.AddStaff(school.StaffFields{FirstName: "A", LastName: "B"})
	course, _ := svc.AddCourse(school.CourseFields{Name: "S1 Art", GradeLevel: 1})
	exam, _ := svc.AddExam(school.ExamFields{Name: "Mock", TotalMarks: 100})
	record, _ := svc.AddFinanceRecord(school.FinanceRecordFields{Type: school.FinanceIncome, Amount: 10})

	assert.Equal(t, "t-new", teacher.ID)
	assert.Equal(t, "https://i.pravatar.cc/150?u=t-new", teacher.AvatarURL)
	assert.Equal(t, "st-new", staff.ID)
	assert.Equal(t, "c-new", course.ID)
	assert.Equal(t, []string{}, course.StudentIDs)
	assert.Equal(t, "e-new", exam.ID)
	assert.Equal(t, "f-new", record.ID)
}

func TestService_UpdateStudent(t *testing.T) {
	svc, _ := setup(t)

	s, _ := svc.GetStudentByID("s2")
	s.ParentName = "Kato John"
	s.AvatarURL = ""
	updated, err := svc.UpdateStudent(s)
	if err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}
	assert.Equal(t, "Kato John", updated.ParentName)
	assert.Equal(t, svc.AvatarURL("s2"), updated.AvatarURL)

	students, _ := svc.QueryStudents(school.StudentFilter{}, nil)
	assert.Equal(t, "s2", students[1].ID, "updated in place")

	_, err = svc.UpdateStudent(school.Student{ID: "s99"})
	assert.True(t, school.IsNotFound(err))

	t.Run("grade", func(t *testing.T) {
		enrolled, _ := svc.GetStudentByID("s2")
		enrolled.Grade = 3
		_, err := svc.UpdateStudent(enrolled)
		if vErr, ok := err.(*core.ValidationError); assert.True(t, ok, "error = %v", err) {
			assert.Equal(t, map[string]string{"grade": "student is enrolled in courses of the current grade"}, vErr.FieldMap())
		}
		stored, _ := svc.GetStudentByID("s2")
		assert.Equal(t, 2, stored.Grade)

		fresh := testutil.AddStudent(t, svc, "Auma", "Grace", 2)
		fresh.Grade = 3
		updated, err := svc.UpdateStudent(fresh)
		if err != nil {
			t.Fatalf("UpdateStudent() error = %v", err)
		}
		assert.Equal(t, 3, updated.Grade)
	})
}

func TestService_AddAnnouncement(t *testing.T) {
	svc, mailSvc := setup(t)
	defer school.MockIDs("a-new", "a-new2")()
	posted := testNow.Add(time.Hour)
	defer school.MockNow(posted)()

	tests := []struct {
		name       string
		fields     school.AnnouncementFields
		wantID     string
		wantTo     []string
		wantSubj   string
		wantInBody string
	}{
		{
			name: "everyone",
			fields: school.AnnouncementFields{
				Title: "Sports Day", Content: "Friday at the main field", Priority: school.PriorityHigh, TargetAudience: school.AudienceAll,
			},
			wantID: "a-new",
			wantTo: []string{
				"j.ssemakula@school.edu.ug", "f.namugga@school.edu.ug", "d.mukasa@school.edu.ug",
				"s.nakiwala@school.edu.ug", "j.mubiru@school.edu.ug", "r.nalwoga@school.edu.ug",
				"p.ssegawa@school.edu.ug", "a.namusoke@school.edu.ug", "m.kiggundu@school.edu.ug",
			},
			wantSubj:   "[Important] Sports Day",
			wantInBody: "Friday at the main field",
		},
		{
			name: "parents only",
			fields: school.AnnouncementFields{
				Title: "PTA", Content: "Meeting", Priority: school.PriorityLow, TargetAudience: school.AudienceParents,
			},
			wantID: "a-new2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailSvc.Reset()

			a, err := svc.AddAnnouncement(tt.fields)
			if err != nil {
				t.Fatalf("AddAnnouncement() error = %v", err)
			}
			assert.Equal(t, tt.wantID, a.ID)
			assert.True(t, posted.Equal(a.Date))

			announcements, _ := svc.QueryAnnouncements(school.AnnouncementFilter{})
			assert.Equal(t, a, announcements[0], "newest first")

			sent := mailSvc.SentMessages()
			to := make([]string, 0, len(sent))
			for _, msg := range sent {
				to = append(to, msg.To[0].Address)
				assert.Equal(t, tt.wantSubj, msg.Subject)
				assert.Contains(t, msg.TextContent, tt.wantInBody)
			}
			assert.ElementsMatch(t, tt.wantTo, to)
		})
	}
}

func TestService_teachersOnlyAnnouncement(t *testing.T) {
	svc, mailSvc := setup(t)

	_, err := svc.AddAnnouncement(school.AnnouncementFields{
		Title: "Staff meeting", Content: "Monday", Priority: school.PriorityMedium, TargetAudience: school.AudienceTeachers,
	})
	if err != nil {
		t.Fatalf("AddAnnouncement() error = %v", err)
	}
	sent := mailSvc.SentMessages()
	assert.Len(t, sent, 3)
	for _, msg := range sent {
		assert.Equal(t, "Staff meeting", msg.Subject)
		assert.Contains(t, msg.TextContent, "Posted on Monday, March 17, 2025")
	}
}

func TestService_UpdateAnnouncement(t *testing.T) {
	svc, _ := setup(t)

	a, _ := svc.GetAnnouncementByID("a2")
	a.Title = "PTA moved"
	a.Date = time.Time{}
	updated, err := svc.UpdateAnnouncement(a)
	if err != nil {
		t.Fatalf("UpdateAnnouncement() error = %v", err)
	}
	assert.Equal(t, "PTA moved", updated.Title)
	assert.True(t, testNow.AddDate(0, 0, -2).Equal(updated.Date))
}

func TestService_QueryStudents(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name      string
		filter    school.StudentFilter
		orderings []core.Ordering
		want      []string
	}{
		{name: "all", want: []string{"s1", "s2", "s3", "s4", "s5"}},
		{name: "search name", filter: school.StudentFilter{Search: "NAMU"}, want: []string{"s3"}},
		{name: "search id", filter: school.StudentFilter{Search: "s4"}, want: []string{"s4"}},
		{name: "grade", filter: school.StudentFilter{Grade: 2}, want: []string{"s2", "s5"}},
		{name: "gender", filter: school.StudentFilter{Gender: school.GenderMale}, want: []string{"s2", "s4"}},
		{name: "course", filter: school.StudentFilter{CourseID: "c1"}, want: []string{"s1", "s3"}},
		{name: "unknown course", filter: school.StudentFilter{CourseID: "c99"}, want: []string{}},
		{
			name: "grade, -first_name", orderings: []core.Ordering{{Field: "grade", Ascending: true}, {Field: "first_name"}},
			want: []string{"s3", "s1", "s5", "s2", "s4"},
		},
		{name: "unknown ordering", orderings: []core.Ordering{{Field: "lol"}}, want: []string{"s1", "s2", "s3", "s4", "s5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, err := svc.QueryStudents(tt.filter, tt.orderings)
			if err != nil {
				t.Fatalf("QueryStudents() error = %v", err)
			}
			ids := make([]string, 0, len(students))
			for _, s := range students {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestService_QueryCourses(t *testing.T) {
	svc, _ := setup(t)
	_ = svc.DeleteTeacher("t3")

	tests := []struct {
		name   string
		filter school.CourseFilter
		want   []string
	}{
		{name: "all", want: []string{"c1", "c2", "c3"}},
		{name: "search subject", filter: school.CourseFilter{Search: "physics"}, want: []string{"c2"}},
		{name: "teacher", filter: school.CourseFilter{TeacherID: "t1"}, want: []string{"c1"}},
		{name: "student", filter: school.CourseFilter{StudentID: "s5"}, want: []string{"c2"}},
		{name: "unassigned", filter: school.CourseFilter{Unassigned: true}, want: []string{"c3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses, _ := svc.QueryCourses(tt.filter)
			ids := make([]string, 0, len(courses))
			for _, c := range courses {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestService_attendance(t *testing.T) {
	svc, _ := setup(t)
	today := school.FormatDate(testNow)

	rec, created, err := svc.UpsertAttendance(school.AttendanceRecord{StudentID: "s3", Date: today, Status: school.StatusLate})
	if err != nil {
		t.Fatalf("UpsertAttendance() error = %v", err)
	}
	assert.False(t, created)
	assert.Equal(t, school.StatusLate, rec.Status)

	records, _ := svc.QueryAttendance(school.AttendanceFilter{CourseID: "c1", Date: today})
	assert.Equal(t, []school.AttendanceRecord{
		{StudentID: "s1", Date: today, Status: school.StatusPresent},
		{StudentID: "s3", Date: today, Status: school.StatusLate},
	}, records)

	entries, err := svc.DailyAttendance("c2", today)
	if err != nil {
		t.Fatalf("DailyAttendance() error = %v", err)
	}
	assert.Equal(t, []school.DailyAttendanceEntry{
		{StudentID: "s2", StudentName: "Kato Michael", Status: school.StatusPresent},
		{StudentID: "s5", StudentName: "Nalubega Joan", Status: school.StatusPresent},
	}, entries)

	yesterday := school.FormatDate(testNow.AddDate(0, 0, -1))
	entries, _ = svc.DailyAttendance("c2", yesterday)
	assert.Equal(t, school.StatusLate, entries[0].Status)
	assert.True(t, entries[0].Recorded)

	_, err = svc.DailyAttendance("c99", today)
	assert.True(t, school.IsNotFound(err))

	records, _ = svc.QueryAttendance(school.AttendanceFilter{DateFrom: yesterday, DateTo: yesterday, Status: school.StatusAbsent})
	assert.Equal(t, []school.AttendanceRecord{{StudentID: "s3", Date: yesterday, Status: school.StatusAbsent}}, records)
}

func TestService_AddExamResult(t *testing.T) {
	svc, _ := setup(t)
	defer school.MockIDs("r-new", "r-new2")()

	r, err := svc.AddExamResult("e3", school.ExamResultFields{StudentID: "s4", MarksObtained: 60})
	if err != nil {
		t.Fatalf("AddExamResult() error = %v", err)
	}
	assert.Equal(t, "r-new", r.ID)
	assert.Equal(t, "e3", r.ExamID)
	assert.Equal(t, "B", r.Grade, "60/80 is 75%")

	r, _ = svc.AddExamResult("e3", school.ExamResultFields{StudentID: "s5", MarksObtained: 10, Grade: "A"})
	assert.Equal(t, "A", r.Grade, "explicit grade is kept")

	_, err = svc.AddExamResult("e99", school.ExamResultFields{StudentID: "s4"})
	assert.Equal(t, school.ErrExamNotFound, err)

	details, _ := svc.ExamResultDetails(school.ExamResultFilter{ExamID: "e3"})
	if assert.Len(t, details, 2) {
		assert.Equal(t, "Physics Practical Exam", details[0].ExamName)
		assert.Equal(t, "Sserwadda Brian", details[0].StudentName)
		assert.Equal(t, 75.0, details[0].Percentage)
		assert.True(t, details[0].Passed)
		assert.False(t, details[1].Passed)
	}
}

func TestService_malformedDates(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name string
		call func() error
		want map[string]string
	}{
		{
			name: "daily attendance",
			call: func() error { _, err := svc.DailyAttendance("c1", "17/03/2025"); return err },
			want: map[string]string{"date": "date must be formatted as YYYY-MM-DD"},
		},
		{
			name: "stats",
			call: func() error { _, err := svc.Stats("not-a-date"); return err },
			want: map[string]string{"date": "date must be formatted as YYYY-MM-DD"},
		},
		{
			name: "attendance filter",
			call: func() error {
				_, err := svc.QueryAttendance(school.AttendanceFilter{Date: "2025-02-30", DateFrom: "2025-03-01"})
				return err
			},
			want: map[string]string{"date": "date must be formatted as YYYY-MM-DD"},
		},
		{
			name: "announcement filter",
			call: func() error { _, err := svc.QueryAnnouncements(school.AnnouncementFilter{DateTo: "tomorrow"}); return err },
			want: map[string]string{"date_to": "date_to must be formatted as YYYY-MM-DD"},
		},
		{
			name: "finance summary",
			call: func() error {
				_, err := svc.FinanceSummary(school.FinanceFilter{DateFrom: "2025/01/01", DateTo: "2025-01-31"})
				return err
			},
			want: map[string]string{"date_from": "date_from must be formatted as YYYY-MM-DD"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldErrors(t, tt.call()))
		})
	}
}

// The store re-checks references at write time, so a record validated before a
// concurrent delete is still refused.
func TestService_deletedReferences(t *testing.T) {
	validate := newValidator()

	t.Run("attendance", func(t *testing.T) {
		svc, _ := setup(t)
		rec := school.AttendanceRecord{StudentID: "s2", Date: "2025-03-17", Status: school.StatusAbsent}
		if err := rec.Validate(validate, svc); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		_ = svc.DeleteStudent("s2")

		_, created, err := svc.UpsertAttendance(rec)
		assert.False(t, created)
		assert.Equal(t, map[string]string{"student_id": "student not found"}, fieldErrors(t, err))
		records, _ := svc.QueryAttendance(school.AttendanceFilter{StudentID: "s2"})
		assert.Empty(t, records)
	})

	t.Run("course", func(t *testing.T) {
		svc, _ := setup(t)
		teacherID := "t1"
		cf := school.CourseFields{Name: "S1 Biology", Subject: "Biology", GradeLevel: 1, TeacherID: &teacherID, StudentIDs: []string{"s1", "s3"}}
		if err := cf.Validate(validate, svc); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		_ = svc.DeleteStudent("s1")

		_, err := svc.AddCourse(cf)
		assert.Equal(t, map[string]string{"student_ids": "student not found"}, fieldErrors(t, err))

		_ = svc.DeleteTeacher("t1")
		cf.StudentIDs = []string{"s3"}
		_, err = svc.AddCourse(cf)
		assert.Equal(t, map[string]string{"teacher_id": "teacher not found"}, fieldErrors(t, err))

		courses, _ := svc.QueryCourses(school.CourseFilter{})
		assert.Len(t, courses, 3)
	})

	t.Run("course grade", func(t *testing.T) {
		svc, _ := setup(t)
		c1, _ := svc.GetCourseByID("c1")
		c1.StudentIDs = append(c1.StudentIDs, "s2")

		_, err := svc.UpdateCourse(c1)
		assert.Equal(t, map[string]string{"student_ids": "every student must be in grade 1"}, fieldErrors(t, err))
		stored, _ := svc.GetCourseByID("c1")
		assert.Equal(t, []string{"s1", "s3"}, stored.StudentIDs)

		_, err = svc.UpdateCourse(school.Course{ID: "c99"})
		assert.Equal(t, school.ErrCourseNotFound, err)
	})

	t.Run("exam result", func(t *testing.T) {
		svc, _ := setup(t)
		e1, _ := svc.GetExamByID("e1")
		rf := school.ExamResultFields{StudentID: "s5", MarksObtained: 70}
		if err := rf.Validate(validate, svc, e1); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		_ = svc.DeleteStudent("s5")

		_, err := svc.AddExamResult("e1", rf)
		assert.Equal(t, map[string]string{"student_id": "student not found"}, fieldErrors(t, err))

		_, err = svc.AddExamResult("e1", school.ExamResultFields{StudentID: "s1", MarksObtained: 70})
		assert.Equal(t, map[string]string{"student_id": "this student already has a result for this exam"}, fieldErrors(t, err))
	})

	t.Run("finance record", func(t *testing.T) {
		svc, _ := setup(t)
		_ = svc.DeleteStudent("s2")
		_, err := svc.AddFinanceRecord(school.FinanceRecordFields{Type: school.FinanceIncome, Amount: 10, StudentID: "s2"})
		assert.Equal(t, map[string]string{"student_id": "student not found"}, fieldErrors(t, err))
	})
}

func TestService_UpdateExam(t *testing.T) {
	svc, _ := setup(t)
	e1, _ := svc.GetExamByID("e1")

	e1.TotalMarks = 80
	_, err := svc.UpdateExam(e1)
	assert.Equal(t, map[string]string{"total_marks": "total marks cannot be below marks already recorded"}, fieldErrors(t, err))
	stored, _ := svc.GetExamByID("e1")
	assert.Equal(t, 100, stored.TotalMarks)

	e1.TotalMarks = 90
	updated, err := svc.UpdateExam(e1)
	if err != nil {
		t.Fatalf("UpdateExam() error = %v", err)
	}
	assert.Equal(t, 90, updated.TotalMarks)

	e3, _ := svc.GetExamByID("e3")
	e3.TotalMarks = 20
	_, err = svc.UpdateExam(e3)
	assert.NoError(t, err, "no results recorded yet")
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		marks float64
		total int
		want  string
	}{
		{marks: 90, total: 100, want: "A"},
		{marks: 89.9, total: 100, want: "B+"},
		{marks: 56, total: 80, want: "B"},
		{marks: 60, total: 100, want: "C+"},
		{marks: 50, total: 100, want: "C"},
		{marks: 40, total: 100, want: "D"},
		{marks: 39, total: 100, want: "F"},
		{marks: 10, total: 0, want: "F"},
	}
	for _, tt := range tests {
		if got := school.GradeFor(tt.marks, tt.total); got != tt.want {
			t.Errorf("GradeFor(%v, %v) = %v, want %v", tt.marks, tt.total, got, tt.want)
		}
	}
}

func TestService_deleteCascades(t *testing.T) {
	svc, _ := setup(t)

	if err := svc.DeleteStudent("s2"); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}
	c2, _ := svc.GetCourseByID("c2")
	assert.Equal(t, []string{"s5"}, c2.StudentIDs)
	records, _ := svc.QueryAttendance(school.AttendanceFilter{StudentID: "s2"})
	assert.Empty(t, records)
	results, _ := svc.QueryExamResults(school.ExamResultFilter{StudentID: "s2"})
	assert.Empty(t, results)

	if err := svc.DeleteExam("e2"); err != nil {
		t.Fatalf("DeleteExam() error = %v", err)
	}
	results, _ = svc.QueryExamResults(school.ExamResultFilter{ExamID: "e2"})
	assert.Empty(t, results)

	assert.Equal(t, school.ErrStaffNotFound, svc.DeleteStaff("st99"))
}
