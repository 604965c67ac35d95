package school

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// Advisory checks run before input reaches the store. The store checks references again
// under its lock and the service reports what it refuses with the same messages.

var (
	errTeacherNotFoundText   = "teacher not found"
	errStudentNotFoundText   = "student not found"
	errStudentGradeText      = "student %s is not in grade %d"
	errEndBeforeStartText    = "end time must be after start time"
	errMarksAboveTotalText   = "marks obtained cannot exceed the total marks (%d)"
	errDuplicateResultText   = "this student already has a result for this exam"
	errPassingAboveTotalText = "passing marks cannot exceed the total marks"
	errDateFormatText        = "%s must be formatted as YYYY-MM-DD"
	errStudentsGradeText     = "every student must be in grade %d"
	errEnrolledInGradeText   = "student is enrolled in courses of the current grade"
	errTotalBelowMarksText   = "total marks cannot be below marks already recorded"
)

func (sf *StudentFields) Validate(validate *validator.Validate) error {
	sf.FirstName = core.CleanString(sf.FirstName)
	sf.LastName = core.CleanString(sf.LastName)
	sf.ParentName = core.CleanString(sf.ParentName)
	sf.ParentPhone = core.CleanString(sf.ParentPhone)
	sf.Gender = Gender(core.CleanString(string(sf.Gender), true /* lower */))
	return validate.Struct(sf)
}

func (tf *TeacherFields) Validate(validate *validator.Validate) error {
	tf.FirstName = core.CleanString(tf.FirstName)
	tf.LastName = core.CleanString(tf.LastName)
	tf.Email = core.CleanString(tf.Email, true /* lower */)
	tf.Phone = core.CleanString(tf.Phone)
	tf.NationalID = core.CleanString(tf.NationalID)
	tf.Gender = Gender(core.CleanString(string(tf.Gender), true /* lower */))
	return validate.Struct(tf)
}

func (sf *StaffFields) Validate(validate *validator.Validate) error {
	sf.FirstName = core.CleanString(sf.FirstName)
	sf.LastName = core.CleanString(sf.LastName)
	sf.Email = core.CleanString(sf.Email, true /* lower */)
	sf.Phone = core.CleanString(sf.Phone)
	sf.NationalID = core.CleanString(sf.NationalID)
	sf.Gender = Gender(core.CleanString(string(sf.Gender), true /* lower */))
	return validate.Struct(sf)
}

// Validate also checks that the teacher and students exist and that every student is in the course's grade.
// Duplicate student ids are dropped and a nil list becomes empty.
func (cf *CourseFields) Validate(validate *validator.Validate, svc *Service) error {
	cf.Name = core.CleanString(cf.Name)
	cf.Subject = core.CleanString(cf.Subject)
	if cf.TeacherID != nil {
		if id := core.CleanString(*cf.TeacherID); id == "" {
			cf.TeacherID = nil
		} else {
			cf.TeacherID = &id
		}
	}
	cf.StudentIDs = uniqueIDs(cf.StudentIDs)

	if err := validate.Struct(cf); err != nil {
		return err
	}

	var fldErrs []core.FieldError
	for i, slot := range cf.Schedule {
		if slot.EndTime <= slot.StartTime {
			fldErrs = append(fldErrs, core.FieldError{Field: fmt.Sprintf("schedule[%d].end_time", i), Error: errEndBeforeStartText})
		}
	}
	if cf.TeacherID != nil {
		if _, err := svc.GetTeacherByID(*cf.TeacherID); err != nil {
			if !IsNotFound(err) {
				return errors.Wrap(err, "getting teacher")
			}
			fldErrs = append(fldErrs, core.FieldError{Field: "teacher_id", Error: errTeacherNotFoundText})
		}
	}
	for _, sid := range cf.StudentIDs {
		s, err := svc.GetStudentByID(sid)
		if err != nil {
			if !IsNotFound(err) {
				return errors.Wrap(err, "getting student")
			}
			fldErrs = append(fldErrs, core.FieldError{Field: "student_ids", Error: errStudentNotFoundText + ": " + sid})
			break
		}
		if s.Grade != cf.GradeLevel {
			fldErrs = append(fldErrs, core.FieldError{Field: "student_ids", Error: fmt.Sprintf(errStudentGradeText, sid, cf.GradeLevel)})
			break
		}
	}
	if fldErrs != nil {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}

func (af *AnnouncementFields) Validate(validate *validator.Validate) error {
	af.Title = core.CleanString(af.Title)
	af.Content = core.CleanString(af.Content)
	af.Priority = Priority(core.CleanString(string(af.Priority), true /* lower */))
	af.TargetAudience = Audience(core.CleanString(string(af.TargetAudience), true /* lower */))
	return validate.Struct(af)
}

func (r *AttendanceRecord) Validate(validate *validator.Validate, svc *Service) error {
	r.StudentID = core.CleanString(r.StudentID)
	r.Date = core.CleanString(r.Date)
	r.Status = AttendanceStatus(core.CleanString(string(r.Status), true /* lower */))
	if err := validate.Struct(r); err != nil {
		return err
	}
	return studentMustExist(svc, "student_id", r.StudentID)
}

func (ef *ExamFields) Validate(validate *validator.Validate) error {
	ef.Name = core.CleanString(ef.Name)
	ef.Subject = core.CleanString(ef.Subject)
	ef.Venue = core.CleanString(ef.Venue)
	if err := validate.Struct(ef); err != nil {
		return err
	}
	if ef.PassingMarks > ef.TotalMarks {
		return core.NewFieldError("passing_marks", errPassingAboveTotalText)
	}
	return nil
}

// Validate checks the result against its exam: the student must exist, have no result yet
// and the marks must fit the exam's total.
func (rf *ExamResultFields) Validate(validate *validator.Validate, svc *Service, exam Exam) error {
	rf.StudentID = core.CleanString(rf.StudentID)
	rf.Grade = core.CleanString(rf.Grade)
	if err := validate.Struct(rf); err != nil {
		return err
	}
	if rf.MarksObtained > float64(exam.TotalMarks) {
		return core.NewFieldError("marks_obtained", fmt.Sprintf(errMarksAboveTotalText, exam.TotalMarks))
	}
	if err := studentMustExist(svc, "student_id", rf.StudentID); err != nil {
		return err
	}
	results, err := svc.QueryExamResults(ExamResultFilter{ExamID: exam.ID, StudentID: rf.StudentID})
	if err != nil {
		return err
	}
	if len(results) > 0 {
		return core.NewFieldError("student_id", errDuplicateResultText)
	}
	return nil
}

func (ff *FinanceRecordFields) Validate(validate *validator.Validate, svc *Service) error {
	ff.Type = FinanceType(core.CleanString(string(ff.Type), true /* lower */))
	ff.Category = core.CleanString(ff.Category)
	ff.Description = core.CleanString(ff.Description)
	ff.Reference = core.CleanString(ff.Reference)
	ff.StudentID = core.CleanString(ff.StudentID)
	if err := validate.Struct(ff); err != nil {
		return err
	}
	if ff.StudentID == "" {
		return nil
	}
	return studentMustExist(svc, "student_id", ff.StudentID)
}

func studentMustExist(svc *Service, field, id string) error {
	if _, err := svc.GetStudentByID(id); err != nil {
		if IsNotFound(err) {
			return core.NewFieldError(field, errStudentNotFoundText)
		}
		return errors.Wrap(err, "getting student")
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = core.CleanString(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}

type dateField struct {
	name, value string
}

// checkDates rejects non-empty values that are not YYYY-MM-DD dates.
func checkDates(flds ...dateField) error {
	var fldErrs []core.FieldError
	for _, f := range flds {
		if f.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, f.value); err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: f.name, Error: fmt.Sprintf(errDateFormatText, f.name)})
		}
	}
	if fldErrs != nil {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}
