package school

import "github.com/pkg/errors"

// NotFoundError is returned when an update or delete targets an id that is not in the store.
// The store is left unchanged.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " not found"
}

var (
	ErrStudentNotFound      = &NotFoundError{Kind: "student"}
	ErrTeacherNotFound      = &NotFoundError{Kind: "teacher"}
	ErrStaffNotFound        = &NotFoundError{Kind: "staff member"}
	ErrCourseNotFound       = &NotFoundError{Kind: "course"}
	ErrAnnouncementNotFound = &NotFoundError{Kind: "announcement"}
	ErrExamNotFound         = &NotFoundError{Kind: "exam"}
	ErrExamResultNotFound   = &NotFoundError{Kind: "exam result"}
	ErrFinanceNotFound      = &NotFoundError{Kind: "finance record"}
)

// IsNotFound reports whether the root cause of err is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// Errors returned by the store when a write would break a reference between records.
// The store is left unchanged.
var (
	ErrGradeMismatch   = errors.New("student is not in the course's grade")
	ErrEnrolledInGrade = errors.New("student is enrolled in courses of its current grade")
	ErrDuplicateResult = errors.New("student already has a result for this exam")
	ErrMarksAboveTotal = errors.New("marks obtained exceed the exam's total marks")
)
