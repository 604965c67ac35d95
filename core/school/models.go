package school

import "time"

type (
	Gender           string
	EmploymentType   string
	Department       string
	Shift            string
	Priority         string
	Audience         string
	AttendanceStatus string
	FinanceType      string
	PaymentMethod    string
)

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"

	EmploymentFullTime  EmploymentType = "Full-time"
	EmploymentPartTime  EmploymentType = "Part-time"
	EmploymentContract  EmploymentType = "Contract"
	EmploymentVolunteer EmploymentType = "Volunteer" // teachers only

	DepartmentKitchen        Department = "Kitchen"
	DepartmentSecurity       Department = "Security"
	DepartmentLibrary        Department = "Library"
	DepartmentMaintenance    Department = "Maintenance"
	DepartmentAdministration Department = "Administration"
	DepartmentCleaning       Department = "Cleaning"
	DepartmentTransport      Department = "Transport"
	DepartmentHealth         Department = "Health"

	ShiftDay   Shift = "Day"
	ShiftNight Shift = "Night"
	ShiftBoth  Shift = "Both"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	AudienceAll      Audience = "all"
	AudienceStudents Audience = "students"
	AudienceTeachers Audience = "teachers"
	AudienceParents  Audience = "parents"

	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"

	FinanceIncome  FinanceType = "income"
	FinanceExpense FinanceType = "expense"

	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentCheque       PaymentMethod = "cheque"

	// MinGrade and MaxGrade bound secondary school levels S1 to S6.
	MinGrade = 1
	MaxGrade = 6
)

var Departments = []Department{
	DepartmentKitchen,
	DepartmentSecurity,
	DepartmentLibrary,
	DepartmentMaintenance,
	DepartmentAdministration,
	DepartmentCleaning,
	DepartmentTransport,
	DepartmentHealth,
}

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// Includes reports whether members of `target` should receive an announcement for this audience.
func (a Audience) Includes(target Audience) bool {
	return a == AudienceAll || a == target
}

type SchoolFees struct {
	Tuition   int64 `json:"tuition"`
	Transport int64 `json:"transport,omitempty"`
	Boarding  int64 `json:"boarding,omitempty"`
	TotalPaid int64 `json:"total_paid"`
	Balance   int64 `json:"balance"` // stored as entered, never derived
}

// Due is the total amount billed.
func (f SchoolFees) Due() int64 {
	return f.Tuition + f.Transport + f.Boarding
}

// ExpectedBalance is what Balance should be given the billed and paid amounts.
func (f SchoolFees) ExpectedBalance() int64 {
	return f.Due() - f.TotalPaid
}

type (
	// StudentFields holds every Student attribute the caller controls.
	StudentFields struct {
		FirstName         string     `json:"first_name" validate:"required,personname"`
		LastName          string     `json:"last_name" validate:"required,personname"`
		DateOfBirth       string     `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
		Grade             int        `json:"grade" validate:"min=1,max=6"`
		EmergencyContact  string     `json:"emergency_contact" validate:"required"`
		Gender            Gender     `json:"gender" validate:"required,oneof=male female"`
		Address           string     `json:"address" validate:"required"`
		ParentName        string     `json:"parent_name" validate:"required,personname"`
		ParentPhone       string     `json:"parent_phone" validate:"required,ugphone"`
		AdmissionDate     string     `json:"admission_date" validate:"required,datetime=2006-01-02"`
		BloodGroup        string     `json:"blood_group,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
		MedicalConditions string     `json:"medical_conditions,omitempty"`
		SchoolFees        SchoolFees `json:"school_fees"`
	}

	Student struct {
		ID        string `json:"id"`
		AvatarURL string `json:"avatar_url"`
		StudentFields
	}
)

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type (
	TeacherFields struct {
		FirstName        string         `json:"first_name" validate:"required,personname"`
		LastName         string         `json:"last_name" validate:"required,personname"`
		Subject          string         `json:"subject" validate:"required"`
		Email            string         `json:"email" validate:"required,email"`
		Phone            string         `json:"phone" validate:"required,ugphone"`
		Gender           Gender         `json:"gender" validate:"required,oneof=male female"`
		DateOfBirth      string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
		HireDate         string         `json:"hire_date" validate:"required,datetime=2006-01-02"`
		Qualification    string         `json:"qualification" validate:"required"`
		Experience       int            `json:"experience" validate:"min=0,max=60"`
		Salary           int64          `json:"salary" validate:"min=0"`
		Address          string         `json:"address" validate:"required"`
		EmergencyContact string         `json:"emergency_contact" validate:"required"`
		NationalID       string         `json:"national_id" validate:"required,nationalid"`
		EmploymentType   EmploymentType `json:"employment_type" validate:"required,oneof=Full-time Part-time Contract Volunteer"`
		DateOfJoining    string         `json:"date_of_joining" validate:"required,datetime=2006-01-02"`
	}

	Teacher struct {
		ID        string `json:"id"`
		AvatarURL string `json:"avatar_url"`
		TeacherFields
	}
)

func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

type (
	StaffFields struct {
		FirstName        string         `json:"first_name" validate:"required,personname"`
		LastName         string         `json:"last_name" validate:"required,personname"`
		Department       Department     `json:"department" validate:"required,oneof=Kitchen Security Library Maintenance Administration Cleaning Transport Health"`
		Position         string         `json:"position" validate:"required"`
		Email            string         `json:"email" validate:"required,email"`
		Phone            string         `json:"phone" validate:"required,ugphone"`
		Gender           Gender         `json:"gender" validate:"required,oneof=male female"`
		DateOfBirth      string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
		HireDate         string         `json:"hire_date" validate:"required,datetime=2006-01-02"`
		Salary           int64          `json:"salary" validate:"min=0"`
		Address          string         `json:"address" validate:"required"`
		EmergencyContact string         `json:"emergency_contact" validate:"required"`
		NationalID       string         `json:"national_id" validate:"required,nationalid"`
		EmploymentType   EmploymentType `json:"employment_type" validate:"required,oneof=Full-time Part-time Contract"`
		Shift            Shift          `json:"shift,omitempty" validate:"omitempty,oneof=Day Night Both"`
		Supervisor       string         `json:"supervisor,omitempty"`
	}

	Staff struct {
		ID        string `json:"id"`
		AvatarURL string `json:"avatar_url"`
		StaffFields
	}
)

func (s Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

type (
	ScheduleSlot struct {
		Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
		StartTime string `json:"start_time" validate:"required,datetime=15:04"`
		EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
		Classroom string `json:"classroom" validate:"required"`
	}

	CourseFields struct {
		Name       string         `json:"name" validate:"required"`
		TeacherID  *string        `json:"teacher_id"` // nil when unassigned
		StudentIDs []string       `json:"student_ids"`
		GradeLevel int            `json:"grade_level" validate:"min=1,max=6"`
		Subject    string         `json:"subject" validate:"required"`
		Schedule   []ScheduleSlot `json:"schedule" validate:"dive"`
		Syllabus   string         `json:"syllabus,omitempty"`
		Textbooks  []string       `json:"textbooks,omitempty"`
	}

	Course struct {
		ID string `json:"id"`
		CourseFields
	}
)

// HasStudent reports whether the student is enrolled in the course.
func (c Course) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// IsTaughtBy reports whether the teacher is assigned to the course.
func (c Course) IsTaughtBy(teacherID string) bool {
	return c.TeacherID != nil && *c.TeacherID == teacherID
}

type (
	AnnouncementFields struct {
		Title          string   `json:"title" validate:"required"`
		Content        string   `json:"content" validate:"required"`
		Priority       Priority `json:"priority" validate:"required,oneof=low medium high"`
		TargetAudience Audience `json:"target_audience" validate:"required,oneof=all students teachers parents"`
	}

	Announcement struct {
		ID   string    `json:"id"`
		Date time.Time `json:"date"` // UTC, set at creation
		AnnouncementFields
	}
)

// AttendanceRecord is keyed by (StudentID, Date): there is at most one status per student per day.
type AttendanceRecord struct {
	StudentID string           `json:"student_id" validate:"required"`
	Date      string           `json:"date" validate:"required,datetime=2006-01-02"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present absent late"`
}

// SameKey reports whether both records are for the same student and day.
func (r AttendanceRecord) SameKey(other AttendanceRecord) bool {
	return r.StudentID == other.StudentID && r.Date == other.Date
}

type (
	ExamFields struct {
		Name         string `json:"name" validate:"required"`
		Subject      string `json:"subject" validate:"required"`
		GradeLevel   int    `json:"grade_level" validate:"min=1,max=6"`
		Date         string `json:"date" validate:"required,datetime=2006-01-02"`
		Duration     int    `json:"duration" validate:"min=1"` // minutes
		TotalMarks   int    `json:"total_marks" validate:"min=1"`
		PassingMarks int    `json:"passing_marks" validate:"min=0"`
		Venue        string `json:"venue" validate:"required"`
		Instructions string `json:"instructions,omitempty"`
	}

	Exam struct {
		ID string `json:"id"`
		ExamFields
	}

	ExamResultFields struct {
		StudentID     string  `json:"student_id" validate:"required"`
		MarksObtained float64 `json:"marks_obtained" validate:"min=0"`
		Grade         string  `json:"grade,omitempty" validate:"omitempty,oneof=A B+ B C+ C D F"`
		Remarks       string  `json:"remarks,omitempty"`
	}

	ExamResult struct {
		ID     string `json:"id"`
		ExamID string `json:"exam_id"`
		ExamResultFields
	}
)

type (
	FinanceRecordFields struct {
		Type          FinanceType   `json:"type" validate:"required,oneof=income expense"`
		Category      string        `json:"category" validate:"required"`
		Description   string        `json:"description" validate:"required"`
		Amount        int64         `json:"amount" validate:"min=1"`
		Date          string        `json:"date" validate:"required,datetime=2006-01-02"`
		PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=cash bank_transfer mobile_money cheque"`
		Reference     string        `json:"reference,omitempty"`
		StudentID     string        `json:"student_id,omitempty"`
	}

	FinanceRecord struct {
		ID string `json:"id"`
		FinanceRecordFields
	}
)

// Snapshot is a copy of every collection at one instant.
type Snapshot struct {
	Students       []Student          `json:"students"`
	Teachers       []Teacher          `json:"teachers"`
	Staff          []Staff            `json:"staff"`
	Courses        []Course           `json:"courses"`
	Announcements  []Announcement     `json:"announcements"`
	Attendance     []AttendanceRecord `json:"attendance"`
	Exams          []Exam             `json:"exams"`
	ExamResults    []ExamResult       `json:"exam_results"`
	FinanceRecords []FinanceRecord    `json:"finance_records"`
}
