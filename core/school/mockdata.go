package school

import "time"

const mockAvatarBaseURL = "https://i.pravatar.cc/150"

// InitialData returns the mock dataset the store is seeded with.
// Announcement dates and attendance days are relative to now.
func InitialData(now time.Time) Snapshot {
	now = now.UTC()
	today := FormatDate(now)
	yesterday := FormatDate(now.AddDate(0, 0, -1))
	avatar := func(id string) string { return mockAvatarBaseURL + "?u=" + id }

	students := []Student{
		{ID: "s1", AvatarURL: avatar("s1"), StudentFields: StudentFields{
			FirstName: "Nakato", LastName: "Grace", DateOfBirth: "2008-05-15", Grade: 1,
			EmergencyContact: "Namugga Faith - 0775-123-456", Gender: GenderFemale, Address: "Kampala, Uganda",
			ParentName: "Namugga Faith", ParentPhone: "0775-123-456", AdmissionDate: "2024-01-15",
			SchoolFees: SchoolFees{Tuition: 450000, Transport: 50000, TotalPaid: 400000, Balance: 100000},
		}},
		{ID: "s2", AvatarURL: avatar("s2"), StudentFields: StudentFields{
			FirstName: "Kato", LastName: "Michael", DateOfBirth: "2007-08-22", Grade: 2,
			EmergencyContact: "Ssemakula John - 0756-567-890", Gender: GenderMale, Address: "Entebbe, Uganda",
			ParentName: "Ssemakula John", ParentPhone: "0756-567-890", AdmissionDate: "2023-01-15",
			SchoolFees: SchoolFees{Tuition: 450000, Transport: 50000, Boarding: 300000, TotalPaid: 800000},
		}},
		{ID: "s3", AvatarURL: avatar("s3"), StudentFields: StudentFields{
			FirstName: "Namugga", LastName: "Sarah", DateOfBirth: "2008-02-10", Grade: 1,
			EmergencyContact: "Mukasa David - 0701-876-543", Gender: GenderFemale, Address: "Jinja, Uganda",
			ParentName: "Mukasa David", ParentPhone: "0701-876-543", AdmissionDate: "2024-01-15",
			SchoolFees: SchoolFees{Tuition: 450000, TotalPaid: 450000},
		}},
		{ID: "s4", AvatarURL: avatar("s4"), StudentFields: StudentFields{
			FirstName: "Sserwadda", LastName: "Brian", DateOfBirth: "2006-11-30", Grade: 3,
			EmergencyContact: "Nakalembe Rose - 0773-432-109", Gender: GenderMale, Address: "Mbarara, Uganda",
			ParentName: "Nakalembe Rose", ParentPhone: "0773-432-109", AdmissionDate: "2022-01-15",
			SchoolFees: SchoolFees{Tuition: 550000, Transport: 75000, TotalPaid: 300000, Balance: 325000},
		}},
		{ID: "s5", AvatarURL: avatar("s5"), StudentFields: StudentFields{
			FirstName: "Nalubega", LastName: "Joan", DateOfBirth: "2007-09-05", Grade: 2,
			EmergencyContact: "Kiiza Paul - 0782-999-876", Gender: GenderFemale, Address: "Masaka, Uganda",
			ParentName: "Kiiza Paul", ParentPhone: "0782-999-876", AdmissionDate: "2023-01-15",
			SchoolFees: SchoolFees{Tuition: 450000, Boarding: 300000, TotalPaid: 750000},
		}},
	}

	teachers := []Teacher{
		{ID: "t1", AvatarURL: avatar("t1"), TeacherFields: TeacherFields{
			FirstName: "Ssemakula", LastName: "John", Subject: "Mathematics", Email: "j.ssemakula@school.edu.ug",
			Phone: "0774-111-222", Gender: GenderMale, DateOfBirth: "1985-03-15", HireDate: "2015-01-10",
			Qualification: "Bachelor of Education", Experience: 10, Salary: 1200000, Address: "Kampala, Uganda",
			EmergencyContact: "0774-111-223", NationalID: "CM85001234567PE", EmploymentType: EmploymentFullTime,
			DateOfJoining: "2015-01-10",
		}},
		{ID: "t2", AvatarURL: avatar("t2"), TeacherFields: TeacherFields{
			FirstName: "Namugga", LastName: "Faith", Subject: "Physics", Email: "f.namugga@school.edu.ug",
			Phone: "0756-333-444", Gender: GenderFemale, DateOfBirth: "1988-07-22", HireDate: "2018-08-15",
			Qualification: "Bachelor of Science in Education", Experience: 7, Salary: 1100000, Address: "Entebbe, Uganda",
			EmergencyContact: "0756-333-445", NationalID: "CF88001234567PE", EmploymentType: EmploymentFullTime,
			DateOfJoining: "2018-08-15",
		}},
		{ID: "t3", AvatarURL: avatar("t3"), TeacherFields: TeacherFields{
			FirstName: "Mukasa", LastName: "David", Subject: "History", Email: "d.mukasa@school.edu.ug",
			Phone: "0701-555-666", Gender: GenderMale, DateOfBirth: "1982-11-08", HireDate: "2012-02-20",
			Qualification: "Master of Education", Experience: 13, Salary: 1400000, Address: "Jinja, Uganda",
			EmergencyContact: "0701-555-667", NationalID: "CM82001234567PE", EmploymentType: EmploymentFullTime,
			DateOfJoining: "2012-02-20",
		}},
	}

	staff := []Staff{
		{ID: "st1", AvatarURL: avatar("st1"), StaffFields: StaffFields{
			FirstName: "Nakiwala", LastName: "Sarah", Department: DepartmentKitchen, Position: "Head Cook",
			Email: "s.nakiwala@school.edu.ug", Phone: "0772-123-456", Gender: GenderFemale,
			DateOfBirth: "1980-04-12", HireDate: "2020-01-15", Salary: 700000, Address: "Kawempe, Kampala",
			EmergencyContact: "0772-123-457", NationalID: "CF80001234567PE", EmploymentType: EmploymentFullTime,
			Shift: ShiftDay, Supervisor: "Administration Manager",
		}},
		{ID: "st2", AvatarURL: avatar("st2"), StaffFields: StaffFields{
			FirstName: "Mubiru", LastName: "James", Department: DepartmentSecurity, Position: "Security Guard",
			Email: "j.mubiru@school.edu.ug", Phone: "0756-789-012", Gender: GenderMale,
			DateOfBirth: "1975-09-20", HireDate: "2019-06-01", Salary: 600000, Address: "Nansana, Kampala",
			EmergencyContact: "0756-789-013", NationalID: "CM75001234567PE", EmploymentType: EmploymentFullTime,
			Shift: ShiftNight, Supervisor: "Security Supervisor",
		}},
		{ID: "st3", AvatarURL: avatar("st3"), StaffFields: StaffFields{
			FirstName: "Nalwoga", LastName: "Ruth", Department: DepartmentLibrary, Position: "Librarian",
			Email: "r.nalwoga@school.edu.ug", Phone: "0701-345-678", Gender: GenderFemale,
			DateOfBirth: "1985-12-08", HireDate: "2021-03-10", Salary: 900000, Address: "Mukono, Uganda",
			EmergencyContact: "0701-345-679", NationalID: "CF85001234567PE", EmploymentType: EmploymentFullTime,
			Shift: ShiftDay,
		}},
		{ID: "st4", AvatarURL: avatar("st4"), StaffFields: StaffFields{
			FirstName: "Ssegawa", LastName: "Patrick", Department: DepartmentMaintenance, Position: "Maintenance Technician",
			Email: "p.ssegawa@school.edu.ug", Phone: "0774-901-234", Gender: GenderMale,
			DateOfBirth: "1978-06-15", HireDate: "2018-09-20", Salary: 750000, Address: "Masaka, Uganda",
			EmergencyContact: "0774-901-235", NationalID: "CM78001234567PE", EmploymentType: EmploymentFullTime,
			Shift: ShiftDay, Supervisor: "Facilities Manager",
		}},
		{ID: "st5", AvatarURL: avatar("st5"), StaffFields: StaffFields{
			FirstName: "Namusoke", LastName: "Agnes", Department: DepartmentCleaning, Position: "Cleaner",
			Email: "a.namusoke@school.edu.ug", Phone: "0756-567-890", Gender: GenderFemale,
			DateOfBirth: "1983-02-28", HireDate: "2022-01-05", Salary: 500000, Address: "Ntinda, Kampala",
			EmergencyContact: "0756-567-891", NationalID: "CF83001234567PE", EmploymentType: EmploymentPartTime,
			Shift: ShiftDay,
		}},
		{ID: "st6", AvatarURL: avatar("st6"), StaffFields: StaffFields{
			FirstName: "Kiggundu", LastName: "Moses", Department: DepartmentTransport, Position: "School Bus Driver",
			Email: "m.kiggundu@school.edu.ug", Phone: "0772-234-567", Gender: GenderMale,
			DateOfBirth: "1970-11-03", HireDate: "2017-04-12", Salary: 800000, Address: "Mpigi, Uganda",
			EmergencyContact: "0772-234-568", NationalID: "CM70001234567PE", EmploymentType: EmploymentFullTime,
			Shift: ShiftDay, Supervisor: "Transport Coordinator",
		}},
	}

	t1, t2, t3 := "t1", "t2", "t3"
	courses := []Course{
		{ID: "c1", CourseFields: CourseFields{
			Name: "S1 Mathematics", TeacherID: &t1, StudentIDs: []string{"s1", "s3"}, GradeLevel: 1, Subject: "Mathematics",
			Schedule: []ScheduleSlot{{Day: "Monday", StartTime: "09:00", EndTime: "10:30", Classroom: "Room A1"}},
		}},
		{ID: "c2", CourseFields: CourseFields{
			Name: "S2 Physics", TeacherID: &t2, StudentIDs: []string{"s2", "s5"}, GradeLevel: 2, Subject: "Physics",
			Schedule: []ScheduleSlot{{Day: "Tuesday", StartTime: "11:00", EndTime: "12:30", Classroom: "Physics Lab"}},
		}},
		{ID: "c3", CourseFields: CourseFields{
			Name: "S3 History", TeacherID: &t3, StudentIDs: []string{"s4"}, GradeLevel: 3, Subject: "History",
			Schedule: []ScheduleSlot{{Day: "Wednesday", StartTime: "14:00", EndTime: "15:30", Classroom: "Room B2"}},
		}},
	}

	announcements := []Announcement{
		{ID: "a1", Date: now, AnnouncementFields: AnnouncementFields{
			Title:          "Welcome Back to Term 1!",
			Content:        "We warmly welcome all students back for Term 1, 2024. Please ensure all school fees are paid by January 20th. New students should report to the administration office for orientation.",
			Priority:       PriorityHigh,
			TargetAudience: AudienceAll,
		}},
		{ID: "a2", Date: now.AddDate(0, 0, -2), AnnouncementFields: AnnouncementFields{
			Title:          "Parent-Teacher Conference",
			Content:        "The quarterly parent-teacher conference will be held on January 25th, 2024. Parents are encouraged to attend to discuss their children's progress. Appointment slots are available at the front office.",
			Priority:       PriorityMedium,
			TargetAudience: AudienceParents,
		}},
		{ID: "a3", Date: now.AddDate(0, 0, -5), AnnouncementFields: AnnouncementFields{
			Title:          "Inter-House Science Competition",
			Content:        "The annual inter-house science competition is scheduled for February 15th. All S4, S5, and S6 students are encouraged to participate. Registration closes on February 1st.",
			Priority:       PriorityMedium,
			TargetAudience: AudienceStudents,
		}},
		{ID: "a4", Date: now.AddDate(0, 0, -7), AnnouncementFields: AnnouncementFields{
			Title:          "UNEB Examination Timetable",
			Content:        "The UNEB examination timetable for 2024 has been released. S4 and S6 candidates should collect their examination cards from the administration office.",
			Priority:       PriorityHigh,
			TargetAudience: AudienceStudents,
		}},
	}

	attendance := []AttendanceRecord{
		{StudentID: "s1", Date: today, Status: StatusPresent},
		{StudentID: "s3", Date: today, Status: StatusPresent},
		{StudentID: "s1", Date: yesterday, Status: StatusPresent},
		{StudentID: "s3", Date: yesterday, Status: StatusAbsent},
		{StudentID: "s2", Date: yesterday, Status: StatusLate},
	}

	exams := []Exam{
		{ID: "e1", ExamFields: ExamFields{
			Name: "Term 1 Mathematics Exam", Subject: "Mathematics", GradeLevel: 1, Date: "2025-03-15",
			Duration: 120, TotalMarks: 100, PassingMarks: 50, Venue: "Main Hall",
			Instructions: "Calculators are not allowed. Show all working clearly.",
		}},
		{ID: "e2", ExamFields: ExamFields{
			Name: "English Literature Assessment", Subject: "English", GradeLevel: 2, Date: "2025-03-18",
			Duration: 180, TotalMarks: 100, PassingMarks: 50, Venue: "Library",
			Instructions: "Reference materials allowed. Write clearly.",
		}},
		{ID: "e3", ExamFields: ExamFields{
			Name: "Physics Practical Exam", Subject: "Physics", GradeLevel: 4, Date: "2025-03-20",
			Duration: 150, TotalMarks: 80, PassingMarks: 40, Venue: "Physics Lab",
			Instructions: "Safety equipment mandatory. Follow lab protocols.",
		}},
	}

	examResults := []ExamResult{
		{ID: "r1", ExamID: "e1", ExamResultFields: ExamResultFields{StudentID: "s1", MarksObtained: 85, Grade: "A", Remarks: "Excellent performance"}},
		{ID: "r2", ExamID: "e1", ExamResultFields: ExamResultFields{StudentID: "s2", MarksObtained: 62, Grade: "B", Remarks: "Good work"}},
		{ID: "r3", ExamID: "e1", ExamResultFields: ExamResultFields{StudentID: "s3", MarksObtained: 45, Grade: "D", Remarks: "Needs improvement"}},
		{ID: "r4", ExamID: "e2", ExamResultFields: ExamResultFields{StudentID: "s1", MarksObtained: 78, Grade: "B+", Remarks: "Very good"}},
		{ID: "r5", ExamID: "e2", ExamResultFields: ExamResultFields{StudentID: "s2", MarksObtained: 91, Grade: "A", Remarks: "Outstanding"}},
	}

	financeRecords := []FinanceRecord{
		{ID: "f1", FinanceRecordFields: FinanceRecordFields{
			Type: FinanceIncome, Category: "School Fees", Description: "S1 Tuition Payment - Nakamya Sarah",
			Amount: 450000, Date: "2025-01-15", PaymentMethod: PaymentMobileMoney, Reference: "MTN-2025011501", StudentID: "s1",
		}},
		{ID: "f2", FinanceRecordFields: FinanceRecordFields{
			Type: FinanceIncome, Category: "School Fees", Description: "S3 Boarding Fee - Okello James",
			Amount: 300000, Date: "2025-01-14", PaymentMethod: PaymentBankTransfer, Reference: "BNK-20250114",
		}},
		{ID: "f3", FinanceRecordFields: FinanceRecordFields{
			Type: FinanceExpense, Category: "Utilities", Description: "Electricity Bill - January",
			Amount: 850000, Date: "2025-01-10", PaymentMethod: PaymentBankTransfer, Reference: "UMEME-012025",
		}},
		{ID: "f4", FinanceRecordFields: FinanceRecordFields{
			Type: FinanceExpense, Category: "Staff Salaries", Description: "Teacher Salaries - January",
			Amount: 12500000, Date: "2025-01-05", PaymentMethod: PaymentBankTransfer, Reference: "SAL-012025",
		}},
		{ID: "f5", FinanceRecordFields: FinanceRecordFields{
			Type: FinanceIncome, Category: "Transport", Description: "Transport Fee - Mugerwa Peter",
			Amount: 50000, Date: "2025-01-12", PaymentMethod: PaymentCash,
		}},
		{ID: "f6", FinanceRecordFields: FinanceRecordFields{
			Type: FinanceExpense, Category: "Maintenance", Description: "Laboratory Equipment Repair",
			Amount: 750000, Date: "2025-01-08", PaymentMethod: PaymentCash,
		}},
	}

	return Snapshot{
		Students:       students,
		Teachers:       teachers,
		Staff:          staff,
		Courses:        courses,
		Announcements:  announcements,
		Attendance:     attendance,
		Exams:          exams,
		ExamResults:    examResults,
		FinanceRecords: financeRecords,
	}
}
