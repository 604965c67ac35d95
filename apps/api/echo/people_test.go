package echoapi_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/school"
)

func (app *testApp) student(t *testing.T, id string) school.Student {
	s, err := app.svc.GetStudentByID(id)
	if err != nil {
		t.Fatalf("GetStudentByID(%s): %v", id, err)
	}
	return s
}

func newStudentFields() school.StudentFields {
	return school.StudentFields{
		FirstName: "Apio", LastName: "Esther", DateOfBirth: "2009-04-01", Grade: 1,
		EmergencyContact: "Opio Sam - 0772-000-111", Gender: school.GenderFemale, Address: "Gulu, Uganda",
		ParentName: "Opio Sam", ParentPhone: "0772-000-111", AdmissionDate: "2025-01-15",
		SchoolFees: school.SchoolFees{Tuition: 450000, TotalPaid: 200000, Balance: 250000},
	}
}

func Test_studentApi_query(t *testing.T) {
	app := setup(t)
	s1, s2, s3, s4, s5 := app.student(t, "s1"), app.student(t, "s2"), app.student(t, "s3"), app.student(t, "s4"), app.student(t, "s5")

	path := func(params ...string) string {
		v := make(url.Values)
		for i := 0; i+1 < len(params); i += 2 {
			v.Add(params[i], params[i+1])
		}
		return "/v1/students?" + v.Encode()
	}
	empty := marchallList[school.Student](t)

	app.run(t, []httpTest{
		{name: "Get all", path: "/v1/students", wantData: marchallList(t, s1, s2, s3, s4, s5)},
		{name: "trailing slash", path: "/v1/students/", wantData: marchallList(t, s1, s2, s3, s4, s5)},
		{name: "search (unknown)", path: path("search", "lol"), wantData: empty},
		{name: "search=NAKATO", path: path("search", "NAKATO"), wantData: marchallList(t, s1)},
		{name: "search by id", path: path("search", "s4"), wantData: marchallList(t, s4)},
		{name: "grade=2", path: path("grade", "2"), wantData: marchallList(t, s2, s5)},
		{name: "grade (invalid)", path: path("grade", "two"), wantData: empty},
		{name: "gender=Male", path: path("gender", "Male"), wantData: marchallList(t, s2, s4)},
		{name: "course_id=c1", path: path("course_id", "c1"), wantData: marchallList(t, s1, s3)},
		{name: "course_id (unknown)", path: path("course_id", "c9"), wantData: empty},
		{name: "gender=female&grade=1", path: path("gender", "female", "grade", "1"), wantData: marchallList(t, s1, s3)},
		// ordering
		{name: "ordering=last_name", path: path("ordering", "last_name"), wantData: marchallList(t, s4, s1, s5, s2, s3)},
		{name: "ordering=-grade,first_name", path: path("ordering", "-grade,first_name"), wantData: marchallList(t, s4, s2, s5, s1, s3)},
		{name: "ordering (unknown)", path: path("ordering", "lol"), wantData: marchallList(t, s1, s2, s3, s4, s5)},
	})
}

func Test_studentApi_create(t *testing.T) {
	app := setup(t)

	t.Run("valid", func(t *testing.T) {
		data := newStudentFields()
		data.FirstName = "  Apio "
		rec := app.do(http.MethodPost, "/v1/students", marchallObj(t, data))
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v; data = %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var got school.Student
		unmarchall(t, rec, &got)
		assert.Regexp(t, `^s-[0-9a-f-]{36}$`, got.ID)
		assert.Equal(t, "Apio", got.FirstName)
		assert.Equal(t, app.svc.AvatarURL(got.ID), got.AvatarURL)
		assert.Equal(t, got, app.student(t, got.ID))
	})

	invalid := newStudentFields()
	invalid.Grade = 7
	invalid.ParentPhone = "12345"
	invalid.Gender = "other"

	app.run(t, []httpTest{
		{name: "invalid json", method: http.MethodPost, path: "/v1/students", body: []byte(`{"first_name":`), wantCode: http.StatusBadRequest},
		{
			name: "invalid fields", method: http.MethodPost, path: "/v1/students", body: marchallObj(t, invalid),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"grade":        "grade must be 6 or less",
				"parent_phone": "enter a valid Ugandan phone number, e.g. +256 775 123 456 or 0775-123-456",
				"gender":       "gender must be one of [male female]",
			}),
		},
	})

	t.Run("required", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/v1/students", []byte(`{}`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
		var got map[string]string
		unmarchall(t, rec, &got)
		assert.Equal(t, "this field is required", got["first_name"])
		assert.Equal(t, "this field is required", got["parent_phone"])
		assert.Equal(t, "grade must be 1 or greater", got["grade"])
	})

	students, _ := app.svc.QueryStudents(school.StudentFilter{}, nil)
	assert.Len(t, students, 6, "only the valid student is stored")
}

func Test_studentApi_retrieve(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{name: "found", path: "/v1/students/s2", wantData: marchallObj(t, app.student(t, "s2"))},
		{name: "not found", path: "/v1/students/nope", wantCode: http.StatusNotFound, wantData: notFound(t, "student")},
	})
}

func Test_studentApi_update(t *testing.T) {
	app := setup(t)

	s1 := app.student(t, "s1")
	s1.Address = "Ntinda, Kampala"
	s1.ID = "ignored"
	s1.AvatarURL = ""
	s1.SchoolFees.TotalPaid = 500000
	s1.SchoolFees.Balance = 0

	want := s1
	want.ID = "s1"
	want.AvatarURL = app.svc.AvatarURL("s1")

	invalid := app.student(t, "s1")
	invalid.LastName = "Gr4ce"

	promoted := app.student(t, "s1")
	promoted.Grade = 2

	app.run(t, []httpTest{
		{name: "not found", method: http.MethodPut, path: "/v1/students/nope", body: marchallObj(t, s1), wantCode: http.StatusNotFound, wantData: notFound(t, "student")},
		{
			name: "invalid", method: http.MethodPut, path: "/v1/students/s1", body: marchallObj(t, invalid), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"last_name": "only letters, spaces, apostrophes and hyphens are allowed"}),
		},
		{
			name: "grade change while enrolled", method: http.MethodPut, path: "/v1/students/s1", body: marchallObj(t, promoted), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"grade": "student is enrolled in courses of the current grade"}),
		},
		{name: "valid", method: http.MethodPut, path: "/v1/students/s1", body: marchallObj(t, s1), wantData: marchallObj(t, want)},
	})

	assert.Equal(t, want, app.student(t, "s1"))
}

func Test_studentApi_destroy(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{name: "not found", method: http.MethodDelete, path: "/v1/students/nope", wantCode: http.StatusNotFound, wantData: notFound(t, "student")},
		{name: "deleted", method: http.MethodDelete, path: "/v1/students/s1", wantCode: http.StatusNoContent},
		{name: "already deleted", method: http.MethodDelete, path: "/v1/students/s1", wantCode: http.StatusNotFound, wantData: notFound(t, "student")},
	})

	c1, _ := app.svc.GetCourseByID("c1")
	assert.Equal(t, []string{"s3"}, c1.StudentIDs)
	records, _ := app.svc.QueryAttendance(school.AttendanceFilter{StudentID: "s1"})
	assert.Empty(t, records)
}

func Test_teacherApi(t *testing.T) {
	app := setup(t)
	t1, _ := app.svc.GetTeacherByID("t1")
	t2, _ := app.svc.GetTeacherByID("t2")
	t3, _ := app.svc.GetTeacherByID("t3")
	c1, _ := app.svc.GetCourseByID("c1")

	newTeacher := t2.TeacherFields
	newTeacher.FirstName = "Akello"
	newTeacher.Email = "A.Akello@School.edu.ug"
	newTeacher.EmploymentType = school.EmploymentVolunteer

	badTeacher := newTeacher
	badTeacher.Email = "akello"
	badTeacher.NationalID = "123"

	updated := t3
	updated.Experience = 14

	app.run(t, []httpTest{
		{name: "Get all", path: "/v1/teachers", wantData: marchallList(t, t1, t2, t3)},
		{name: "search=physics", path: "/v1/teachers?search=physics", wantData: marchallList(t, t2)},
		{name: "gender=male", path: "/v1/teachers?gender=male&ordering=-experience", wantData: marchallList(t, t3, t1)},
		{name: "retrieve", path: "/v1/teachers/t1", wantData: marchallObj(t, t1)},
		{name: "courses", path: "/v1/teachers/t1/courses", wantData: marchallList(t, c1)},
		{name: "retrieve (not found)", path: "/v1/teachers/t9", wantCode: http.StatusNotFound, wantData: notFound(t, "teacher")},
		{
			name: "create (invalid)", method: http.MethodPost, path: "/v1/teachers", body: marchallObj(t, badTeacher), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"email":       "email must be a valid email address",
				"national_id": "enter a valid national ID, e.g. CM85001234567PE",
			}),
		},
		{name: "create", method: http.MethodPost, path: "/v1/teachers", body: marchallObj(t, newTeacher), wantCode: http.StatusCreated},
		{name: "update", method: http.MethodPut, path: "/v1/teachers/t3", body: marchallObj(t, updated), wantData: marchallObj(t, updated)},
		{name: "delete", method: http.MethodDelete, path: "/v1/teachers/t1", wantCode: http.StatusNoContent},
	})

	teachers, _ := app.svc.QueryTeachers(school.TeacherFilter{Search: "akello"}, nil)
	if assert.Len(t, teachers, 1) {
		assert.Equal(t, "a.akello@school.edu.ug", teachers[0].Email)
	}
	c1, _ = app.svc.GetCourseByID("c1")
	assert.Nil(t, c1.TeacherID, "courses of a deleted teacher are unassigned")
}

func Test_staffApi(t *testing.T) {
	app := setup(t)
	st1, _ := app.svc.GetStaffByID("st1")
	st2, _ := app.svc.GetStaffByID("st2")
	st5, _ := app.svc.GetStaffByID("st5")

	contractor := st1.StaffFields
	contractor.EmploymentType = school.EmploymentVolunteer

	updated := st2
	updated.Shift = school.ShiftBoth

	app.run(t, []httpTest{
		{name: "department=Kitchen", path: "/v1/staff?department=Kitchen", wantData: marchallList(t, st1)},
		{name: "employment_type=Part-time", path: "/v1/staff?employment_type=Part-time", wantData: marchallList(t, st5)},
		{name: "shift=Night", path: "/v1/staff?shift=Night", wantData: marchallList(t, st2)},
		{name: "search=cook", path: "/v1/staff?search=cook", wantData: marchallList(t, st1)},
		{name: "retrieve (not found)", path: "/v1/staff/st9", wantCode: http.StatusNotFound, wantData: notFound(t, "staff member")},
		{
			name: "create (volunteer)", method: http.MethodPost, path: "/v1/staff", body: marchallObj(t, contractor), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"employment_type": "employment_type must be one of [Full-time Part-time Contract]"}),
		},
		{name: "update", method: http.MethodPut, path: "/v1/staff/st2", body: marchallObj(t, updated), wantData: marchallObj(t, updated)},
		{name: "delete", method: http.MethodDelete, path: "/v1/staff/st5", wantCode: http.StatusNoContent},
		{name: "deleted", path: "/v1/staff/st5", wantCode: http.StatusNotFound, wantData: notFound(t, "staff member")},
	})
}
