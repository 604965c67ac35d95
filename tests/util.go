package testutil

import (
	"fmt"
	"net/mail"
	"sync"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
)

// Now is the reference time of the seeded test data: Monday 17 March 2025, 09:30 UTC.
var Now = time.Date(2025, 3, 17, 9, 30, 0, 0, time.UTC)

func NewConfig() *core.Config {
	return &core.Config{
		TestMode:         true,
		AppName:          "Shule",
		Env:              "TEST",
		AvatarBaseURL:    "https://i.pravatar.cc/150",
		DefaultFromEmail: mail.Address{Name: "Shule", Address: "noreply@shule.test"},
		Server:           core.ServerConfig{DisableReqLogs: true},
		Assistant: core.AssistantConfig{
			Model:             core.DefaultAssistantModel,
			SystemInstruction: core.DefaultAssistantSystemInstruction,
			Timeout:           time.Second,
		},
	}
}

// OpenDB returns an in-memory store seeded with the mock dataset as of Now, or an empty one.
func OpenDB(t *testing.T, seeded bool) *inmemdb.DB {
	var (
		db  *inmemdb.DB
		err error
	)
	if seeded {
		db, err = inmemdb.Open(school.InitialData(Now))
	} else {
		db, err = inmemdb.Open()
	}
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

func AddStudent(t *testing.T, svc *school.Service, first, last string, grade int) school.Student {
	s, err := svc.AddStudent(school.StudentFields{
		FirstName: first, LastName: last, DateOfBirth: "2009-01-02", Grade: grade,
		EmergencyContact: "0775-000-111", Gender: school.GenderFemale, Address: "Kampala, Uganda",
		ParentName: "Okello Peter", ParentPhone: "0775-000-111", AdmissionDate: "2025-01-15",
		SchoolFees: school.SchoolFees{Tuition: 450000},
	})
	if err != nil {
		t.Fatalf("AddStudent() failed: %v", err)
	}
	return s
}

// LogEntry is a call recorded by Logger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger is a core.Logger recording every call instead of printing it.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
	l.mu.Unlock()
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log("fatal", msg, args)
	panic(fmt.Sprintf("fatal: %s", msg))
}

func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}
