package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository aggregates every data access interface.
type Repository struct {
	User       UserRepository
	Student    StudentRepository
	Subject    SubjectRepository
	Timetable  TimetableRepository
	Attendance AttendanceRepository
	AuditLog   AuditLogRepository
}

// NewRepository builds the aggregate over one connection pool.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Student:    NewStudentRepo(db),
		Subject:    NewSubjectRepo(db),
		Timetable:  NewTimetableRepo(db),
		Attendance: NewAttendanceRepo(db),
		AuditLog:   NewAuditLogRepo(db),
	}
}

// validID reports whether id can address a UUID primary key. Postgres
// rejects anything else with a syntax error rather than "no rows".
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// validIDs keeps only the ids validID accepts.
func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}
