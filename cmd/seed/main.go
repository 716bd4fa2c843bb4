// Command seed loads the demo roster, timetable and accounts. It clears
// every table first, attendance included.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/config"
	"github.com/Harshavardhanyedla/AttendX/internal/model"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
	"github.com/Harshavardhanyedla/AttendX/pkg/database"
	applogger "github.com/Harshavardhanyedla/AttendX/pkg/logger"
)

type seedUser struct {
	username, password, role, name string
}

var users = []seedUser{
	{"admin", "admin123", model.RoleAdmin, "Administrator"},
	{"cr", "cr123", model.RoleCR, "Class Rep"},
}

var subjects = []struct{ code, name string }{
	{"SANS", "Sanskrit"},
	{"AI-T", "Artificial Intelligence (Theory)"},
	{"DBMS-T", "DBMS (Theory)"},
	{"DSC-T", "Data Structures using C (Theory)"},
	{"AI-L", "AI Lab"},
	{"LAB", "Lab"},
	{"ENG", "English"},
	{"AOC", "AOC (Analytical Skills)"},
	{"ISW", "ISW"},
	{"MAJOR-L", "Major Lab"},
	{"IKS", "IKS"},
}

// timetable lists subject codes for P1..P7.
var timetable = []struct {
	day   string
	codes [7]string
}{
	{"Monday", [7]string{"SANS", "AI-T", "DBMS-T", "DSC-T", "AI-L", "AI-L", "LAB"}},
	{"Tuesday", [7]string{"ENG", "AOC", "SANS", "ISW", "AI-T", "DBMS-T", "DSC-T"}},
	{"Wednesday", [7]string{"DSC-T", "MAJOR-L", "MAJOR-L", "MAJOR-L", "SANS", "IKS", "ENG"}},
	{"Thursday", [7]string{"AI-T", "ENG", "DSC-T", "DBMS-T", "AOC", "ISW", "IKS"}},
	{"Friday", [7]string{"DBMS-T", "DSC-T", "ENG", "IKS", "MAJOR-L", "MAJOR-L", "MAJOR-L"}},
	{"Saturday", [7]string{"ISW", "DBMS-T", "SANS", "AI-T", "ENG", "DSC-T", "DBMS-T"}},
}

var students = []struct{ name, gender string }{
	{"Aarav Sharma", "Male"}, {"Aditi Rao", "Female"}, {"Arjun Kumar", "Male"},
	{"Ananya Gupta", "Female"}, {"Balaji S", "Male"}, {"Bhavya Patel", "Female"},
	{"Chirag Menon", "Male"}, {"Deepika Singh", "Female"}, {"Dhruv Reddy", "Male"},
	{"Divya Nair", "Female"}, {"Eshaan Verma", "Male"}, {"Esha Jain", "Female"},
	{"Farhan Khan", "Male"}, {"Gauri Joshi", "Female"}, {"Gokul Krishnan", "Male"},
	{"Harsh Vardhan", "Male"}, {"Ishita Roy", "Female"}, {"Ishaan Malhotra", "Male"},
	{"Jaya Lakshmi", "Female"}, {"Karthik Iyer", "Male"}, {"Kavya Mishra", "Female"},
	{"Lakshya Sen", "Male"}, {"Meera Kapoor", "Female"}, {"Madhavan R", "Male"},
	{"Nikhil Das", "Male"}, {"Neha Aggarwal", "Female"}, {"Omkar P", "Male"},
	{"Pooja Hegde", "Female"}, {"Pranav K", "Male"}, {"Priya Anand", "Female"},
}

// Deleted children first.
var tables = []string{
	"audit_logs", "attendance_records", "attendance_slots",
	"timetable_entries", "students", "subjects", "users",
}

func main() {
	cfg, err := config.Load(os.Getenv("ATTENDX_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if _, err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migrate database failed", zap.Error(err))
	}

	ctx := context.Background()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return seed(ctx, tx, logger)
	})
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed complete")
}

func seed(ctx context.Context, tx *gorm.DB, logger *zap.Logger) error {
	for _, t := range tables {
		if err := tx.Exec("DELETE FROM " + t).Error; err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}

	repo := repository.NewRepository(tx)

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user := &model.User{
			UserID:       uuid.New().String(),
			Username:     u.username,
			PasswordHash: string(hash),
			Role:         u.role,
			Name:         u.name,
		}
		if err := repo.User.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.username, err)
		}
	}
	logger.Info("users seeded", zap.Int("count", len(users)))

	subjectIDs := make(map[string]string, len(subjects))
	subjectRows := make([]model.Subject, 0, len(subjects))
	for _, s := range subjects {
		id := uuid.New().String()
		subjectIDs[s.code] = id
		subjectRows = append(subjectRows, model.Subject{SubjectID: id, Code: s.code, Name: s.name, Type: "theory"})
	}
	if err := repo.Subject.BatchCreate(ctx, subjectRows); err != nil {
		return fmt.Errorf("create subjects: %w", err)
	}
	logger.Info("subjects seeded", zap.Int("count", len(subjectRows)))

	var entries []model.TimetableEntry
	for _, day := range timetable {
		for i, code := range day.codes {
			id, ok := subjectIDs[code]
			if !ok {
				return fmt.Errorf("timetable %s P%d: unknown subject %s", day.day, i+1, code)
			}
			entries = append(entries, model.TimetableEntry{
				TimetableEntryID: uuid.New().String(),
				Weekday:          day.day,
				Period:           i + 1,
				SubjectID:        id,
			})
		}
	}
	if err := repo.Timetable.BatchCreate(ctx, entries); err != nil {
		return fmt.Errorf("create timetable: %w", err)
	}
	logger.Info("timetable seeded", zap.Int("entries", len(entries)))

	roster := make([]model.Student, 0, len(students))
	for i, s := range students {
		roster = append(roster, model.Student{
			StudentID: uuid.New().String(),
			RollNo:    fmt.Sprintf("BCA%03d", i+1),
			Name:      s.name,
			Gender:    s.gender,
		})
	}
	if err := repo.Student.BatchCreate(ctx, roster); err != nil {
		return fmt.Errorf("create students: %w", err)
	}
	logger.Info("students seeded", zap.Int("count", len(roster)))

	return nil
}
