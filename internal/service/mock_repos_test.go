package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Harshavardhanyedla/AttendX/internal/model"
	"github.com/Harshavardhanyedla/AttendX/internal/period"
	"github.com/Harshavardhanyedla/AttendX/internal/repository"
	pkgerrors "github.com/Harshavardhanyedla/AttendX/pkg/errors"
)

var errStorage = errors.New("storage unavailable")

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id and "name:"+username
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	m.users["name:"+user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users["name:"+username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	err      error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RollNo < result[j].RollNo })
	return result, nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByIDs(_ context.Context, ids []string) ([]model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Student
	for _, id := range ids {
		if s, ok := m.students[id]; ok {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RollNo < result[j].RollNo })
	return result, nil
}

func (m *mockStudentRepo) BatchCreate(_ context.Context, students []model.Student) error {
	for i := range students {
		s := students[i]
		m.students[s.StudentID] = &s
	}
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	err      error
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	result := make([]model.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) BatchCreate(_ context.Context, subjects []model.Subject) error {
	for i := range subjects {
		s := subjects[i]
		m.subjects[s.SubjectID] = &s
	}
	return nil
}

// ── Mock TimetableRepository ──

// Entries are returned in insertion order, not sorted, so callers that
// depend on period order must sort.
type mockTimetableRepo struct {
	entries  []model.TimetableEntry
	subjects *mockSubjectRepo
	err      error
}

func newMockTimetableRepo(subjects *mockSubjectRepo) *mockTimetableRepo {
	return &mockTimetableRepo{subjects: subjects}
}

func (m *mockTimetableRepo) withSubject(e model.TimetableEntry) model.TimetableEntry {
	if s, ok := m.subjects.subjects[e.SubjectID]; ok {
		e.Subject = s
	}
	return e
}

func (m *mockTimetableRepo) ListByWeekday(_ context.Context, weekday string) ([]model.TimetableEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.Weekday == weekday {
			result = append(result, m.withSubject(e))
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) GetByWeekdayAndPeriod(_ context.Context, weekday string, p int) (*model.TimetableEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, e := range m.entries {
		if e.Weekday == weekday && e.Period == p {
			found := m.withSubject(e)
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) BatchCreate(_ context.Context, entries []model.TimetableEntry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

// ── Mock AttendanceRepository ──

type slotKey struct {
	date   string
	period int
}

// mockAttendanceRepo keeps records in insertion order. The mutex makes the
// slot check and the batch write one atomic step, like the unique key.
type mockAttendanceRepo struct {
	mu       sync.Mutex
	slots    map[slotKey]model.AttendanceSlot
	records  []model.AttendanceRecord
	audit    []model.AuditLog
	students *mockStudentRepo
	subjects *mockSubjectRepo

	// failAfter > 0 makes the next batch write fail after staging that
	// many records. Nothing from the failed batch is kept.
	failAfter int
	readErr   error
}

func newMockAttendanceRepo(students *mockStudentRepo, subjects *mockSubjectRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		slots:    make(map[slotKey]model.AttendanceSlot),
		students: students,
		subjects: subjects,
	}
}

func (m *mockAttendanceRepo) SlotExists(_ context.Context, date string, p int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return false, m.readErr
	}
	_, ok := m.slots[slotKey{date, p}]
	return ok, nil
}

func (m *mockAttendanceRepo) stage(records []model.AttendanceRecord) ([]model.AttendanceRecord, error) {
	staged := make([]model.AttendanceRecord, 0, len(records))
	for i, r := range records {
		if m.failAfter > 0 && i >= m.failAfter {
			m.failAfter = 0
			return nil, errStorage
		}
		staged = append(staged, r)
	}
	return staged, nil
}

func (m *mockAttendanceRepo) CreateBatch(_ context.Context, slot *model.AttendanceSlot, records []model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey{slot.Date, slot.Period}
	if _, ok := m.slots[key]; ok {
		return pkgerrors.ErrSlotTaken
	}
	staged, err := m.stage(records)
	if err != nil {
		return err
	}
	m.slots[key] = *slot
	m.records = append(m.records, staged...)
	return nil
}

func (m *mockAttendanceRepo) UpsertBatch(_ context.Context, slot *model.AttendanceSlot, records []model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged, err := m.stage(records)
	if err != nil {
		return err
	}
	m.slots[slotKey{slot.Date, slot.Period}] = *slot
	for _, r := range staged {
		if i := m.indexOf(r.StudentID, r.Date, r.Period); i >= 0 {
			m.records[i] = r
			continue
		}
		m.records = append(m.records, r)
	}
	return nil
}

func (m *mockAttendanceRepo) indexOf(studentID, date string, p int) int {
	for i, r := range m.records {
		if r.StudentID == studentID && r.Date == date && r.Period == p {
			return i
		}
	}
	return -1
}

func (m *mockAttendanceRepo) UpdateStatusWithAudit(_ context.Context, rec *model.AttendanceRecord, newStatus string, log *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(rec.StudentID, rec.Date, rec.Period)
	if i < 0 || m.records[i].Status != rec.Status {
		return pkgerrors.ErrStaleRecord
	}
	m.records[i].Status = newStatus
	if log.AuditLogID == "" {
		log.AuditLogID = fmt.Sprintf("audit-%d", len(m.audit)+1)
	}
	m.audit = append(m.audit, *log)
	rec.Status = newStatus
	return nil
}

// filter copies matching records with associations attached.
func (m *mockAttendanceRepo) filter(keep func(r *model.AttendanceRecord) bool) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var result []model.AttendanceRecord
	for i := range m.records {
		r := m.records[i]
		if !keep(&r) {
			continue
		}
		if s, ok := m.students.students[r.StudentID]; ok {
			r.Student = s
		}
		if s, ok := m.subjects.subjects[r.SubjectID]; ok {
			r.Subject = s
		}
		result = append(result, r)
	}
	return result, nil
}

func inRange(date, from, to string) bool {
	return (from == "" || date >= from) && (to == "" || date <= to)
}

func (m *mockAttendanceRepo) GetByKey(_ context.Context, studentID, date string, p int) (*model.AttendanceRecord, error) {
	found, err := m.filter(func(r *model.AttendanceRecord) bool {
		return r.StudentID == studentID && r.Date == date && r.Period == p
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found[0], nil
}

func (m *mockAttendanceRepo) ListByDate(_ context.Context, date string) ([]model.AttendanceRecord, error) {
	result, err := m.filter(func(r *model.AttendanceRecord) bool { return r.Date == date })
	sort.SliceStable(result, func(i, j int) bool { return result[i].Period < result[j].Period })
	return result, err
}

func (m *mockAttendanceRepo) ListBySlot(_ context.Context, date string, p int) ([]model.AttendanceRecord, error) {
	return m.filter(func(r *model.AttendanceRecord) bool { return r.Date == date && r.Period == p })
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID, from, to string) ([]model.AttendanceRecord, error) {
	return m.filter(func(r *model.AttendanceRecord) bool {
		return r.StudentID == studentID && inRange(r.Date, from, to)
	})
}

func (m *mockAttendanceRepo) ListBySubject(_ context.Context, subjectID, from, to string) ([]model.AttendanceRecord, error) {
	return m.filter(func(r *model.AttendanceRecord) bool {
		return r.SubjectID == subjectID && inRange(r.Date, from, to)
	})
}

func (m *mockAttendanceRepo) ListByDateRange(_ context.Context, from, to string) ([]model.AttendanceRecord, error) {
	return m.filter(func(r *model.AttendanceRecord) bool { return inRange(r.Date, from, to) })
}

// put stores records directly, bypassing the recorder.
func (m *mockAttendanceRepo) put(date string, p int, subjectID string, statuses map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slotKey{date, p}] = model.AttendanceSlot{Date: date, Period: p, SubjectID: subjectID}
	ids := make([]string, 0, len(statuses))
	for id := range statuses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	name := UnknownSubject
	if s, ok := m.subjects.subjects[subjectID]; ok {
		name = s.Name
	}
	for _, id := range ids {
		m.records = append(m.records, model.AttendanceRecord{
			StudentID: id, Date: date, Period: p,
			SubjectID: subjectID, SubjectName: name,
			Status: statuses[id], MarkedBy: "user-cr",
		})
	}
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	att *mockAttendanceRepo
}

func (m *mockAuditLogRepo) List(_ context.Context, limit int) ([]model.AuditLog, error) {
	m.att.mu.Lock()
	defer m.att.mu.Unlock()
	var result []model.AuditLog
	for i := len(m.att.audit) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.att.audit[i])
	}
	return result, nil
}

// ═══════════════════════════════════════════════════════════
// Test fixture
// ═══════════════════════════════════════════════════════════

type testStore struct {
	users      *mockUserRepo
	students   *mockStudentRepo
	subjects   *mockSubjectRepo
	timetable  *mockTimetableRepo
	attendance *mockAttendanceRepo
}

func newTestStore() (*repository.Repository, *testStore) {
	st := &testStore{
		users:    newMockUserRepo(),
		students: newMockStudentRepo(),
		subjects: newMockSubjectRepo(),
	}
	st.timetable = newMockTimetableRepo(st.subjects)
	st.attendance = newMockAttendanceRepo(st.students, st.subjects)

	repo := &repository.Repository{
		User:       st.users,
		Student:    st.students,
		Subject:    st.subjects,
		Timetable:  st.timetable,
		Attendance: st.attendance,
		AuditLog:   &mockAuditLogRepo{att: st.attendance},
	}
	return repo, st
}

// addStudents creates stu-01..stu-NN with rolls BCA001..
func (st *testStore) addStudents(n int) []string {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("stu-%02d", i+1)
		st.students.students[ids[i]] = &model.Student{
			StudentID: ids[i],
			RollNo:    fmt.Sprintf("BCA%03d", i+1),
			Name:      fmt.Sprintf("Student %d", i+1),
			Gender:    "F",
		}
	}
	return ids
}

func (st *testStore) addSubject(id, code, name string) {
	st.subjects.subjects[id] = &model.Subject{SubjectID: id, Code: code, Name: name, Type: "theory"}
}

func (st *testStore) schedule(day string, p int, subjectID string) {
	st.timetable.entries = append(st.timetable.entries, model.TimetableEntry{
		TimetableEntryID: fmt.Sprintf("%s-%d", day, p),
		Weekday:          day,
		Period:           p,
		SubjectID:        subjectID,
	})
}

// ist is the institution zone used by every test clock.
var ist = time.FixedZone("IST", 5*3600+1800)

// clockAt returns a fixed clock on the given local date and time.
func clockAt(date string, hour, minute int) period.Clock {
	d, err := time.ParseInLocation(period.DateLayout, date, ist)
	if err != nil {
		panic(err)
	}
	return period.FixedClock{T: d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)}
}
