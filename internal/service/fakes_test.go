package service

import (
	"context"
	"strings"
	"time"

	"github.com/miseventos/backend/internal/models"
	"gorm.io/gorm"
)

// In-memory repository fakes. Transaction runs the callback with a nil
// tx; every fake ignores the tx argument, so service logic runs exactly
// as it would inside a real transaction minus the locking.

type fakeEventRepo struct {
	events map[uint]*models.Event
	nextID uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uint]*models.Event{}}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	f.nextID++
	event.ID = f.nextID
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	for id := uint(1); id <= f.nextID; id++ {
		if event, ok := f.events[id]; ok {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) SearchByName(ctx context.Context, query string) ([]models.Event, error) {
	var out []models.Event
	for id := uint(1); id <= f.nextID; id++ {
		event, ok := f.events[id]
		if !ok || event.Status != models.EventPublished {
			continue
		}
		if strings.Contains(strings.ToLower(event.Name), strings.ToLower(query)) {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	event, ok := f.events[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			event.Status = value.(models.EventStatus)
		case "name":
			event.Name = value.(string)
		case "description":
			event.Description = value.(string)
		case "duration_minutes":
			v := value.(int)
			event.DurationMinutes = &v
		}
	}
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeSessionRepo struct {
	sessions map[uint]*models.Session
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uint]*models.Session{}}
}

func (f *fakeSessionRepo) add(session models.Session) *models.Session {
	if session.ID == 0 {
		f.nextID++
		session.ID = f.nextID
	} else if session.ID > f.nextID {
		f.nextID = session.ID
	}
	f.sessions[session.ID] = &session
	return &session
}

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *models.Session) error {
	f.nextID++
	session.ID = f.nextID
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Session, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeSessionRepo) FindByEventID(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.Session, error) {
	var out []models.Session
	for id := uint(1); id <= f.nextID; id++ {
		if session, ok := f.sessions[id]; ok && session.EventID == eventID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	session, ok := f.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "session_time":
			session.SessionTime = value.(time.Time)
		case "presenter":
			session.Presenter = value.(string)
		case "specific_location":
			session.SpecificLocation = value.(string)
		case "max_capacity":
			session.MaxCapacity = value.(int)
		case "status":
			session.Status = value.(models.SessionStatus)
		case "resources":
			session.Resources = value.(string)
		}
	}
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error {
	for id, session := range f.sessions {
		if session.EventID == eventID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeAttendanceRepo struct {
	records []*models.Attendance
	nextID  uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, tx *gorm.DB, attendance *models.Attendance) error {
	f.nextID++
	attendance.ID = f.nextID
	copied := *attendance
	f.records = append(f.records, &copied)
	return nil
}

func (f *fakeAttendanceRepo) FindConfirmedByUserAndSession(ctx context.Context, tx *gorm.DB, userID, sessionID uint) (*models.Attendance, error) {
	for _, record := range f.records {
		if record.UserID == userID && record.SessionID == sessionID && record.Status == models.AttendanceConfirmed {
			copied := *record
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) CountConfirmed(ctx context.Context, tx *gorm.DB, sessionID uint) (int64, error) {
	var count int64
	for _, record := range f.records {
		if record.SessionID == sessionID && record.Status == models.AttendanceConfirmed {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, attendanceID uint, status models.AttendanceStatus) error {
	for _, record := range f.records {
		if record.ID == attendanceID {
			record.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindByUserID(ctx context.Context, userID uint) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, record := range f.records {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) DeleteBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uint) error {
	keep := f.records[:0]
	for _, record := range f.records {
		deleted := false
		for _, id := range sessionIDs {
			if record.SessionID == id {
				deleted = true
				break
			}
		}
		if !deleted {
			keep = append(keep, record)
		}
	}
	f.records = keep
	return nil
}

func (f *fakeAttendanceRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(ids ...uint) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uint]*models.User{}}
	for _, id := range ids {
		f.users[id] = &models.User{ID: id, FullName: "user", Email: "u@example.com", Role: models.RoleAttendee}
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
