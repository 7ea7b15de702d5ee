package store

import "gorm.io/gorm"

// Session is one completed exchange between coordinator and worker.
type Session struct {
	ID         uint `gorm:"primaryKey"`
	Role       string
	PeerAddr   string
	Rounds     int
	VectorLen  int
	BytesSent  uint64
	StartedAt  int64
	FinishedAt int64
}

type SessionStore struct {
	DB *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{DB: db}
}

func (ss *SessionStore) CreateSession(s *Session) error {
	return ss.DB.Create(s).Error
}

func (ss *SessionStore) GetSessions() ([]Session, error) {
	sessions := []Session{}
	if err := ss.DB.Order("id").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// TotalBytesSent sums the bytes sent across all recorded sessions.
func (ss *SessionStore) TotalBytesSent() (uint64, error) {
	var total int64
	err := ss.DB.Model(&Session{}).Select("COALESCE(SUM(bytes_sent), 0)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return uint64(total), nil
}
