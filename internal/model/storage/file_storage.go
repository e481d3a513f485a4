package storage

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/entity/user"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

const dateLayout = "2006-01-02"

type fileConfig interface {
	UsersFile() string
	RecordsFile() string
}

// FileStorage keeps users and records in memory, mirrored to two flat JSON
// files. The files are read once at construction; every save rewrites the
// whole file. A missing or unparseable file degrades to an empty store.
type FileStorage struct {
	usersFile   string
	recordsFile string

	users   map[string]user.User
	records map[string][]record.FinancialRecord
}

type storedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// storedRecord is the flattened on-disk shape: the owning username is kept
// on every row, and the date is a plain yyyy-mm-dd string.
type storedRecord struct {
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	RecordType  string  `json:"record_type"`
	Date        string  `json:"date"`
}

func NewFileStorage(config fileConfig) *FileStorage {
	s := &FileStorage{
		usersFile:   config.UsersFile(),
		recordsFile: config.RecordsFile(),
		users:       make(map[string]user.User),
		records:     make(map[string][]record.FinancialRecord),
	}
	s.loadUsers()
	s.loadRecords()
	return s
}

func (s *FileStorage) loadUsers() {
	raw, err := os.ReadFile(s.usersFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cannot read users file, starting empty",
				zap.String("file", s.usersFile), zap.Error(err))
		}
		return
	}

	var stored []storedUser
	if err = json.Unmarshal(raw, &stored); err != nil {
		logger.Warn("users file is corrupted, starting empty",
			zap.String("file", s.usersFile),
			zap.Error(errors.Wrap(customerr.ErrCorruptStore, err.Error())))
		return
	}
	for _, u := range stored {
		s.users[u.Username] = user.User{Username: u.Username, Password: u.Password}
	}
}

func (s *FileStorage) loadRecords() {
	raw, err := os.ReadFile(s.recordsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cannot read records file, starting empty",
				zap.String("file", s.recordsFile), zap.Error(err))
		}
		return
	}

	var stored []storedRecord
	if err = json.Unmarshal(raw, &stored); err != nil {
		logger.Warn("records file is corrupted, starting empty",
			zap.String("file", s.recordsFile),
			zap.Error(errors.Wrap(customerr.ErrCorruptStore, err.Error())))
		return
	}

	records := make(map[string][]record.FinancialRecord)
	for _, r := range stored {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			logger.Warn("records file is corrupted, starting empty",
				zap.String("file", s.recordsFile),
				zap.Error(errors.Wrap(customerr.ErrCorruptStore, err.Error())))
			return
		}
		rt, err := record.ParseType(r.RecordType)
		if err != nil {
			logger.Warn("records file is corrupted, starting empty",
				zap.String("file", s.recordsFile),
				zap.Error(errors.Wrap(customerr.ErrCorruptStore, err.Error())))
			return
		}
		records[r.Username] = append(records[r.Username], record.FinancialRecord{
			Description: r.Description,
			Amount:      r.Amount,
			Category:    r.Category,
			Type:        rt,
			Date:        date,
		})
	}
	s.records = records
}

func (s *FileStorage) GetUser(_ context.Context, username string) (user.User, bool, error) {
	u, ok := s.users[username]
	return u, ok, nil
}

func (s *FileStorage) SaveUser(_ context.Context, u user.User) error {
	s.users[u.Username] = u

	stored := make([]storedUser, 0, len(s.users))
	for _, usr := range s.users {
		stored = append(stored, storedUser{Username: usr.Username, Password: usr.Password})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "save user")
	}
	return errors.Wrap(os.WriteFile(s.usersFile, raw, 0600), "save user")
}

func (s *FileStorage) GetRecords(_ context.Context, username string) ([]record.FinancialRecord, error) {
	recs := s.records[username]
	res := make([]record.FinancialRecord, len(recs))
	copy(res, recs)
	return res, nil
}

// SaveRecords replaces the user's whole sequence and rewrites the records
// file with every user's rows.
func (s *FileStorage) SaveRecords(_ context.Context, username string, recs []record.FinancialRecord) error {
	s.records[username] = recs

	stored := make([]storedRecord, 0)
	for usr, userRecs := range s.records {
		for _, r := range userRecs {
			stored = append(stored, storedRecord{
				Username:    usr,
				Description: r.Description,
				Amount:      r.Amount,
				Category:    r.Category,
				RecordType:  string(r.Type),
				Date:        r.Date.Format(dateLayout),
			})
		}
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "save records")
	}
	return errors.Wrap(os.WriteFile(s.recordsFile, raw, 0600), "save records")
}
