package reports

import (
	"context"
	"errors"

	"github.com/xuri/excelize/v2"

	"records-backend/internal/diary"
	"records-backend/internal/logbook"
)

// Service combines the profile store with the diary and log-book services to
// produce monthly report workbooks.
type Service struct {
	Profiles ProfileStore
	Diary    *diary.Service
	Logbook  *logbook.Service
}

// GetProfile returns the user's profile; users who never saved one get an
// empty default.
func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{UserID: userID}, nil
		}
		return Profile{}, err
	}
	return p, nil
}

// PutProfile saves the user's profile.
func (s *Service) PutProfile(ctx context.Context, p Profile) error {
	return s.Profiles.Put(ctx, p)
}

// DiaryWorkbook builds the monthly travel-diary report for the user.
func (s *Service) DiaryWorkbook(ctx context.Context, userID, month string) (*excelize.File, error) {
	entries, err := s.Diary.MonthEntries(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return DiaryWorkbook(p, month, entries)
}

// LogbookWorkbook builds the monthly log-book report for the user.
func (s *Service) LogbookWorkbook(ctx context.Context, userID, month string) (*excelize.File, error) {
	entries, err := s.Logbook.MonthEntries(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return LogbookWorkbook(p, month, entries)
}
