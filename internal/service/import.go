package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/logger"
	"github.com/sirupsen/logrus"
)

var errInvalidUpload = &domain.BadRequestError{Message: "invalid JSON file"}

// ImportSeries reads a JSON array of items and creates each one on its own.
// A failing item is counted and reported without stopping the import; a
// malformed document fails the whole call. Only the first MaxImportErrors
// failures are returned.
func (s *Service) ImportSeries(ctx context.Context, r io.Reader) (*domain.ImportResult, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.BadRequestError{Message: "file is required"}
		}
		return nil, errInvalidUpload
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errInvalidUpload
	}

	res := &domain.ImportResult{Errors: []domain.ImportError{}}
	fail := func(index int, reason string, details ...string) {
		res.Failed++
		if len(res.Errors) < domain.MaxImportErrors {
			res.Errors = append(res.Errors, domain.ImportError{Index: index, Reason: reason, Details: details})
		}
	}

	for index := 1; dec.More(); index++ {
		var item *domain.ImportItem
		if err := dec.Decode(&item); err != nil {
			return nil, errInvalidUpload
		}

		in, err := s.importInput(ctx, item)
		if err != nil {
			fail(index, domain.ImportReasonImport, err.Error())
			continue
		}
		if _, err := s.CreateSeries(ctx, in); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				details := make([]string, len(verr.Fields))
				for i, f := range verr.Fields {
					details[i] = f.Field + ": " + f.Message
				}
				fail(index, domain.ImportReasonValidation, details...)
				continue
			}
			fail(index, domain.ImportReasonImport, err.Error())
			continue
		}
		res.Success++
	}

	if _, err := dec.Token(); err != nil {
		return nil, errInvalidUpload
	}

	logger.Log.WithFields(logrus.Fields{
		"success": res.Success,
		"failed":  res.Failed,
	}).Info("series import finished")
	return res, nil
}

// importInput resolves the item's studio by name.
func (s *Service) importInput(ctx context.Context, item *domain.ImportItem) (domain.SeriesInput, error) {
	if item == nil {
		return domain.SeriesInput{}, errors.New("empty item")
	}
	if item.Studio == nil || strings.TrimSpace(item.Studio.Name) == "" {
		return domain.SeriesInput{}, errors.New("studio name is required")
	}
	st, err := s.repo.FindStudioByName(ctx, strings.TrimSpace(item.Studio.Name))
	if err != nil {
		if errors.Is(err, domain.ErrStudioNotFound) {
			return domain.SeriesInput{}, errors.New("studio not found: " + item.Studio.Name)
		}
		return domain.SeriesInput{}, err
	}
	return domain.SeriesInput{
		Title:    item.Title,
		Genre:    item.Genre,
		Seasons:  item.Seasons,
		Rating:   item.Rating,
		Year:     item.Year,
		Finished: item.Finished,
		StudioID: &st.ID,
	}, nil
}
