package gosocial

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// BatchItem is one successful batch generation.
type BatchItem struct {
	Theme  string
	Result GenerationResult
}

// FilterThemes drops themes that are empty after trimming. Kept themes are
// returned unchanged.
func FilterThemes(themes []string) []string {
	out := make([]string, 0, len(themes))
	for _, t := range themes {
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	return out
}

// ProcessBatch generates content for each theme in order, one request at
// a time. Failed themes are logged and skipped. Results are not recorded
// in history. A cancelled context stops the loop and is returned with the
// items collected so far.
func (s *Studio) ProcessBatch(ctx context.Context, themes []string) ([]BatchItem, error) {
	valid := FilterThemes(themes)
	if len(valid) == 0 {
		return nil, nil
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	lang, tone := s.Settings()
	items := make([]BatchItem, 0, len(valid))

	for i, theme := range valid {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		res, _, err := s.request(ctx, theme, lang, tone)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"theme": theme,
				"index": i,
			}).WithError(err).Debug("batch item failed")
			continue
		}
		items = append(items, BatchItem{Theme: theme, Result: res})
	}

	s.logger.WithFields(logrus.Fields{
		"requested": len(valid),
		"succeeded": len(items),
	}).Info("batch finished")
	return items, nil
}
