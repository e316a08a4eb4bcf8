package parity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"weekalarm/pkg/models"
)

// DefaultTimetableURL is the university timetable page carrying the
// current-week banner.
const DefaultTimetableURL = "https://edu.sfu-kras.ru/timetable?group=КИ23-16%2F1б+%282+подгруппа%29"

const fetchTimeout = 5 * time.Second

// weekBannerPattern matches the timetable banner, e.g. "Идёт чётная неделя"
// or "Идёт нечётная неделя" (spelling with either ё or е).
var weekBannerPattern = regexp.MustCompile(`(?i)Ид[её]т\s+(ч[её]тная|неч[её]тная)\s+неделя`)

// HTTPFetcher returns a FetchFunc that scrapes the week parity from the
// timetable page at the given URL. A slow or unreachable source fails the
// lookup after a few seconds rather than stalling the caller.
func HTTPFetcher(url string) FetchFunc {
	client := &http.Client{Timeout: fetchTimeout}

	return func(ctx context.Context) (models.WeekType, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return models.WeekAny, fmt.Errorf("failed to build timetable request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return models.WeekAny, fmt.Errorf("timetable request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return models.WeekAny, fmt.Errorf("timetable request returned status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return models.WeekAny, fmt.Errorf("failed to read timetable page: %w", err)
		}

		parity, ok := parseWeekBanner(string(body))
		if !ok {
			return models.WeekAny, fmt.Errorf("no week banner found on timetable page")
		}
		return parity, nil
	}
}

// parseWeekBanner extracts the week parity from the page text
func parseWeekBanner(page string) (models.WeekType, bool) {
	match := weekBannerPattern.FindStringSubmatch(page)
	if match == nil {
		return models.WeekAny, false
	}

	word := strings.ToLower(match[1])
	if strings.HasPrefix(word, "неч") {
		return models.WeekOdd, true
	}
	return models.WeekEven, true
}
