// Package closingid derives the deterministic id for a daily closing.
//
// The id is {BRANCH_PREFIX}{DDMMYY}CR, e.g. "CANTT290126CR" for the
// Cantt branch on 29 Jan 2026. One closing exists per branch per day,
// so recomputing the id for the same branch and date always yields the
// same value.
package closingid

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
)

const suffix = "CR"

// Make builds the closing id for a branch and calendar date.
func Make(branch enum.Branch, date time.Time) string {
	return branch.Prefix() + date.Format("020106") + suffix
}

// Parse splits a closing id back into branch and date. Used when an
// archived closing is fetched by id alone.
func Parse(id string) (enum.Branch, time.Time, error) {
	if !strings.HasSuffix(id, suffix) {
		return "", time.Time{}, fmt.Errorf("closingid: %q missing %s suffix", id, suffix)
	}
	body := strings.TrimSuffix(id, suffix)

	var branch enum.Branch
	for _, b := range enum.Branches {
		if strings.HasPrefix(body, b.Prefix()) {
			branch = b
			body = strings.TrimPrefix(body, b.Prefix())
			break
		}
	}
	if branch == "" {
		return "", time.Time{}, fmt.Errorf("closingid: %q has no known branch prefix", id)
	}

	date, err := time.Parse("020106", body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("closingid: %q has invalid date part: %w", id, err)
	}
	return branch, date, nil
}
