package clinic

import (
	"context"
	"fmt"
	"strconv"
)

const tokenDayFormat = "20060102"

// IssueToken assigns the next display token for the doctor's current
// calendar day, formatted TK001, TK002, … The sequence key embeds the day,
// so it resets implicitly at midnight without a rollover job; callers that
// persist the token alongside long-lived records should keep the returned
// day with it, since the token alone repeats across days.
//
// The increment is a read-modify-write against the store. Two concurrent
// issuers can read the same counter and hand out the same token; that
// lost-update window is accepted, matching the rest of the core.
func (s *Service) IssueToken(ctx context.Context, doctorID string) (token, day string, err error) {
	day = s.now().Format(tokenDayFormat)
	key := tokenSeqKey(doctorID, day)

	// The counter is stored as a string to match the persisted layout.
	var raw string
	if _, err := s.store.Get(ctx, key, &raw); err != nil {
		return "", "", fmt.Errorf("load token sequence: %w", err)
	}

	seq := 0
	if raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return "", "", fmt.Errorf("corrupt token sequence %q at %s: %w", raw, key, convErr)
		}
		seq = n
	}
	seq++

	if err := s.store.Set(ctx, key, strconv.Itoa(seq)); err != nil {
		return "", "", fmt.Errorf("save token sequence: %w", err)
	}

	return fmt.Sprintf("TK%03d", seq), day, nil
}
