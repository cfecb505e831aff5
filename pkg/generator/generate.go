package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/travigo/timetable-maker/pkg/util"
)

// Generate walks a session through the wizard without prompting: it selects days, applies the nicknames
// keyed by date and collects. The returned state is in StepResults.
func Generate(ctx context.Context, session *Session, days []time.Time, nicknames map[string]string) (State, error) {
	state := session.Dispatch(ctx, Next{})
	if state.Step != StepSelectDays {
		return state, fmt.Errorf("cannot select days in step %s", state.Step)
	}

	seen := map[string]bool{}
	for _, day := range days {
		key := util.DateKey(day)
		if seen[key] {
			continue
		}
		seen[key] = true

		if !state.IsOffered(day) {
			return state, fmt.Errorf("day %s is not within the next %d days", key, OfferedDays)
		}
		if len(state.Selected) == MaxSelectedDays {
			return state, fmt.Errorf("at most %d days can be selected", MaxSelectedDays)
		}

		state = session.Dispatch(ctx, ToggleDay{Day: day})
	}

	state = session.Dispatch(ctx, Next{})
	if state.Step != StepNicknames {
		return state, fmt.Errorf("%s", state.Error)
	}

	for key, nickname := range nicknames {
		day, err := util.ParseDateKey(key, state.Location)
		if err != nil {
			return state, fmt.Errorf("invalid nickname day %q: %w", key, err)
		}
		if !state.IsSelected(day) {
			return state, fmt.Errorf("nickname given for %s which is not selected", key)
		}

		session.Dispatch(ctx, SetNickname{Day: day, Nickname: nickname})
	}

	return session.Dispatch(ctx, Next{}), nil
}

// ParseNicknames reads day=label pairs
func ParseNicknames(values []string) (map[string]string, error) {
	nicknames := map[string]string{}

	for _, value := range values {
		day, nickname, found := strings.Cut(value, "=")
		if !found || strings.TrimSpace(day) == "" {
			return nil, fmt.Errorf("nickname %q is not in day=label form", value)
		}

		nicknames[strings.TrimSpace(day)] = nickname
	}

	return nicknames, nil
}
