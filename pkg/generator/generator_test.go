package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/prompt"
)

var testLocation = time.FixedZone("IST", 2*60*60)

var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, testLocation)

func day(offset int) time.Time {
	return time.Date(2025, 6, 10+offset, 0, 0, 0, 0, testLocation)
}

func at(dayOffset int, hour int, minute int) time.Time {
	return time.Date(2025, 6, 10+dayOffset, hour, minute, 0, 0, testLocation)
}

func testGroup() ctdf.LineGroup {
	return ctdf.LineGroup{
		ID:   "group-1",
		Name: "Work",
		Lines: []ctdf.SelectedLine{
			{ID: "10480-1-#", ShortName: "480", MarketCode: "10480", Direction: "1", Alternative: "#", SelectedStop: &ctdf.SelectedStop{Code: 5001}},
			{ID: "10018-2-#", ShortName: "18", MarketCode: "10018", Direction: "2", Alternative: "#", SelectedStop: &ctdf.SelectedStop{Code: 6001}},
		},
	}
}

type listCall struct {
	Line     string
	StopCode int
	Day      string
}

type fakeLister struct {
	mu       sync.Mutex
	calls    []listCall
	arrivals map[string][]ctdf.ScheduledArrival
	failures map[string]error
	delay    func(call listCall) time.Duration
}

func (f *fakeLister) ListArrivals(ctx context.Context, line ctdf.SelectedLine, stopCode int, day time.Time) ([]ctdf.ScheduledArrival, error) {
	call := listCall{Line: line.ShortName, StopCode: stopCode, Day: day.Format(time.DateOnly)}
	key := fmt.Sprintf("%s/%s", call.Line, call.Day)

	if f.delay != nil {
		time.Sleep(f.delay(call))
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if err := f.failures[key]; err != nil {
		return nil, err
	}

	return f.arrivals[key], nil
}

func ride(id int, line string, arrival time.Time) ctdf.ScheduledArrival {
	return ctdf.ScheduledArrival{ID: id, RouteShortName: line, ArrivalTime: arrival}
}

func TestOfferedDays(t *testing.T) {
	state := NewState(testGroup(), testNow, testLocation)

	require.Len(t, state.Days, OfferedDays)
	assert.Equal(t, day(0), state.Days[0])
	assert.Equal(t, day(6), state.Days[6])
}

func TestReviewEditRequestClosesFirst(t *testing.T) {
	state, effects := Update(NewState(testGroup(), testNow, testLocation), RequestEdit{})

	assert.Empty(t, effects)
	assert.Equal(t, StepClosed, state.Step)
	assert.True(t, state.EditRequested)
}

func selectDaysState() State {
	state, _ := Update(NewState(testGroup(), testNow, testLocation), Next{})
	return state
}

func TestToggleDaysKeepsChronologicalOrderAndLimit(t *testing.T) {
	state := selectDaysState()

	for _, offset := range []int{4, 0, 2, 1, 3} {
		state, _ = Update(state, ToggleDay{Day: day(offset)})
	}
	assert.Equal(t, []time.Time{day(0), day(1), day(2), day(3), day(4)}, state.Selected)

	state, _ = Update(state, ToggleDay{Day: day(5)})
	assert.Len(t, state.Selected, MaxSelectedDays, "a sixth day is a no-op")
	assert.False(t, state.IsSelected(day(5)))

	state, _ = Update(state, ToggleDay{Day: day(2)})
	assert.Equal(t, []time.Time{day(0), day(1), day(3), day(4)}, state.Selected)

	state, _ = Update(state, ToggleDay{Day: day(9)})
	assert.Len(t, state.Selected, 4, "days outside the offered week are ignored")
}

func TestSelectDaysRequiresOne(t *testing.T) {
	state, _ := Update(selectDaysState(), Next{})

	assert.Equal(t, StepSelectDays, state.Step)
	assert.Equal(t, noDaysMessage, state.Error)

	state, _ = Update(state, ToggleDay{Day: day(1)})
	state, _ = Update(state, Next{})
	assert.Equal(t, StepNicknames, state.Step)
}

func TestNicknamesDefaultToDate(t *testing.T) {
	state := selectDaysState()
	state, _ = Update(state, ToggleDay{Day: day(0)})
	state, _ = Update(state, ToggleDay{Day: day(1)})
	state, _ = Update(state, Next{})
	state, _ = Update(state, SetNickname{Day: day(1), Nickname: "Wednesday"})
	state, _ = Update(state, SetNickname{Day: day(3), Nickname: "ignored"})

	assert.Equal(t, "10.06", state.Nickname(day(0)))
	assert.Equal(t, "Wednesday", state.Nickname(day(1)))
	assert.Equal(t, "13.06", state.Nickname(day(3)))

	state, effects := Update(state, Next{})
	assert.Equal(t, StepCollecting, state.Step)
	require.Len(t, effects, 1)
	assert.Equal(t, []time.Time{day(0), day(1)}, effects[0].(Collect).Days)
}

func TestBlankNicknameFallsBackToDate(t *testing.T) {
	state := selectDaysState()
	state, _ = Update(state, ToggleDay{Day: day(0)})
	state, _ = Update(state, Next{})

	state, _ = Update(state, SetNickname{Day: day(0), Nickname: "  Tuesday "})
	assert.Equal(t, map[string]string{"2025-06-10": "Tuesday"}, state.Nicknames)

	state, _ = Update(state, SetNickname{Day: day(0), Nickname: "   "})
	assert.Empty(t, state.Nicknames)
	assert.Equal(t, "10.06", state.Nickname(day(0)))
}

func TestInteractiveNicknamesLeaveBlankUnset(t *testing.T) {
	state := selectDaysState()
	state, _ = Update(state, ToggleDay{Day: day(0)})
	state, _ = Update(state, ToggleDay{Day: day(1)})
	state, _ = Update(state, Next{})
	state, _ = Update(state, SetNickname{Day: day(0), Nickname: "Tuesday"})

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("\n\n3\n"), &out)
	session := NewSession(state, &fakeLister{}, 1)

	final, err := RunInteractive(context.Background(), p, session, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, StepClosed, final.Step)
	assert.Equal(t, map[string]string{"2025-06-10": "Tuesday"}, final.Nicknames)
	assert.Equal(t, "11.06", final.Nickname(day(1)))
	assert.Contains(t, out.String(), "[Tuesday]")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 100, Percent(0, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(3, 3))
}

func TestCollectIssuesRequestsDayThenLine(t *testing.T) {
	lister := &fakeLister{}
	collector := &Collector{Lister: lister, Workers: 1}

	var progress []int
	result := collector.Collect(context.Background(), testGroup(), []time.Time{day(0), day(1)}, func(percent int) {
		progress = append(progress, percent)
	})

	assert.Equal(t, []listCall{
		{Line: "480", StopCode: 5001, Day: "2025-06-10"},
		{Line: "18", StopCode: 6001, Day: "2025-06-10"},
		{Line: "480", StopCode: 5001, Day: "2025-06-11"},
		{Line: "18", StopCode: 6001, Day: "2025-06-11"},
	}, lister.calls)
	assert.Equal(t, []int{25, 50, 75, 100}, progress)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 4, result.Completed)
}

func TestCollectSkipsLinesWithoutStop(t *testing.T) {
	group := testGroup()
	group.Lines[1].SelectedStop = nil
	lister := &fakeLister{}

	var progress []int
	result := (&Collector{Lister: lister}).Collect(context.Background(), group, []time.Time{day(0)}, func(percent int) {
		progress = append(progress, percent)
	})

	assert.Len(t, lister.calls, 1)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []int{50, 100}, progress)
}

func TestCollectIsolatesFailures(t *testing.T) {
	lister := &fakeLister{
		arrivals: map[string][]ctdf.ScheduledArrival{
			"18/2025-06-10": {ride(2, "18", at(0, 8, 0))},
		},
		failures: map[string]error{
			"480/2025-06-10": errors.New("HTTP 500"),
		},
	}

	result := (&Collector{Lister: lister}).Collect(context.Background(), testGroup(), []time.Time{day(0)}, nil)

	assert.Len(t, result.Arrivals, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "line 480 on 2025-06-10: HTTP 500", result.Errors[0].Error())
}

func TestCollectWithWorkersKeepsSequentialOrder(t *testing.T) {
	arrivals := map[string][]ctdf.ScheduledArrival{}
	id := 0
	for offset := 0; offset < 3; offset++ {
		for _, line := range []string{"480", "18"} {
			id++
			arrivals[fmt.Sprintf("%s/%s", line, day(offset).Format(time.DateOnly))] = []ctdf.ScheduledArrival{ride(id, line, at(offset, 10, 0))}
		}
	}

	lister := &fakeLister{
		arrivals: arrivals,
		// the earliest requests finish last
		delay: func(call listCall) time.Duration {
			if call.Day == "2025-06-10" {
				return 20 * time.Millisecond
			}
			return 0
		},
	}

	var mu sync.Mutex
	var progress []int
	result := (&Collector{Lister: lister, Workers: 4}).Collect(context.Background(), testGroup(), []time.Time{day(0), day(1), day(2)}, func(percent int) {
		mu.Lock()
		defer mu.Unlock()
		progress = append(progress, percent)
	})

	ids := make([]int, 0, len(result.Arrivals))
	for _, arrival := range result.Arrivals {
		ids = append(ids, arrival.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids)
	assert.IsNonDecreasing(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestBucketUsesServiceDay(t *testing.T) {
	arrivals := []ctdf.ScheduledArrival{
		ride(1, "480", at(0, 14, 0)),
		ride(2, "18", at(0, 6, 30)),
		ride(3, "480", at(1, 1, 30)), // after midnight, still the first service day
		ride(4, "480", at(1, 3, 0)),
		ride(5, "18", at(0, 2, 59)), // previous service day
		ride(6, "18", at(0, 6, 30)),
	}

	timetables := Bucket(arrivals, []time.Time{day(0), day(1), day(2)}, testLocation)
	require.Len(t, timetables, 3)

	ids := func(timetable ctdf.TimetableData) []int {
		var result []int
		for _, ride := range timetable.Rides {
			result = append(result, ride.ID)
		}
		return result
	}

	assert.Equal(t, []int{2, 6, 1, 3}, ids(timetables[0]), "sorted by time, ties keep collection order")
	assert.Equal(t, []int{4}, ids(timetables[1]))
	assert.Empty(t, timetables[2].Rides)
	assert.NotNil(t, timetables[2].Rides)
}

func TestBucketKeepsArrivalsOnDaylightSavingDay(t *testing.T) {
	location, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	springForward := time.Date(2027, time.March, 26, 0, 0, 0, 0, location)
	arrivals := []ctdf.ScheduledArrival{
		ride(1, "480", time.Date(2027, time.March, 26, 3, 30, 0, 0, location)),
		ride(2, "480", time.Date(2027, time.March, 26, 3, 0, 0, 0, location)),
		ride(3, "18", time.Date(2027, time.March, 27, 2, 30, 0, 0, location)),
		ride(4, "18", time.Date(2027, time.March, 26, 1, 30, 0, 0, location)),
	}

	timetables := Bucket(arrivals, []time.Time{springForward}, location)
	require.Len(t, timetables, 1)

	var ids []int
	for _, ride := range timetables[0].Rides {
		ids = append(ids, ride.ID)
	}
	assert.Equal(t, []int{2, 1, 3}, ids)
}

func TestSessionCollectsIntoResults(t *testing.T) {
	lister := &fakeLister{
		arrivals: map[string][]ctdf.ScheduledArrival{
			"480/2025-06-10": {ride(1, "480", at(0, 9, 0)), ride(2, "480", at(0, 7, 0))},
			"18/2025-06-10":  {ride(3, "18", at(0, 8, 0))},
			"18/2025-06-12":  {ride(4, "18", at(2, 8, 0))},
		},
		failures: map[string]error{
			"480/2025-06-12": errors.New("HTTP 502"),
		},
	}

	session := NewSession(NewState(testGroup(), testNow, testLocation), lister, 2)

	var progress []int
	session.OnChange = func(state State) {
		if state.Step == StepCollecting {
			progress = append(progress, state.Progress)
		}
	}

	state, err := Generate(context.Background(), session, []time.Time{day(2), day(0)}, map[string]string{"2025-06-12": "Thursday"})
	require.NoError(t, err)

	assert.Equal(t, StepResults, state.Step)
	assert.Equal(t, 100, state.Progress)
	assert.IsNonDecreasing(t, progress)

	require.Len(t, state.Timetables, 2)
	assert.Equal(t, "10.06", state.Timetables[0].Nickname)
	assert.Equal(t, 3, state.Timetables[0].RideCount())
	assert.Equal(t, 2, state.Timetables[0].Rides[0].ID)
	assert.Equal(t, "Thursday", state.Timetables[1].Nickname)
	assert.Equal(t, 1, state.Timetables[1].RideCount())

	assert.Equal(t, "line 480 on 2025-06-12: HTTP 502", state.ErrorMessage())

	closed := session.Dispatch(context.Background(), Close{})
	assert.True(t, closed.Done())
}

func TestGenerateRejectsDaysOutsideWindow(t *testing.T) {
	session := NewSession(NewState(testGroup(), testNow, testLocation), &fakeLister{}, 1)

	_, err := Generate(context.Background(), session, []time.Time{day(8)}, nil)
	assert.ErrorContains(t, err, "not within the next 7 days")
}

func TestGenerateRejectsTooManyDays(t *testing.T) {
	session := NewSession(NewState(testGroup(), testNow, testLocation), &fakeLister{}, 1)

	_, err := Generate(context.Background(), session, []time.Time{day(0), day(1), day(2), day(3), day(4), day(5)}, nil)
	assert.ErrorContains(t, err, "at most 5 days")
}

func TestParseNicknames(t *testing.T) {
	nicknames, err := ParseNicknames([]string{"2025-06-10=Tuesday", "2025-06-11=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2025-06-10": "Tuesday", "2025-06-11": "a=b"}, nicknames)

	_, err = ParseNicknames([]string{"Tuesday"})
	assert.Error(t, err)
}
