package ctdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute(mkt string, direction string, alternative string) RouteVariant {
	return RouteVariant{
		ShortName:   "480",
		LongName:    "Tel Aviv-Jerusalem",
		MarketCode:  mkt,
		Direction:   direction,
		Alternative: alternative,
		Agency:      "Egged",
	}
}

func TestRouteVariantSelectedLine(t *testing.T) {
	line := testRoute("1234", "1", "0").SelectedLine()

	assert.Equal(t, "1234-1-0", line.ID)
	assert.Equal(t, "480", line.ShortName)
	assert.Equal(t, "Egged", line.Agency)
	assert.Nil(t, line.SelectedStop)
}

func TestAddLineRejectsDuplicateIdentity(t *testing.T) {
	group := NewLineGroup("Home→Work")

	assert.True(t, group.AddLine(testRoute("1234", "1", "0").SelectedLine()))
	assert.True(t, group.AddLine(testRoute("1234", "2", "0").SelectedLine()))

	duplicate := testRoute("1234", "1", "0").SelectedLine()
	duplicate.LongName = "different display name, same variant"
	assert.False(t, group.AddLine(duplicate))

	assert.Len(t, group.Lines, 2)
}

func TestAddLineDerivesMissingID(t *testing.T) {
	group := NewLineGroup("g")
	group.AddLine(SelectedLine{MarketCode: "1", Direction: "2", Alternative: "#"})

	assert.Equal(t, "1-2-#", group.Lines[0].ID)
}

func TestRemoveLine(t *testing.T) {
	group := NewLineGroup("g")
	group.AddLine(testRoute("1", "1", "0").SelectedLine())
	group.AddLine(testRoute("2", "1", "0").SelectedLine())

	assert.True(t, group.RemoveLine("1-1-0"))
	assert.False(t, group.RemoveLine("1-1-0"))
	require.Len(t, group.Lines, 1)
	assert.Equal(t, "2-1-0", group.Lines[0].ID)
}

func TestIsTimetableReady(t *testing.T) {
	group := NewLineGroup("g")
	assert.True(t, group.IsTimetableReady(), "an empty group has no line missing a stop")

	group.AddLine(testRoute("1", "1", "0").SelectedLine())
	group.AddLine(testRoute("2", "1", "0").SelectedLine())
	assert.False(t, group.IsTimetableReady())

	group.SetStop("1-1-0", SelectedStop{Code: 5001, Name: "Central"})
	assert.False(t, group.IsTimetableReady())

	group.SetStop("2-1-0", SelectedStop{Code: 5002, Name: "Arlozorov"})
	assert.True(t, group.IsTimetableReady())
}

func TestSetStopDoesNotShareBackingArray(t *testing.T) {
	group := NewLineGroup("g")
	group.AddLine(testRoute("1", "1", "0").SelectedLine())

	before := group.Lines
	group.SetStop("1-1-0", SelectedStop{Code: 1})

	assert.Nil(t, before[0].SelectedStop)
	assert.NotNil(t, group.Lines[0].SelectedStop)
	assert.False(t, group.SetStop("missing", SelectedStop{Code: 1}))
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		group := NewLineGroup("Home→Work")
		group.AddLine(testRoute("1234", "1", "0").SelectedLine())
		group.SetStop("1234-1-0", SelectedStop{Code: 5001})

		assert.NoError(t, group.Validate())
	})

	t.Run("blank name", func(t *testing.T) {
		group := NewLineGroup("   ")

		err := group.Validate()
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "group name is required")
	})

	t.Run("missing stop names the line", func(t *testing.T) {
		group := NewLineGroup("g")
		group.AddLine(testRoute("1", "1", "0").SelectedLine())
		group.SetStop("1-1-0", SelectedStop{Code: 1})
		second := testRoute("2", "1", "0")
		second.ShortName = "18"
		group.AddLine(second.SelectedLine())

		err := group.Validate()
		require.Error(t, err)

		var validationError *ValidationError
		require.ErrorAs(t, err, &validationError)
		require.Len(t, validationError.Problems, 1)
		assert.Contains(t, validationError.Problems[0], "line 18")
	})

	t.Run("both problems", func(t *testing.T) {
		group := NewLineGroup("")
		group.AddLine(testRoute("1", "1", "0").SelectedLine())

		var validationError *ValidationError
		require.ErrorAs(t, group.Validate(), &validationError)
		assert.Len(t, validationError.Problems, 2)
	})
}

func TestUniqueStopsKeepsFirstOccurrence(t *testing.T) {
	arrivals := []ScheduledArrival{
		{ID: 1, StopCode: 10, StopName: "A"},
		{ID: 2, StopCode: 20, StopName: "B"},
		{ID: 3, StopCode: 10, StopName: "A again"},
		{ID: 4, StopCode: 30, StopName: "C"},
	}

	unique := UniqueStops(arrivals)

	require.Len(t, unique, 3)
	assert.Equal(t, []int{1, 2, 4}, []int{unique[0].ID, unique[1].ID, unique[2].ID})
	assert.Equal(t, SelectedStop{Code: 10, Name: "A"}, unique[0].SelectedStop())
}

func TestUniqueRouteVariants(t *testing.T) {
	routes := []RouteVariant{
		testRoute("1", "1", "0"),
		testRoute("1", "2", "0"),
		testRoute("1", "1", "0"),
	}

	assert.Len(t, UniqueRouteVariants(routes), 2)
}
