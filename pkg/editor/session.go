package editor

import (
	"context"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/ctdf"
)

type RouteFinder interface {
	ListRouteVariants(ctx context.Context, lineNumber string) ([]ctdf.RouteVariant, error)
	ListStopsForRoute(ctx context.Context, line ctdf.SelectedLine) ([]ctdf.ScheduledArrival, error)
}

type GroupSaver interface {
	Upsert(ctx context.Context, group *ctdf.LineGroup) error
}

// Session owns one editor wizard and carries out the effects Update returns
type Session struct {
	state  State
	finder RouteFinder
	saver  GroupSaver
}

func NewSession(state State, finder RouteFinder, saver GroupSaver) *Session {
	return &Session{
		state:  state,
		finder: finder,
		saver:  saver,
	}
}

func (s *Session) State() State {
	return s.state
}

// Dispatch applies event and every event produced by the resulting effects, then returns the settled state
func (s *Session) Dispatch(ctx context.Context, event Event) State {
	queue := []Event{event}

	for len(queue) > 0 {
		var effects []Effect
		s.state, effects = Update(s.state, queue[0])
		queue = queue[1:]

		for _, effect := range effects {
			queue = append(queue, s.run(ctx, effect))
		}
	}

	return s.state
}

func (s *Session) run(ctx context.Context, effect Effect) Event {
	switch effect := effect.(type) {
	case FetchRoutes:
		routes, err := s.finder.ListRouteVariants(ctx, effect.LineNumber)
		if err != nil {
			log.Debug().Err(err).Str("line", effect.LineNumber).Msg("Route search failed")
			return RoutesFailed{LineNumber: effect.LineNumber, Err: err}
		}

		log.Debug().Str("line", effect.LineNumber).Int("routes", len(routes)).Msg("Route search")
		return RoutesLoaded{LineNumber: effect.LineNumber, Routes: routes}
	case FetchStops:
		stops, err := s.finder.ListStopsForRoute(ctx, effect.Line)
		if err != nil {
			return StopsFailed{LineID: effect.Line.ID, Err: err}
		}

		return StopsLoaded{LineID: effect.Line.ID, Stops: stops}
	case PersistGroup:
		group := effect.Group
		if err := s.saver.Upsert(ctx, &group); err != nil {
			return SaveFailed{Err: err}
		}

		log.Debug().Msgf("Saved group %# v", pretty.Formatter(group))
		return GroupSaved{}
	}

	return nil
}
