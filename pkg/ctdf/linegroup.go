package ctdf

import (
	"github.com/google/uuid"
	"github.com/travigo/timetable-maker/pkg/util"
	"golang.org/x/exp/slices"
)

// LineGroup is a user defined named set of route variant + boarding stop pairs
type LineGroup struct {
	ID    string         `json:"id" bson:"id" groups:"basic,export"`
	Name  string         `json:"name" bson:"name" validate:"notblank" groups:"basic,export"`
	Lines []SelectedLine `json:"lines" bson:"lines" validate:"dive" groups:"basic,export"`
}

func NewLineGroup(name string) *LineGroup {
	return &LineGroup{
		ID:    uuid.NewString(),
		Name:  name,
		Lines: []SelectedLine{},
	}
}

func (g *LineGroup) lineIndex(id string) int {
	return slices.IndexFunc(g.Lines, func(l SelectedLine) bool { return l.ID == id })
}

func (g *LineGroup) HasLine(id string) bool {
	return g.lineIndex(id) > -1
}

func (g *LineGroup) Line(id string) (SelectedLine, bool) {
	index := g.lineIndex(id)
	if index == -1 {
		return SelectedLine{}, false
	}

	return g.Lines[index], true
}

// AddLine appends the line unless one with the same route identity is already in the group
func (g *LineGroup) AddLine(line SelectedLine) bool {
	if line.ID == "" {
		line.ID = line.Identity().ID()
	}
	if g.HasLine(line.ID) {
		return false
	}

	g.Lines = append(slices.Clip(g.Lines), line)

	return true
}

func (g *LineGroup) RemoveLine(id string) bool {
	if !g.HasLine(id) {
		return false
	}

	g.Lines = util.Filter(g.Lines, func(l SelectedLine) bool { return l.ID != id })

	return true
}

func (g *LineGroup) SetStop(lineID string, stop SelectedStop) bool {
	index := g.lineIndex(lineID)
	if index == -1 {
		return false
	}

	lines := slices.Clone(g.Lines)
	lines[index].SelectedStop = &stop
	g.Lines = lines

	return true
}

// IsTimetableReady reports whether every line has a boarding stop
func (g *LineGroup) IsTimetableReady() bool {
	for _, line := range g.Lines {
		if !line.HasStop() {
			return false
		}
	}

	return true
}

func (g *LineGroup) Validate() error {
	if err := groupValidator.Struct(g); err != nil {
		return validationErrorFor(g, err)
	}

	return nil
}
