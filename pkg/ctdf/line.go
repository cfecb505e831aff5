package ctdf

type SelectedLine struct {
	ID          string `json:"id" bson:"id" groups:"basic,export"`
	ShortName   string `json:"short_name" bson:"short_name" groups:"basic,export"`
	LongName    string `json:"long_name" bson:"long_name" groups:"basic,export"`
	MarketCode  string `json:"mkt" bson:"mkt" groups:"basic,export"`
	Direction   string `json:"direction" bson:"direction" groups:"basic,export"`
	Alternative string `json:"alternative" bson:"alternative" groups:"basic,export"`
	Agency      string `json:"agency" bson:"agency" groups:"basic,export"`

	SelectedStop *SelectedStop `json:"selected_stop" bson:"selected_stop" validate:"required" groups:"basic,export"`
}

func (l SelectedLine) Identity() RouteIdentity {
	return RouteIdentity{
		MarketCode:  l.MarketCode,
		Direction:   l.Direction,
		Alternative: l.Alternative,
	}
}

func (l SelectedLine) HasStop() bool {
	return l.SelectedStop != nil
}
