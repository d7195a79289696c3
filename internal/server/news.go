package server

import (
	"github.com/leonelquinteros/gotext"

	"citysim/internal/event"
)

// newsDomain is the gettext domain of the city messages.
const newsDomain = "default"

// News is a translated city message.
type News struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Tick int    `json:"tick"`
}

// newsText translates message kinds. The message ids are the kind names;
// a kind without a translation reads as its id.
type newsText struct {
	loc *gotext.Locale
}

func newNewsText(dir, lang string) *newsText {
	loc := gotext.NewLocale(dir, lang)
	loc.AddDomain(newsDomain)
	return &newsText{loc: loc}
}

func (n *newsText) translate(m event.Message) News {
	return News{
		Kind: m.Kind.String(),
		Text: n.loc.GetD(newsDomain, m.Kind.String()),
		X:    m.X,
		Y:    m.Y,
		Tick: m.Tick,
	}
}
