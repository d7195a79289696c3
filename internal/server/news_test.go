package server

import (
	"os"
	"path/filepath"
	"testing"

	"citysim/internal/event"
)

const testPo = `msgid ""
msgstr ""
"Language: de_DE\n"
"Content-Type: text/plain; charset=UTF-8\n"

msgid "need_power"
msgstr "Mehr Kraftwerke benötigt."
`

func TestNewsTranslates(t *testing.T) {
	dir := t.TempDir()
	msgs := filepath.Join(dir, "de_DE", "LC_MESSAGES")
	if err := os.MkdirAll(msgs, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(msgs, "default.po"), []byte(testPo), 0o644); err != nil {
		t.Fatal(err)
	}

	n := newNewsText(dir, "de_DE")
	got := n.translate(event.Message{Kind: event.NeedPower, X: -1, Y: -1, Tick: 12})
	want := News{Kind: "need_power", Text: "Mehr Kraftwerke benötigt.", X: -1, Y: -1, Tick: 12}
	if got != want {
		t.Errorf("translate = %+v, want %+v", got, want)
	}

	// No translation: the id stands in.
	if got := n.translate(event.Message{Kind: event.HighCrime}); got.Text != "high_crime" {
		t.Errorf("untranslated text = %q", got.Text)
	}
}

func TestNewsMissingCatalog(t *testing.T) {
	n := newNewsText(t.TempDir(), "xx_XX")
	if got := n.translate(event.Message{Kind: event.FireReported}); got.Text != "fire" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestShippedCatalogCoversEveryKind(t *testing.T) {
	n := newNewsText("../../locales", "en_US")
	for k := event.NeedPower; k <= event.ReachedMegalopolis; k++ {
		if got := n.translate(event.Message{Kind: k}); got.Text == k.String() {
			t.Errorf("%v has no English text", k)
		}
	}
}
