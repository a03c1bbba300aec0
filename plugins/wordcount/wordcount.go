// Package wordcount keeps a word count of the document in the status bar.
package wordcount

import (
	"strconv"
	"unicode"

	"github.com/bethropolis/rawedit/internal/event"
	"github.com/bethropolis/rawedit/internal/plugin"
	"github.com/rivo/uniseg"
)

var _ plugin.Plugin = (*WordCount)(nil)

// StatusField is the status bar field the count is shown in.
const StatusField = "words"

// WordCount recounts after every diff pass that changed the text.
type WordCount struct {
	api   plugin.EditorAPI
	count int
}

func New() plugin.Plugin {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "wordcount"
}

func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	api.SubscribeEvent(event.TypeFullContentUpdate, p.handleContentUpdate)
	p.update()
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

// Count returns the last computed count.
func (p *WordCount) Count() int {
	return p.count
}

func (p *WordCount) handleContentUpdate(e event.Event) bool {
	p.update()
	return false
}

func (p *WordCount) update() {
	p.count = CountWords(p.api.Text())
	p.api.SetStatusField(StatusField, strconv.Itoa(p.count))
}

// CountWords counts Unicode words: word segments holding a letter or digit.
func CountWords(text string) int {
	count := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				count++
				break
			}
		}
	}
	return count
}
