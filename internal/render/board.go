package render

import (
	"sync"
)

type propKey struct {
	id   FieldID
	name string
}

// Board is an in-memory Surface. The terminal UI draws the scoreboard from it. Version
// increases with every write so readers can tell when anything changed.
type Board struct {
	mu      *sync.RWMutex
	text    map[FieldID]string
	images  map[FieldID]string
	styles  map[propKey]string
	attrs   map[propKey]string
	regions map[RegionID]any
	version uint64
}

func NewBoard() *Board {
	return &Board{
		mu:      &sync.RWMutex{},
		text:    map[FieldID]string{},
		images:  map[FieldID]string{},
		styles:  map[propKey]string{},
		attrs:   map[propKey]string{},
		regions: map[RegionID]any{},
	}
}

func (b *Board) Text(id FieldID) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.text[id]
}

func (b *Board) SetText(id FieldID, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text[id] = value
	b.version++
}

func (b *Board) Image(id FieldID) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.images[id]
}

func (b *Board) SetImage(id FieldID, src string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.images[id] = src
	b.version++
}

func (b *Board) Style(id FieldID, property string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.styles[propKey{id: id, name: property}]
}

func (b *Board) SetStyle(id FieldID, property string, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.styles[propKey{id: id, name: property}] = value
	b.version++
}

func (b *Board) Attr(id FieldID, name string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.attrs[propKey{id: id, name: name}]
}

func (b *Board) SetAttr(id FieldID, name string, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attrs[propKey{id: id, name: name}] = value
	b.version++
}

func (b *Board) ReplaceRegion(id RegionID, content any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.regions[id] = content
	b.version++
}

// Visible reports whether a toggled field is shown.
func (b *Board) Visible(id FieldID) bool {
	return b.Style(id, StyleDisplay) == DisplayBlock
}

func (b *Board) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.version
}

// Region returns the content of a region as T. The zero value is returned when the region
// is unset or holds another type.
func Region[T any](board *Board, id RegionID) (T, bool) {
	board.mu.RLock()
	defer board.mu.RUnlock()

	value, found := board.regions[id].(T)

	return value, found
}
