package state

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/models"
)

// recorder собирает все уведомления подписчика
type recorder struct {
	calls [][]models.Document
}

func (r *recorder) listen(docs []models.Document) {
	r.calls = append(r.calls, docs)
}

func (r *recorder) last() []models.Document {
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func ids(docs []models.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID())
	}
	sort.Strings(out)
	return out
}

func TestProjection_Subscribe_DeliversSnapshot(t *testing.T) {
	p := New()
	p.Put("todos", models.Document{"id": "1", "title": "a"})

	rec := &recorder{}
	unsubscribe := p.Subscribe("todos", rec.listen)
	defer unsubscribe()

	require.Len(t, rec.calls, 1, "subscribe must deliver current snapshot immediately")
	assert.Equal(t, []string{"1"}, ids(rec.last()))
}

func TestProjection_Subscribe_EmptyCollection(t *testing.T) {
	p := New()
	rec := &recorder{}
	p.Subscribe("todos", rec.listen)

	require.Len(t, rec.calls, 1)
	assert.Empty(t, rec.last())
}

func TestProjection_MutationsNotify(t *testing.T) {
	p := New()
	rec := &recorder{}
	p.Subscribe("todos", rec.listen)

	p.Put("todos", models.Document{"id": "1", "title": "a"})
	require.Len(t, rec.calls, 2)
	assert.Equal(t, []string{"1"}, ids(rec.last()))

	found := p.Patch("todos", "1", models.Document{"title": "b"})
	require.True(t, found)
	require.Len(t, rec.calls, 3)
	assert.Equal(t, "b", rec.last()[0]["title"])

	removed := p.Remove("todos", "1")
	require.True(t, removed)
	require.Len(t, rec.calls, 4)
	assert.Empty(t, rec.last())

	p.SetAll("todos", []models.Document{{"id": "x"}, {"id": "y"}})
	require.Len(t, rec.calls, 5)
	assert.Equal(t, []string{"x", "y"}, ids(rec.last()))
}

func TestProjection_Patch_AbsentIsSilent(t *testing.T) {
	p := New()
	rec := &recorder{}
	p.Subscribe("todos", rec.listen)

	found := p.Patch("todos", "missing", models.Document{"title": "b"})

	assert.False(t, found)
	assert.Len(t, rec.calls, 1, "no notification for patch of absent id")
	_, ok := p.Get("todos", "missing")
	assert.False(t, ok)
}

func TestProjection_Patch_KeepsID(t *testing.T) {
	p := New()
	p.Put("todos", models.Document{"id": "1", "title": "a"})

	p.Patch("todos", "1", models.Document{"id": "2", "title": "b"})

	doc, ok := p.Get("todos", "1")
	require.True(t, ok)
	assert.Equal(t, models.Document{"id": "1", "title": "b"}, doc)
}

func TestProjection_Remove_AbsentIsSilent(t *testing.T) {
	p := New()
	rec := &recorder{}
	p.Subscribe("todos", rec.listen)

	assert.False(t, p.Remove("todos", "missing"))
	assert.Len(t, rec.calls, 1)
}

func TestProjection_CollectionsAreIsolated(t *testing.T) {
	p := New()
	todos := &recorder{}
	notes := &recorder{}
	p.Subscribe("todos", todos.listen)
	p.Subscribe("notes", notes.listen)

	p.Put("todos", models.Document{"id": "1"})

	assert.Len(t, todos.calls, 2)
	assert.Len(t, notes.calls, 1)
	assert.Empty(t, p.List("notes"))
	assert.Equal(t, 1, p.Size("todos"))
	assert.Equal(t, 0, p.Size("unknown"))
}

func TestProjection_Unsubscribe(t *testing.T) {
	p := New()
	first := &recorder{}
	second := &recorder{}
	unsubscribe := p.Subscribe("todos", first.listen)
	p.Subscribe("todos", second.listen)

	unsubscribe()
	unsubscribe() // повторный вызов безопасен

	p.Put("todos", models.Document{"id": "1"})

	assert.Len(t, first.calls, 1)
	assert.Len(t, second.calls, 2)
}

func TestProjection_NotifiesInSubscriptionOrder(t *testing.T) {
	p := New()
	var order []string
	p.Subscribe("todos", func([]models.Document) { order = append(order, "a") })
	p.Subscribe("todos", func([]models.Document) { order = append(order, "b") })
	order = nil

	p.Put("todos", models.Document{"id": "1"})

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestProjection_ListenerMayReenter(t *testing.T) {
	p := New()
	var seen int
	p.Subscribe("todos", func(docs []models.Document) {
		// Чтение из подписчика не должно блокироваться
		seen = len(p.List("todos"))
	})

	p.Put("todos", models.Document{"id": "1"})
	assert.Equal(t, 1, seen)
}

func TestProjection_ReturnsCopies(t *testing.T) {
	p := New()
	original := models.Document{"id": "1", "title": "a"}
	p.Put("todos", original)

	// Изменение исходного документа не влияет на проекцию
	original["title"] = "changed"
	doc, _ := p.Get("todos", "1")
	assert.Equal(t, "a", doc["title"])

	// Изменение полученного документа тоже
	doc["title"] = "changed"
	again, _ := p.Get("todos", "1")
	assert.Equal(t, "a", again["title"])

	list := p.List("todos")
	list[0]["title"] = "changed"
	again, _ = p.Get("todos", "1")
	assert.Equal(t, "a", again["title"])
}

func TestProjection_Drop(t *testing.T) {
	p := New()
	rec := &recorder{}
	p.Subscribe("todos", rec.listen)
	p.Put("todos", models.Document{"id": "1"})

	p.Drop("todos")

	assert.Empty(t, p.List("todos"))
	p.Put("todos", models.Document{"id": "2"})
	assert.Len(t, rec.calls, 2, "dropped subscribers receive nothing")
}
