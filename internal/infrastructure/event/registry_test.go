package event

import (
	"context"
	"testing"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

type stubHandler struct {
	name  string
	types []string
}

func (h *stubHandler) Handle(ctx context.Context, evt shared.DomainEvent) error { return nil }
func (h *stubHandler) EventTypes() []string                                      { return h.types }

func TestHandlerRegistry_Register(t *testing.T) {
	t.Run("typed handlers in subscription order", func(t *testing.T) {
		r := NewHandlerRegistry()
		first := &stubHandler{name: "first"}
		second := &stubHandler{name: "second"}
		r.Register(first, "ReservationCreated")
		r.Register(second, "ReservationCreated", "PickConfirmed")

		assert.Equal(t, []shared.EventHandler{first, second}, r.HandlersFor("ReservationCreated"))
		assert.Equal(t, []shared.EventHandler{second}, r.HandlersFor("PickConfirmed"))
		assert.Empty(t, r.HandlersFor("QAStatusChanged"))
	})

	t.Run("wildcard handlers follow typed ones", func(t *testing.T) {
		r := NewHandlerRegistry()
		all := &stubHandler{name: "all"}
		typed := &stubHandler{name: "typed"}
		r.Register(all)
		r.Register(typed, "PickConfirmed")

		assert.Equal(t, []shared.EventHandler{typed, all}, r.HandlersFor("PickConfirmed"))
		assert.Equal(t, []shared.EventHandler{all}, r.HandlersFor("ReservationReleased"))
	})

	t.Run("duplicate registration is ignored", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := &stubHandler{}
		r.Register(h, "PickConfirmed")
		r.Register(h, "PickConfirmed")
		r.Register(h)
		r.Register(h)

		assert.Len(t, r.HandlersFor("PickConfirmed"), 2)
		assert.Equal(t, 1, r.Len())
	})
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	r := NewHandlerRegistry()
	keep := &stubHandler{name: "keep"}
	drop := &stubHandler{name: "drop"}
	r.Register(keep, "ReservationCreated")
	r.Register(drop, "ReservationCreated", "PickConfirmed")
	r.Register(drop)

	r.Unregister(drop)

	assert.Equal(t, []shared.EventHandler{keep}, r.HandlersFor("ReservationCreated"))
	assert.Empty(t, r.HandlersFor("PickConfirmed"))
	assert.Equal(t, 1, r.Len())
}

func TestHandlerRegistry_HandlersForReturnsCopy(t *testing.T) {
	r := NewHandlerRegistry()
	h := &stubHandler{}
	r.Register(h, "PickConfirmed")

	got := r.HandlersFor("PickConfirmed")
	got[0] = &stubHandler{name: "other"}

	assert.Same(t, h, r.HandlersFor("PickConfirmed")[0])
}
