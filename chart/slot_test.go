package chart

import (
	"errors"
	"testing"

	"github.com/moyoez/statusboard/types"
)

// recordingRenderer checks that the slot released the previous drawable before asking for a new one.
type recordingRenderer struct {
	last          *Drawable
	calls         int
	leaked        bool
	failNext      bool
	renderedCount []types.Counts
}

func (r *recordingRenderer) RenderCounts(c types.Counts) (*Drawable, error) {
	r.calls++
	if r.last != nil && !r.last.Released() {
		r.leaked = true
	}
	if r.failNext {
		r.failNext = false
		return nil, errors.New("boom")
	}
	r.renderedCount = append(r.renderedCount, c)
	r.last = &Drawable{contentType: "image/png", data: []byte{byte(c.Success), byte(c.Failed)}}
	return r.last, nil
}

func TestSlotReleasesPreviousFirst(t *testing.T) {
	rr := &recordingRenderer{}
	slot := NewSlot(rr)

	if redrawn, err := slot.Update(types.Counts{}); err != nil || !redrawn {
		t.Fatalf("first Update = %v, %v", redrawn, err)
	}
	first, gen := slot.Current()
	if gen != 1 {
		t.Errorf("generation = %d, want 1", gen)
	}

	if _, err := slot.Update(types.Counts{Success: 1}); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if rr.leaked {
		t.Error("previous drawable was still live when the next one was built")
	}
	if !first.Released() {
		t.Error("first drawable not released")
	}
	current, gen := slot.Current()
	if current == first || gen != 2 {
		t.Errorf("expected a new drawable at generation 2, got gen %d", gen)
	}
}

func TestSlotSkipsUnchangedCounts(t *testing.T) {
	rr := &recordingRenderer{}
	slot := NewSlot(rr)
	c := types.Counts{Success: 2, Failed: 1}

	_, _ = slot.Update(c)
	redrawn, err := slot.Update(c)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if redrawn || rr.calls != 1 {
		t.Errorf("expected no redraw, redrawn=%v calls=%d", redrawn, rr.calls)
	}
}

func TestSlotRenderErrorLeavesSlotEmpty(t *testing.T) {
	rr := &recordingRenderer{}
	slot := NewSlot(rr)
	c := types.Counts{Failed: 1}
	_, _ = slot.Update(types.Counts{})

	rr.failNext = true
	if _, err := slot.Update(c); err == nil {
		t.Fatal("expected render error")
	}
	if d, _ := slot.Current(); d != nil {
		t.Error("expected empty slot after failed redraw")
	}

	redrawn, err := slot.Update(c)
	if err != nil || !redrawn {
		t.Errorf("retry Update = %v, %v", redrawn, err)
	}
}

func TestSlotClose(t *testing.T) {
	slot := NewSlot(&recordingRenderer{})
	_, _ = slot.Update(types.Counts{})
	d, _ := slot.Current()
	if err := slot.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !d.Released() {
		t.Error("drawable not released on Close")
	}
	if err := slot.Close(); err != nil {
		t.Errorf("Close on empty slot: %v", err)
	}
}
