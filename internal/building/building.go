package building

import (
	"sync"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// Snapshot is a consistent view of the current inputs and their results.
type Snapshot struct {
	ID     string
	Preset string
	Input  heatload.DetailedInput
	Result heatload.DetailedResult
}

// Export returns the serialisable form of the snapshot.
func (s Snapshot) Export() heatload.Export {
	return heatload.NewExport(s.Input, s.Result)
}

// Document is the published form of a snapshot: the calculation document
// plus the device identity.
type Document struct {
	DeviceID string `json:"device_id"`
	Preset   string `json:"preset,omitempty"`
	heatload.Document
}

func (s Snapshot) Document() Document {
	return Document{
		DeviceID: s.ID,
		Preset:   s.Preset,
		Document: heatload.NewDocument(s.Input, s.Result),
	}
}

// Building is a live heat-load model whose inputs can be changed by the
// controllers. Every committed input set is valid.
type Building struct {
	mu     sync.RWMutex
	id     string
	preset string
	in     heatload.DetailedInput
	res    heatload.DetailedResult
}

func New(id string, initial heatload.DetailedInput) (*Building, error) {
	b := &Building{id: id}
	if err := b.commit(initial); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Building) ID() string {
	return b.id
}

func (b *Building) Get() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{ID: b.id, Preset: b.preset, Input: b.in, Result: b.res}
}

// Set changes one numeric input. The whole input set is re-validated and
// left untouched on error.
func (b *Building) Set(f Field, v float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	in := b.in
	if err := f.Apply(&in, v); err != nil {
		return err
	}
	if err := b.commit(in); err != nil {
		return err
	}
	if isThermal(f) {
		b.preset = ""
	}
	return nil
}

func (b *Building) SetRidgeAxis(r heatload.RidgeAxis) error {
	if !r.Valid() {
		return heatload.ErrInvalidRidgeAxis
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	in := b.in
	in.RidgeAxis = r
	return b.commit(in)
}

// Update applies fn to a copy of the current input and commits the result
// once. Intermediate states inside fn are never validated; if fn or the
// validation fails nothing changes.
func (b *Building) Update(fn func(in *heatload.DetailedInput) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	in := b.in
	if err := fn(&in); err != nil {
		return err
	}
	thermalChanged := in.ThermalInput != b.in.ThermalInput
	if err := b.commit(in); err != nil {
		return err
	}
	if thermalChanged {
		b.preset = ""
	}
	return nil
}

// SetInput replaces the whole input set.
func (b *Building) SetInput(in heatload.DetailedInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.commit(in); err != nil {
		return err
	}
	b.preset = ""
	return nil
}

// ApplyPreset copies the thermal values of the named preset. Unknown names
// resolve to the default preset; the applied preset is returned.
func (b *Building) ApplyPreset(name string) heatload.Preset {
	p := heatload.LookupPreset(name)

	b.mu.Lock()
	defer b.mu.Unlock()

	in := b.in
	in.ThermalInput = p.Apply(in.ThermalInput)
	if err := b.commit(in); err == nil {
		b.preset = p.Name
	}
	return p
}

// commit validates and stores in together with its result.
// Callers other than New must hold b.mu.
func (b *Building) commit(in heatload.DetailedInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := heatload.Detailed(in)
	if err != nil {
		return err
	}
	b.in = in
	b.res = res
	return nil
}

func isThermal(f Field) bool {
	switch f {
	case FieldUWall, FieldUWindow, FieldURoof, FieldUFloor, FieldInfiltration:
		return true
	}
	return false
}
