package fsm

import "fmt"

// Info is a read-only snapshot of a machine's registry, used for
// introspection and graph rendering.
type Info struct {
	Name     string
	Capacity int
	Current  string // label of the current state, empty when uninitialized
	States   []StateInfo
}

// StateInfo describes one registered state.
type StateInfo struct {
	Label   string // fmt.Sprint of the identifier
	Slot    int
	Mask    Mask
	Current bool
	Targets []int // slots of registered states this state may enter
}

// Lookup returns the state in slot, if registered.
func (i Info) Lookup(slot int) (StateInfo, bool) {
	for _, s := range i.States {
		if s.Slot == slot {
			return s, true
		}
	}
	return StateInfo{}, false
}

// Info returns a snapshot of the registry ordered by slot.
func (m *Machine[ID, C]) Info() Info {
	info := Info{
		Name:     m.name,
		Capacity: m.capacity,
	}
	if m.current != nil {
		info.Current = fmt.Sprint(m.currentID)
	}

	for _, e := range m.slots {
		if e == nil {
			continue
		}
		mask := e.state.Mask()
		si := StateInfo{
			Label:   fmt.Sprint(e.id),
			Slot:    e.slot,
			Mask:    mask,
			Current: e == m.current,
		}
		for _, t := range m.slots {
			if t != nil && mask.Has(Bit(t.slot)) {
				si.Targets = append(si.Targets, t.slot)
			}
		}
		info.States = append(info.States, si)
	}
	return info
}
