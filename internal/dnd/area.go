package dnd

import (
	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// Area groups zones that behave as one drop surface. A move between two
// zones of the same area is reported with the area id on the operation.
type Area struct {
	id     entity.AreaID
	policy port.AcceptPolicy
	zones  []*Zone
}

// NewArea creates an area; a nil policy accepts everything.
func NewArea(id entity.AreaID, policy port.AcceptPolicy) *Area {
	if policy == nil {
		policy = AcceptAll
	}
	return &Area{id: id, policy: policy}
}

// ID returns the area id.
func (a *Area) ID() entity.AreaID { return a.id }

// Add attaches zones to the area.
func (a *Area) Add(zones ...*Zone) {
	for _, z := range zones {
		if z.area != nil && z.area != a {
			z.area.remove(z)
		}
		z.area = a
		a.zones = append(a.zones, z)
	}
}

func (a *Area) remove(z *Zone) {
	for i, zz := range a.zones {
		if zz == z {
			a.zones = append(a.zones[:i], a.zones[i+1:]...)
			return
		}
	}
}

// Contains reports whether the zone belongs to the area.
func (a *Area) Contains(id entity.ZoneID) bool {
	for _, z := range a.zones {
		if z.ID() == id {
			return true
		}
	}
	return false
}

// Zones returns the member zones.
func (a *Area) Zones() []*Zone {
	return append([]*Zone(nil), a.zones...)
}

// Accepts applies the area-wide policy.
func (a *Area) Accepts(op *entity.Operation) bool {
	return a.policy(op)
}
