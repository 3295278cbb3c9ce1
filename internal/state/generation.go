package state

// Generations stamps requests so that only the response to the newest
// request of a family is applied. Responses can arrive out of order; a
// stamp older than the latest issued one is stale.
//
// Generations is not safe for concurrent use; it lives on the UI's update
// loop. Copies made after NewGenerations share their stamps, so it can sit
// in a value-receiver model. The zero value is only usable unshared.
type Generations struct {
	latest map[string]uint64
}

// NewGenerations returns Generations whose copies share state
func NewGenerations() Generations {
	return Generations{latest: make(map[string]uint64)}
}

// Families of requests tracked independently
const (
	FamilyFetch = "fetch"
	FamilyStar  = "star"
)

// Next issues a new generation for family
func (g *Generations) Next(family string) uint64 {
	if g.latest == nil {
		g.latest = make(map[string]uint64)
	}
	g.latest[family]++
	return g.latest[family]
}

// Current reports whether gen is the newest generation issued for family
func (g *Generations) Current(family string, gen uint64) bool {
	return gen != 0 && g.latest[family] == gen
}
