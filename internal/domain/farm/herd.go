package farm

// Herd is a per-owner animal ledger. Counts never go negative.
type Herd struct {
	Rabbit    int `json:"Rabbit"`
	Sheep     int `json:"Sheep"`
	Pig       int `json:"Pig"`
	Cow       int `json:"Cow"`
	Horse     int `json:"Horse"`
	Foxhound  int `json:"Foxhound"`
	Wolfhound int `json:"Wolfhound"`
}

func (h *Herd) slot(k Kind) *int {
	switch k {
	case Rabbit:
		return &h.Rabbit
	case Sheep:
		return &h.Sheep
	case Pig:
		return &h.Pig
	case Cow:
		return &h.Cow
	case Horse:
		return &h.Horse
	case Foxhound:
		return &h.Foxhound
	case Wolfhound:
		return &h.Wolfhound
	}
	return nil
}

// Get returns 0 for kinds a herd cannot hold.
func (h Herd) Get(k Kind) int {
	if p := h.slot(k); p != nil {
		return *p
	}
	return 0
}

func (h *Herd) Set(k Kind, n int) {
	p := h.slot(k)
	if p == nil {
		return
	}
	if n < 0 {
		n = 0
	}
	*p = n
}

// Transfer moves n animals of kind k to another herd. Nothing changes
// unless the sender holds at least n.
func (h *Herd) Transfer(to *Herd, k Kind, n int) bool {
	if to == nil || n < 0 {
		return false
	}
	from, dst := h.slot(k), to.slot(k)
	if from == nil || dst == nil {
		return false
	}
	if *from < n {
		return false
	}
	*from -= n
	*dst += n
	return true
}

func (h Herd) Has(k Kind) bool {
	return h.Get(k) > 0
}

func (h Herd) Total() int {
	return h.Rabbit + h.Sheep + h.Pig + h.Cow + h.Horse + h.Foxhound + h.Wolfhound
}

func (h Herd) Empty() bool {
	return h.Total() == 0
}

// Counts lists non-zero entries.
func (h Herd) Counts() map[Kind]int {
	out := make(map[Kind]int, len(HerdKinds))
	for _, k := range HerdKinds {
		if n := h.Get(k); n > 0 {
			out[k] = n
		}
	}
	return out
}

// HerdOf builds a herd from counts, ignoring kinds a herd cannot hold.
func HerdOf(counts map[Kind]int) Herd {
	var h Herd
	for k, n := range counts {
		h.Set(k, n)
	}
	return h
}
