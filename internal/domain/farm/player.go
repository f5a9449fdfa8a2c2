package farm

// BankIndex is the reserved seat of the shared bank.
const BankIndex = 99

const BankName = "MainHerd"

type Player struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Herd  Herd   `json:"herd"`
}

func NewPlayer(name string, index int) *Player {
	return &Player{Name: name, Index: index}
}

// NewBank seeds the bank player from a starting herd.
func NewBank(start Herd) *Player {
	return &Player{Name: BankName, Index: BankIndex, Herd: start}
}

func (p *Player) IsBank() bool {
	return p != nil && p.Index == BankIndex
}
