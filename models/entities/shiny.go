package entities

import "time"

// Ways the shiny form of a Pokémon can be obtained in game.
const (
	MethodWild      = "wild"
	MethodRaid      = "raid"
	MethodEvolution = "evolution"
	MethodEgg       = "egg"
	MethodResearch  = "research"
	MethodMystery   = "mystery"
)

// AcquisitionMethods lists every method flag in display order.
var AcquisitionMethods = []string{
	MethodWild,
	MethodRaid,
	MethodEvolution,
	MethodEgg,
	MethodResearch,
	MethodMystery,
}

type ShinyRecord struct {
	Source    string `gorm:"primaryKey"`
	DexID     int    `gorm:"primaryKey"`
	Name      string
	Wild      bool
	Raid      bool
	Evolution bool
	Egg       bool
	Research  bool
	Mystery   bool
	FirstSeen time.Time
	UpdatedAt time.Time
}

func (record *ShinyRecord) Obtainable(method string) bool {
	switch method {
	case MethodWild:
		return record.Wild
	case MethodRaid:
		return record.Raid
	case MethodEvolution:
		return record.Evolution
	case MethodEgg:
		return record.Egg
	case MethodResearch:
		return record.Research
	case MethodMystery:
		return record.Mystery
	}

	return false
}

func (record *ShinyRecord) MarkObtainable(method string) {
	switch method {
	case MethodWild:
		record.Wild = true
	case MethodRaid:
		record.Raid = true
	case MethodEvolution:
		record.Evolution = true
	case MethodEgg:
		record.Egg = true
	case MethodResearch:
		record.Research = true
	case MethodMystery:
		record.Mystery = true
	}
}

// ActiveMethods returns the methods currently flagged on the record, in
// display order.
func (record *ShinyRecord) ActiveMethods() []string {
	var methods []string
	for _, method := range AcquisitionMethods {
		if record.Obtainable(method) {
			methods = append(methods, method)
		}
	}

	return methods
}
