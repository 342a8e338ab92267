package models

import "github.com/pkg/errors"

// InspectionCategory - категория инспекционного чек-листа.
// Содержимое чек-листа хранится как непрозрачный документ, категории
// отличаются только числом свидетелей и названием.
type InspectionCategory struct {
	ID        string // идентификатор категории (slug)
	Name      string
	Witnesses int // число свидетелей (2 или 3)
}

var inspectionCategories = map[string]InspectionCategory{}

func init() {
	threeWitness := map[string]string{
		"excavation":                       "Excavation",
		"anti-termite-treatment":           "Anti-termite Treatment",
		"pour-card-for-column-concrete":    "Pour Card for Column Concrete",
		"pour-card-for-slab-concrete":      "Pour Card for Slab Concrete",
		"pour-card-for-beam":               "Pour Card for Beam",
		"plain-cement-concrete-work":       "Plain Cement Concrete Work",
		"plastering":                       "Plastering",
		"ht-cable":                         "HT Cable",
		"cctv-installation":                "CCTV Installation",
		"culvert-work":                     "Culvert Work",
		"remote-terminal-unit":             "Remote Terminal Unit",
		"ups":                              "UPS",
		"icog-panel":                       "ICOG Panel",
		"painting":                         "Painting",
		"rcc":                              "RCC",
		"ac-distribution-board":            "AC Distribution Board",
		"aux-transformer":                  "AUX Transformer",
		"busduct":                          "Busduct",
		"high-voltage-panel":               "High Voltage Panel",
		"periphery-lighting":               "Periphery Lighting",
		"plumbing":                         "Plumbing",
		"scada-system":                     "SCADA System",
		"wms":                              "WMS",
		"plant-boundary-and-fencing":       "Plant Boundary and Fencing",
		"chain-link-fencing":               "Chain Link Fencing",
		"potential-transformer":            "Potential Transformer",
		"battery-bank-and-battery-charger": "Battery Bank and Battery Charger",
		"control-cable-laying":             "Control Cable Laying",
		"fire-alarm-panel":                 "Fire Alarm Panel",
		"inverter":                         "Inverter",
		"string-cables":                    "String Cables",
		"lightning-arrester":               "Lightning Arrester",
		"string-cables2":                   "String Cables (stage 2)",
		"nifps":                            "NIFPS",
		"inverter-duty-transformer":        "Inverter Duty Transformer",
		"earthing-system":                  "Earthing System",
		"ht-cable-pre-com":                 "HT Cable Pre-commissioning",
	}
	twoWitness := map[string]string{
		"dcdb":                             "DCDB",
		"outdoor-isolator-or-earth-switch": "Outdoor Isolator / Earth Switch",
		"transmission-lines":               "Transmission Lines",
		"module-interconnection":           "Module Interconnection",
		"inverter-or-control-room-building": "Inverter / Control Room Building",
		"spv-modules":                      "SPV Modules",
	}
	for id, name := range threeWitness {
		inspectionCategories[id] = InspectionCategory{ID: id, Name: name, Witnesses: 3}
	}
	for id, name := range twoWitness {
		inspectionCategories[id] = InspectionCategory{ID: id, Name: name, Witnesses: 2}
	}
}

func GetInspectionCategory(id string) (InspectionCategory, error) {
	category, exist := inspectionCategories[id]
	if !exist {
		return InspectionCategory{}, errors.Errorf("неизвестная категория инспекции (%v)", id)
	}
	return category, nil
}

func ListInspectionCategories() []InspectionCategory {
	list := make([]InspectionCategory, 0, len(inspectionCategories))
	for _, category := range inspectionCategories {
		list = append(list, category)
	}
	return list
}
