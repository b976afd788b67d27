// Package match assigns line items to standard system templates using
// additive weighted rules over their mined attributes.
package match

// Template describes one standard passive-fire system. Size bounds are in
// millimetres; a zero FRR or absent size range means the factor does not
// apply to this template.
type Template struct {
	ID       string
	Label    string
	Service  string
	FRR      int
	SizeMin  float64
	SizeMax  float64
	HasSize  bool
	Subclass string
}

// DefaultTemplates is the built-in catalog of standard system templates.
// Callers may substitute their own catalog (e.g. loaded from storage) when
// constructing a Matcher.
var DefaultTemplates = []Template{
	{ID: "ELEC_CABLE_120_SM", Label: "Electrical Cables - Small (FRL 120)", Service: "Electrical", FRR: 120, SizeMin: 0, SizeMax: 50, HasSize: true, Subclass: "Cables"},
	{ID: "ELEC_CABLE_120_MD", Label: "Electrical Cables - Medium (FRL 120)", Service: "Electrical", FRR: 120, SizeMin: 51, SizeMax: 150, HasSize: true, Subclass: "Cables"},
	{ID: "ELEC_CABLE_120_LG", Label: "Electrical Cables - Large (FRL 120)", Service: "Electrical", FRR: 120, SizeMin: 151, SizeMax: 300, HasSize: true, Subclass: "Cables"},

	{ID: "ELEC_CABLE_90_SM", Label: "Electrical Cables - Small (FRL 90)", Service: "Electrical", FRR: 90, SizeMin: 0, SizeMax: 50, HasSize: true, Subclass: "Cables"},
	{ID: "ELEC_CABLE_90_MD", Label: "Electrical Cables - Medium (FRL 90)", Service: "Electrical", FRR: 90, SizeMin: 51, SizeMax: 150, HasSize: true, Subclass: "Cables"},
	{ID: "ELEC_CABLE_90_LG", Label: "Electrical Cables - Large (FRL 90)", Service: "Electrical", FRR: 90, SizeMin: 151, SizeMax: 300, HasSize: true, Subclass: "Cables"},

	{ID: "ELEC_CONDUIT_120_SM", Label: "Electrical Conduit - Small (FRL 120)", Service: "Electrical", FRR: 120, SizeMin: 0, SizeMax: 40, HasSize: true, Subclass: "Conduit"},
	{ID: "ELEC_CONDUIT_120_MD", Label: "Electrical Conduit - Medium (FRL 120)", Service: "Electrical", FRR: 120, SizeMin: 41, SizeMax: 100, HasSize: true, Subclass: "Conduit"},
	{ID: "ELEC_CONDUIT_120_LG", Label: "Electrical Conduit - Large (FRL 120)", Service: "Electrical", FRR: 120, SizeMin: 101, SizeMax: 200, HasSize: true, Subclass: "Conduit"},

	{ID: "MECH_DUCT_120_SM", Label: "Mechanical Duct - Small (FRL 120)", Service: "Mechanical", FRR: 120, SizeMin: 0, SizeMax: 200, HasSize: true, Subclass: "Ducts"},
	{ID: "MECH_DUCT_120_MD", Label: "Mechanical Duct - Medium (FRL 120)", Service: "Mechanical", FRR: 120, SizeMin: 201, SizeMax: 500, HasSize: true, Subclass: "Ducts"},
	{ID: "MECH_DUCT_120_LG", Label: "Mechanical Duct - Large (FRL 120)", Service: "Mechanical", FRR: 120, SizeMin: 501, SizeMax: 1000, HasSize: true, Subclass: "Ducts"},

	{ID: "MECH_DUCT_90_SM", Label: "Mechanical Duct - Small (FRL 90)", Service: "Mechanical", FRR: 90, SizeMin: 0, SizeMax: 200, HasSize: true, Subclass: "Ducts"},
	{ID: "MECH_DUCT_90_MD", Label: "Mechanical Duct - Medium (FRL 90)", Service: "Mechanical", FRR: 90, SizeMin: 201, SizeMax: 500, HasSize: true, Subclass: "Ducts"},
	{ID: "MECH_DUCT_90_LG", Label: "Mechanical Duct - Large (FRL 90)", Service: "Mechanical", FRR: 90, SizeMin: 501, SizeMax: 1000, HasSize: true, Subclass: "Ducts"},

	{ID: "PLUMB_PIPE_120_SM", Label: "Plumbing Pipe - Small (FRL 120)", Service: "Plumbing", FRR: 120, SizeMin: 0, SizeMax: 50, HasSize: true, Subclass: "Pipes"},
	{ID: "PLUMB_PIPE_120_MD", Label: "Plumbing Pipe - Medium (FRL 120)", Service: "Plumbing", FRR: 120, SizeMin: 51, SizeMax: 150, HasSize: true, Subclass: "Pipes"},
	{ID: "PLUMB_PIPE_120_LG", Label: "Plumbing Pipe - Large (FRL 120)", Service: "Plumbing", FRR: 120, SizeMin: 151, SizeMax: 300, HasSize: true, Subclass: "Pipes"},

	{ID: "PLUMB_PIPE_90_SM", Label: "Plumbing Pipe - Small (FRL 90)", Service: "Plumbing", FRR: 90, SizeMin: 0, SizeMax: 50, HasSize: true, Subclass: "Pipes"},
	{ID: "PLUMB_PIPE_90_MD", Label: "Plumbing Pipe - Medium (FRL 90)", Service: "Plumbing", FRR: 90, SizeMin: 51, SizeMax: 150, HasSize: true, Subclass: "Pipes"},
	{ID: "PLUMB_PIPE_90_LG", Label: "Plumbing Pipe - Large (FRL 90)", Service: "Plumbing", FRR: 90, SizeMin: 151, SizeMax: 300, HasSize: true, Subclass: "Pipes"},

	{ID: "DATA_CABLE_120_SM", Label: "Data Cables - Small (FRL 120)", Service: "Data", FRR: 120, SizeMin: 0, SizeMax: 50, HasSize: true, Subclass: "Cables"},
	{ID: "DATA_CABLE_120_MD", Label: "Data Cables - Medium (FRL 120)", Service: "Data", FRR: 120, SizeMin: 51, SizeMax: 150, HasSize: true, Subclass: "Cables"},
	{ID: "DATA_CABLE_120_LG", Label: "Data Cables - Large (FRL 120)", Service: "Data", FRR: 120, SizeMin: 151, SizeMax: 300, HasSize: true, Subclass: "Cables"},

	{ID: "FIRE_SPRINK_120_SM", Label: "Fire Sprinkler Pipe - Small (FRL 120)", Service: "Fire", FRR: 120, SizeMin: 0, SizeMax: 50, HasSize: true, Subclass: "Pipes"},
	{ID: "FIRE_SPRINK_120_MD", Label: "Fire Sprinkler Pipe - Medium (FRL 120)", Service: "Fire", FRR: 120, SizeMin: 51, SizeMax: 150, HasSize: true, Subclass: "Pipes"},
	{ID: "FIRE_SPRINK_120_LG", Label: "Fire Sprinkler Pipe - Large (FRL 120)", Service: "Fire", FRR: 120, SizeMin: 151, SizeMax: 300, HasSize: true, Subclass: "Pipes"},

	{ID: "GAS_PIPE_120_SM", Label: "Gas Pipe - Small (FRL 120)", Service: "Gas", FRR: 120, SizeMin: 0, SizeMax: 50, HasSize: true, Subclass: "Pipes"},
	{ID: "GAS_PIPE_120_MD", Label: "Gas Pipe - Medium (FRL 120)", Service: "Gas", FRR: 120, SizeMin: 51, SizeMax: 100, HasSize: true, Subclass: "Pipes"},

	{ID: "CABLE_TRAY_120", Label: "Cable Tray (FRL 120)", Service: "Electrical", FRR: 120, SizeMin: 100, SizeMax: 600, HasSize: true, Subclass: "Tray"},
	{ID: "CABLE_TRAY_90", Label: "Cable Tray (FRL 90)", Service: "Electrical", FRR: 90, SizeMin: 100, SizeMax: 600, HasSize: true, Subclass: "Tray"},

	{ID: "PEN_SEAL_120_SM", Label: "Penetration Seal - Small (FRL 120)", FRR: 120, SizeMin: 0, SizeMax: 75, HasSize: true, Subclass: "Seal"},
	{ID: "PEN_SEAL_120_MD", Label: "Penetration Seal - Medium (FRL 120)", FRR: 120, SizeMin: 76, SizeMax: 200, HasSize: true, Subclass: "Seal"},
	{ID: "PEN_SEAL_120_LG", Label: "Penetration Seal - Large (FRL 120)", FRR: 120, SizeMin: 201, SizeMax: 500, HasSize: true, Subclass: "Seal"},

	{ID: "PEN_SEAL_90_SM", Label: "Penetration Seal - Small (FRL 90)", FRR: 90, SizeMin: 0, SizeMax: 75, HasSize: true, Subclass: "Seal"},
	{ID: "PEN_SEAL_90_MD", Label: "Penetration Seal - Medium (FRL 90)", FRR: 90, SizeMin: 76, SizeMax: 200, HasSize: true, Subclass: "Seal"},
	{ID: "PEN_SEAL_90_LG", Label: "Penetration Seal - Large (FRL 90)", FRR: 90, SizeMin: 201, SizeMax: 500, HasSize: true, Subclass: "Seal"},

	{ID: "LINEAR_JOINT_120", Label: "Linear Joint - Control Joint (FRL 120)", FRR: 120, SizeMin: 10, SizeMax: 50, HasSize: true, Subclass: "Seal"},
	{ID: "LINEAR_JOINT_90", Label: "Linear Joint - Control Joint (FRL 90)", FRR: 90, SizeMin: 10, SizeMax: 50, HasSize: true, Subclass: "Seal"},

	{ID: "FIRE_DAMPER_120", Label: "Fire Damper (FRL 120)", Service: "Mechanical", FRR: 120, SizeMin: 100, SizeMax: 1000, HasSize: true, Subclass: "Damper"},
	{ID: "FIRE_DAMPER_90", Label: "Fire Damper (FRL 90)", Service: "Mechanical", FRR: 90, SizeMin: 100, SizeMax: 1000, HasSize: true, Subclass: "Damper"},

	{ID: "COLLAR_120_SM", Label: "Fire Collar - Small (FRL 120)", FRR: 120, SizeMin: 0, SizeMax: 100, HasSize: true, Subclass: "Collar"},
	{ID: "COLLAR_120_MD", Label: "Fire Collar - Medium (FRL 120)", FRR: 120, SizeMin: 101, SizeMax: 200, HasSize: true, Subclass: "Collar"},
	{ID: "COLLAR_120_LG", Label: "Fire Collar - Large (FRL 120)", FRR: 120, SizeMin: 201, SizeMax: 400, HasSize: true, Subclass: "Collar"},

	{ID: "BATT_WRAP_120", Label: "Fire Batt/Wrap (FRL 120)", FRR: 120, Subclass: "Batt"},
	{ID: "BATT_WRAP_90", Label: "Fire Batt/Wrap (FRL 90)", FRR: 90, Subclass: "Batt"},

	{ID: "BOARD_120", Label: "Fire Rated Board (FRL 120)", FRR: 120, Subclass: "Board"},
	{ID: "BOARD_90", Label: "Fire Rated Board (FRL 90)", FRR: 90, Subclass: "Board"},
}

// LabelIndex returns a system_id to label lookup over a catalog.
func LabelIndex(templates []Template) map[string]string {
	index := make(map[string]string, len(templates))
	for _, t := range templates {
		index[t.ID] = t.Label
	}
	return index
}
