package normalise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAttributes(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantSize     string
		wantFRR      string
		wantService  string
		wantSubclass string
		wantMaterial string
	}{
		{
			name:         "pipe penetration",
			text:         "Fire seal to 100mm PVC pipe penetration",
			wantSize:     "100mm",
			wantService:  "Fire",
			wantSubclass: "Pipes",
			wantMaterial: "PVC",
		},
		{
			name:        "rated duct",
			text:        "120/120/120 rated HVAC duct penetration",
			wantFRR:     "120/120/120",
			wantService: "Mechanical",
			// "duct" also hits the subclass table
			wantSubclass: "Ducts",
		},
		{
			name:         "steel tray",
			text:         "Galvanised steel cable tray 300 x 50",
			wantSize:     "300 x 50",
			wantService:  "Electrical",
			wantSubclass: "Cables",
			wantMaterial: "Steel",
		},
		{
			name:     "DN pipe size",
			text:     "Collar to DN100 uPVC stack",
			wantSize: "DN100",
			// "pvc" keyword hits inside "uPVC"
			wantSubclass: "Collar",
			wantMaterial: "PVC",
		},
		{
			name:        "minutes fire rated",
			text:        "Batt and sealant, 60 minutes fire rated",
			wantFRR:     "60 minutes fire rated",
			wantService: "Fire",
			// "seal" precedes "batt" in the subclass table
			wantSubclass: "Seal",
		},
		{
			name: "nothing extractable",
			text: "Preliminaries and general",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAttributes(tt.text)
			assert.Equal(t, tt.wantSize, got.Size)
			assert.Equal(t, tt.wantFRR, got.FRR)
			assert.Equal(t, tt.wantService, got.Service)
			assert.Equal(t, tt.wantSubclass, got.Subclass)
			assert.Equal(t, tt.wantMaterial, got.Material)
		})
	}
}

func TestExtractAttributes_SlashFRRTriplet(t *testing.T) {
	got := ExtractAttributes("150mm FRL -/120/120 electrical cable tray fire sealed")

	assert.Equal(t, "150mm", got.Size)
	assert.Equal(t, "-/120/120", got.FRR)
	assert.Equal(t, "Electrical", got.Service)
	assert.Empty(t, got.Material)
	assert.Greater(t, got.Confidence, 0.0)
}

func TestExtractAttributes_Confidence(t *testing.T) {
	empty := ExtractAttributes("")
	assert.Equal(t, 0.0, empty.Confidence)

	full := ExtractAttributes("100mm FRL 60/60/60 intumescent fire sealant to pipe penetration")
	assert.Equal(t, 1.0, full.Confidence)

	partial := ExtractAttributes("100mm opening")
	assert.InDelta(t, 0.4, partial.Confidence, 0.001)
}

func TestItemCompleteness(t *testing.T) {
	tests := []struct {
		name        string
		qty, rate   float64
		unit        string
		description string
		systemID    string
		want        int
	}{
		{name: "fully populated", qty: 10, rate: 5, unit: "ea", description: "Fire collar to 100mm pipe", systemID: "COLLAR_100", want: 100},
		{name: "no system match", qty: 10, rate: 5, unit: "ea", description: "Fire collar to 100mm pipe", want: 80},
		{name: "short description", qty: 10, rate: 5, unit: "ea", description: "Collar", want: 60},
		{name: "unpriced", unit: "ea", description: "Fire collar to 100mm pipe", want: 40},
		{name: "empty", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemCompleteness(tt.qty, tt.rate, tt.unit, tt.description, tt.systemID)
			assert.Equal(t, tt.want, got)
		})
	}
}
