package cli

import (
	"reflect"
	"testing"

	"options-payoff/internal/models"
)

func exitAt(price float64) *float64 {
	return &price
}

func TestParseLegSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    models.Leg
		wantErr bool
	}{
		{
			name: "short call",
			spec: "CE:SELL:19000:110:50",
			want: models.Leg{Type: models.LegCall, Action: models.ActionSell, StrikePrice: 19000, Premium: 110, LotSize: 50},
		},
		{
			name: "long futures with entry price",
			spec: "FUT:BUY:18000:0:50",
			want: models.Leg{Type: models.LegFutures, Action: models.ActionBuy, EntryPrice: 18000, LotSize: 50},
		},
		{
			name: "closed short call",
			spec: "CE:SELL:18500:200:50:80",
			want: models.Leg{Type: models.LegCall, Action: models.ActionSell, StrikePrice: 18500, Premium: 200, LotSize: 50, ExitPrice: exitAt(80)},
		},
		{
			name: "closed at zero stays closed",
			spec: "CE:SELL:18500:200:50:0",
			want: models.Leg{Type: models.LegCall, Action: models.ActionSell, StrikePrice: 18500, Premium: 200, LotSize: 50, ExitPrice: exitAt(0)},
		},
		{
			name: "lowercase accepted",
			spec: "pe:buy:17500:150:25",
			want: models.Leg{Type: models.LegPut, Action: models.ActionBuy, StrikePrice: 17500, Premium: 150, LotSize: 25},
		},
		{name: "too few fields", spec: "CE:SELL:19000", wantErr: true},
		{name: "too many fields", spec: "CE:SELL:19000:110:50:80:99", wantErr: true},
		{name: "bad type", spec: "XX:SELL:19000:110:50", wantErr: true},
		{name: "bad action", spec: "CE:HOLD:19000:110:50", wantErr: true},
		{name: "non-numeric price", spec: "CE:SELL:abc:110:50", wantErr: true},
		{name: "zero lots", spec: "CE:SELL:19000:110:0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLegSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseLegSpec(%q) succeeded, want error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLegSpec(%q): %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseLegSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseLegSpecsFailsFast(t *testing.T) {
	_, err := parseLegSpecs([]string{"CE:SELL:19000:110:50", "bogus"})
	if err == nil {
		t.Fatal("expected error for bad second leg")
	}
}

func TestDescribeLeg(t *testing.T) {
	futures := models.Leg{Type: models.LegFutures, Action: models.ActionBuy, EntryPrice: 18000, LotSize: 50}
	if got := describeLeg(futures); got != "BUY  FUT @ 18000.00 x 50" {
		t.Errorf("describeLeg(futures) = %q", got)
	}
	call := models.Leg{Type: models.LegCall, Action: models.ActionSell, StrikePrice: 18500, Premium: 200, LotSize: 50}
	if got := describeLeg(call); got != "SELL 18500 CE @ 200.00 x 50" {
		t.Errorf("describeLeg(call) = %q", got)
	}
}
