package domain

import "testing"

func validMarket() Market {
	return Market{
		ID: "jpx", Name: "Japan Exchange Group", Code: "JPX",
		Timezone: "Asia/Tokyo", OpenTime: "09:00", CloseTime: "15:30",
		LunchStart: "11:30", LunchEnd: "12:30",
		Region: RegionAPAC,
	}
}

func TestMarketValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Market)
		wantErr bool
	}{
		{"valid with lunch", func(m *Market) {}, false},
		{"valid without lunch", func(m *Market) { m.LunchStart, m.LunchEnd = "", "" }, false},
		{"missing id", func(m *Market) { m.ID = "" }, true},
		{"missing timezone", func(m *Market) { m.Timezone = "" }, true},
		{"malformed open time", func(m *Market) { m.OpenTime = "9:00" }, true},
		{"close before open", func(m *Market) { m.OpenTime, m.CloseTime = "15:00", "09:00" }, true},
		{"lunch before open", func(m *Market) { m.LunchStart = "08:00" }, true},
		{"lunch end before start", func(m *Market) { m.LunchStart, m.LunchEnd = "12:30", "11:30" }, true},
		{"lunch past close", func(m *Market) { m.LunchEnd = "16:00" }, true},
		{"half-open lunch", func(m *Market) { m.LunchEnd = "" }, true},
		{"out-of-range hour", func(m *Market) { m.OpenTime = "25:00" }, true},
		{"out-of-range minute", func(m *Market) { m.CloseTime = "15:61" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMarket()
			tt.mutate(&m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeOverrideValidate(t *testing.T) {
	str := func(s string) *string { return &s }
	tests := []struct {
		name    string
		ov      TimeOverride
		wantErr bool
	}{
		{"both nil", TimeOverride{}, false},
		{"valid times", TimeOverride{OpenTime: str("10:00"), CloseTime: str("15:00")}, false},
		{"empty string means default", TimeOverride{OpenTime: str("")}, false},
		{"twelve-hour open", TimeOverride{OpenTime: str("9:30am")}, true},
		{"unpadded close", TimeOverride{CloseTime: str("9:00")}, true},
		{"out-of-range close", TimeOverride{CloseTime: str("24:00")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ov.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasLunch(t *testing.T) {
	m := validMarket()
	if !m.HasLunch() {
		t.Errorf("HasLunch() = false for a market with a lunch break")
	}
	m.LunchStart, m.LunchEnd = "", ""
	if m.HasLunch() {
		t.Errorf("HasLunch() = true for a market without a lunch break")
	}
}
