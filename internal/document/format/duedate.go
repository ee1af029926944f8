package format

// DueDatePreset is one selectable payment-terms option. Days is nil for the
// custom preset, where the client supplies an explicit date instead.
type DueDatePreset struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Days  *int   `json:"days"`
}

// DueDatePresets lists the standard payment terms, due-on-receipt through
// net-60, plus the free-form custom option.
var DueDatePresets = []DueDatePreset{
	{Value: "due-on-receipt", Label: "Due on Receipt", Days: days(0)},
	{Value: "net-7", Label: "Net 7", Days: days(7)},
	{Value: "net-15", Label: "Net 15", Days: days(15)},
	{Value: "net-30", Label: "Net 30", Days: days(30)},
	{Value: "net-60", Label: "Net 60", Days: days(60)},
	{Value: "custom", Label: "Custom", Days: nil},
}

// DueDaysFor resolves a preset value to its day offset. Unknown values and
// the custom preset report false.
func DueDaysFor(value string) (int, bool) {
	for _, preset := range DueDatePresets {
		if preset.Value == value && preset.Days != nil {
			return *preset.Days, true
		}
	}
	return 0, false
}

func days(n int) *int { return &n }
