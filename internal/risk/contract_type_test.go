package risk

import "testing"

func TestIdentifyType(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType string
	}{
		{
			name: "nda",
			text: "MUTUAL NON-DISCLOSURE AGREEMENT. The Receiving Party shall protect " +
				"Confidential Information of the Disclosing Party.",
			wantType: TypeNDA,
		},
		{
			name: "service agreement",
			text: "MASTER SERVICES AGREEMENT. Contractor shall perform the services " +
				"described in each Statement of Work and deliver all Deliverables.",
			wantType: TypeService,
		},
		{
			name: "employment",
			text: "EMPLOYMENT AGREEMENT between Employer and Employee. Salary and " +
				"benefits are described in Exhibit A. Termination of employment requires notice.",
			wantType: TypeEmployment,
		},
		{
			name:     "unrelated text",
			text:     "Minutes of the weekly engineering sync. Action items below.",
			wantType: TypeUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, conf := IdentifyType(tt.text)
			if gotType != tt.wantType {
				t.Errorf("IdentifyType = %q (%.2f), want %q", gotType, conf, tt.wantType)
			}
			if tt.wantType != TypeUnknown && conf <= 0 {
				t.Errorf("confidence = %.2f, want > 0", conf)
			}
			if conf < 0 || conf > 1 {
				t.Errorf("confidence %.2f out of range", conf)
			}
		})
	}
}

func TestIdentifyType_Empty(t *testing.T) {
	if ctype, conf := IdentifyType(""); ctype != TypeUnknown || conf != 0 {
		t.Errorf("IdentifyType(\"\") = %q, %.2f", ctype, conf)
	}
}
