package explain

import (
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// Specialist resolves the referral for a disease from the configured
// mapping. Unmapped diseases fall back to a General Practitioner.
func Specialist(specialists map[string]model.SpecialistInfo, diseaseID string) model.SpecialistInfo {
	key := strings.ReplaceAll(strings.ToLower(diseaseID), " ", "_")
	if info, ok := specialists[key]; ok {
		return info
	}
	return model.SpecialistInfo{
		Specialist: "General Practitioner",
		Reason:     "Consult with your primary care physician",
	}
}
