package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"otomoto_scrooper/models"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "125000km", Normalize(" 125 000 km "))
	assert.Equal(t, "łódźłódzkie", Normalize("Łódź (Łódzkie)"))
	assert.Equal(t, "", Normalize(""))
}

func TestFingerprint_StableAcrossFormatting(t *testing.T) {
	a := models.Record{Title: "Volkswagen Golf", Price: "59 900", Mileage: "125 000 km", ProductionDate: "2018", Location: "Warszawa"}
	b := models.Record{Title: "volkswagen  golf", Price: "59900", Mileage: "125 000 km", ProductionDate: "2018", Location: "Warszawa", Image: "https://img/other.jpg"}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Len(t, Fingerprint(a), 32)
}

func TestFingerprint_DiffersOnMileage(t *testing.T) {
	a := models.Record{Title: "Volkswagen Golf", Mileage: "125 000 km"}
	b := models.Record{Title: "Volkswagen Golf", Mileage: "126 000 km"}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}
