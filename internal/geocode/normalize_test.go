package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePartsUppercasesStateAndStripsZip(t *testing.T) {
	p := NormalizeParts(" 100 Main St ", " Dallas ", "tx", "75201-1234")

	assert.Equal(t, "100 Main St", p.Street)
	assert.Equal(t, "Dallas", p.City)
	assert.Equal(t, "TX", p.State)
	assert.Equal(t, "752011234", p.Zip)
	assert.Equal(t, "USA", p.Country)
}

func TestNormalizePartsMexicoStateCode(t *testing.T) {
	p := NormalizeParts("Calle 5", "Guadalajara", "jal", "44100")
	assert.Equal(t, "Mexico", p.Country)
}

func TestNormalizedKeyIsCaseAndPunctuationInsensitive(t *testing.T) {
	a := Parts{Street: "100 Main St.", City: "Dallas", State: "TX", Zip: "75201", Country: "USA"}
	b := Parts{Street: "100 main st", City: "dallas", State: "tx", Zip: "75201", Country: "USA"}

	assert.Equal(t, a.NormalizedKey(), b.NormalizedKey())
}

func TestNormalizedKeyDefaultsCountryToUSA(t *testing.T) {
	withEmpty := Parts{Street: "100 Main St", City: "Dallas", State: "TX", Zip: "75201"}
	withUSA := Parts{Street: "100 Main St", City: "Dallas", State: "TX", Zip: "75201", Country: "USA"}

	assert.Equal(t, withUSA.NormalizedKey(), withEmpty.NormalizedKey())
}

func TestQueryDropsEmptyComponents(t *testing.T) {
	p := Parts{Street: "100 Main St", City: "Dallas", State: "TX", Zip: ""}
	assert.Equal(t, "100 Main St, Dallas, TX, USA", p.Query())
}
