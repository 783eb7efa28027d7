package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"otomoto_scrooper/models"
)

var (
	multiSpaceRegex = regexp.MustCompile(`\s+`)
	nonAlnumRegex   = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

// Fingerprint identifies a listing across runs by the fields a seller rarely
// edits. Formatting differences in spacing and punctuation do not change it.
func Fingerprint(r models.Record) string {
	input := strings.Join([]string{
		Normalize(r.Title),
		Normalize(r.Price),
		Normalize(r.Mileage),
		Normalize(r.ProductionDate),
		Normalize(r.Location),
	}, "|")
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:16])
}

func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumRegex.ReplaceAllString(s, " ")
	s = multiSpaceRegex.ReplaceAllString(s, "")
	return s
}
