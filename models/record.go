package models

// Record is one normalized listing. Absent values are empty strings.
type Record struct {
	Image          string `json:"image" db:"image"`
	Title          string `json:"title" db:"title"`
	Price          string `json:"price" db:"price"`
	Currency       string `json:"currency" db:"currency"`
	Tank           string `json:"tank" db:"tank"`
	Power          string `json:"power" db:"power"`
	Equipment      string `json:"equipment" db:"equipment"`
	Mileage        string `json:"mileage" db:"mileage"`
	FuelType       string `json:"fuel_type" db:"fuel_type"`
	Gearbox        string `json:"gearbox" db:"gearbox"`
	ProductionDate string `json:"production_date" db:"production_date"`
	Location       string `json:"location" db:"location"`
}

// RecordFields lists column names in declaration order.
var RecordFields = []string{
	"image",
	"title",
	"price",
	"currency",
	"tank",
	"power",
	"equipment",
	"mileage",
	"fuel_type",
	"gearbox",
	"production_date",
	"location",
}

// Values returns the field values in the same order as RecordFields.
func (r Record) Values() []string {
	return []string{
		r.Image,
		r.Title,
		r.Price,
		r.Currency,
		r.Tank,
		r.Power,
		r.Equipment,
		r.Mileage,
		r.FuelType,
		r.Gearbox,
		r.ProductionDate,
		r.Location,
	}
}
