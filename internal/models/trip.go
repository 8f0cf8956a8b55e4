package models

// Trip is the reference entity purchases point at ("viaje" in the
// client's vocabulary). Its primary key is client-assigned, not
// engine-generated: a purchase must keep the trip id the client
// believes it referenced, so ghost placeholders are inserted under
// the client's id when a purchase arrives first.
type Trip struct {
	ID       int     `json:"id" gorm:"column:id;primaryKey"`
	Name     string  `json:"name" gorm:"column:nombre;type:varchar(255);uniqueIndex"`
	WeightKG float64 `json:"weightKG" gorm:"column:peso_kg;type:numeric(10,2)"`
	Active   bool    `json:"active" gorm:"column:activo;not null;default:true"`
}

func (Trip) TableName() string {
	return "viajes"
}
