package seeders

import (
	"log"

	"courier-service/models/location"

	"gorm.io/gorm"
)

// SeedLocations inserts the hub location registry when it is missing.
func SeedLocations(db *gorm.DB) {
	log.Printf("🔍 Checking location registry data integrity...")

	locations := []location.Location{
		{Name: "Central Hub", Street: "1 Depot Way", City: "Springfield", State: "IL", PostalCode: "62701", Country: "US"},
		{Name: "Northside Depot", Street: "440 N Freight Rd", City: "Chicago", State: "IL", PostalCode: "60614", Country: "US"},
		{Name: "Westgate Facility", Street: "18 Cargo Ln", City: "Denver", State: "CO", PostalCode: "80202", Country: "US"},
		{Name: "Harbor Terminal", Street: "77 Pier Ave", City: "Oakland", State: "CA", PostalCode: "94607", Country: "US"},
		{Name: "Southern Exchange", Street: "230 Transit Blvd", City: "Atlanta", State: "GA", PostalCode: "30303", Country: "US"},
		{Name: "Eastport Station", Street: "9 Dockside St", City: "Newark", State: "NJ", PostalCode: "07102", Country: "US"},
	}

	for _, loc := range locations {
		var existing location.Location
		err := db.Where("name = ?", loc.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&loc).Error; err != nil {
				log.Printf("Failed to seed location %s: %v", loc.Name, err)
			}
		}
	}

	log.Printf("✅ Location registry ready")
}
