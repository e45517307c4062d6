package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Descriptor holds the table and column metadata for the reporting database.
// It is loaded once at session start and treated as immutable afterwards.
type Descriptor struct {
	Tables map[string]Table `json:"tables"`
}

// Table represents a database table
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column represents a database column with its declared type
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// TableNames returns the table names in sorted order
func (d *Descriptor) TableNames() []string {
	names := make([]string, 0, len(d.Tables))
	for name := range d.Tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// HasTable reports whether the descriptor contains the named table
func (d *Descriptor) HasTable(name string) bool {
	_, ok := d.Tables[name]
	return ok
}

// Describe renders the schema as readable text for prompt embedding
func (d *Descriptor) Describe() string {
	var sb strings.Builder

	for _, tableName := range d.TableNames() {
		table := d.Tables[tableName]

		sb.WriteString(fmt.Sprintf("Table: %s\n", tableName))
		sb.WriteString("Columns:\n")

		for _, column := range table.Columns {
			sb.WriteString(fmt.Sprintf("  - %s (%s)", column.Name, column.Type))

			if column.Description != "" {
				sb.WriteString(fmt.Sprintf(" - %s", column.Description))
			}

			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Default returns the WARM reporting schema used when introspection is
// unavailable (for example against a mocked database in tests).
func Default() *Descriptor {
	return &Descriptor{
		Tables: map[string]Table{
			"stations": {
				Name: "stations",
				Columns: []Column{
					{Name: "station_code", Type: "VARCHAR", Description: "Three-letter WARM station code"},
					{Name: "station_name", Type: "VARCHAR", Description: "Station location name"},
					{Name: "latitude", Type: "DOUBLE", Description: "Latitude in decimal degrees"},
					{Name: "longitude", Type: "DOUBLE", Description: "Longitude in decimal degrees"},
					{Name: "elevation_m", Type: "DOUBLE", Description: "Elevation above sea level in meters"},
					{Name: "active", Type: "BOOLEAN", Description: "Whether the station currently reports"},
				},
			},
			"warm_icn_data": {
				Name: "warm_icn_data",
				Columns: []Column{
					{Name: "station_code", Type: "VARCHAR", Description: "Reporting station code"},
					{Name: "obs_timestamp", Type: "TIMESTAMP", Description: "Observation time"},
					{Name: "air_temp_c", Type: "DOUBLE", Description: "Air temperature in Celsius"},
					{Name: "soil_temp_10cm_c", Type: "DOUBLE", Description: "Soil temperature at 10cm depth in Celsius"},
					{Name: "precip_mm", Type: "DOUBLE", Description: "Precipitation in millimeters"},
					{Name: "wind_speed_mps", Type: "DOUBLE", Description: "Wind speed in meters per second"},
					{Name: "solar_rad_wm2", Type: "DOUBLE", Description: "Solar radiation in watts per square meter"},
					{Name: "rel_humidity_pct", Type: "DOUBLE", Description: "Relative humidity percentage"},
				},
			},
		},
	}
}
