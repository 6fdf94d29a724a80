// Command generate_samples writes sample PoI files in every supported
// format and optionally ingests them into a fresh database, giving new
// installs something to browse and the drop-directory scan something to
// pick up.
// Usage: go run cmd/generate_samples/main.go [-dir path/to/samples] [-db path/to/sample.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/poihub/poi-manager/internal/database"
	"github.com/poihub/poi-manager/internal/database/pois"
	"github.com/poihub/poi-manager/internal/ingest"
)

const defaultSamplesDir = "./samples"

var sampleCSV = `poi_id,poi_name,poi_latitude,poi_longitude,poi_category,poi_ratings
sf-0001,Golden Gate Park,37.7694,-122.4862,park,"{4.0,4.5,5.0}"
sf-0002,Ferry Building,37.7955,-122.3937,market,"{4.0,3.5}"
sf-0003,Coit Tower,37.8024,-122.4058,landmark,"{3.0,4.0,4.0}"
`

var sampleJSON = `[
  {
    "id": "sf-1001",
    "name": "Alcatraz Island",
    "coordinates": {"latitude": 37.8267, "longitude": -122.4233},
    "category": "historic site",
    "ratings": [5, 4.5, 4],
    "description": "Former federal prison on an island in the bay."
  },
  {
    "id": "sf-1002",
    "name": "Twin Peaks",
    "coordinates": {"latitude": 37.7544, "longitude": -122.4477},
    "category": "viewpoint",
    "ratings": []
  }
]
`

var sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<pois>
  <poi>
    <pid>sf-2001</pid>
    <pname>Lands End</pname>
    <platitude>37.7799</platitude>
    <plongitude>-122.5116</plongitude>
    <pcategory>trail</pcategory>
    <pratings>4,5,4.5</pratings>
  </poi>
  <poi>
    <pid>sf-2002</pid>
    <pname>Palace of Fine Arts</pname>
    <platitude>37.8029</platitude>
    <plongitude>-122.4484</plongitude>
    <pcategory>landmark</pcategory>
    <pratings>4.5</pratings>
  </poi>
</pois>
`

func main() {
	dir := flag.String("dir", defaultSamplesDir, "directory for the sample files")
	dbPath := flag.String("db", "", "optional database path; when set, the samples are ingested into it")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("Failed to create samples directory: %v", err)
	}

	files := map[string]string{
		"pois.csv":  sampleCSV,
		"pois.json": sampleJSON,
		"pois.xml":  sampleXML,
	}

	var paths []string
	for name, content := range files {
		path := filepath.Join(*dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("Wrote %s", path)
		paths = append(paths, path)
	}

	if *dbPath == "" {
		return
	}

	// Start fresh so repeated runs produce the same database
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing sample database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ingestor := ingest.NewIngestor(pois.NewRepository(db.DB))
	for _, path := range paths {
		report, err := ingestor.IngestFile(path)
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", path, err)
		}
		log.Printf("Ingested %s: %d records", path, report.Succeeded)
	}

	count, err := pois.NewRepository(db.DB).Count()
	if err != nil {
		log.Fatalf("Failed to count records: %v", err)
	}
	log.Printf("Sample database ready at %s (%d records)", *dbPath, count)
}
