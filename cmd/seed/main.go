// Command seed prints the dataset the server would start from as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/tfortune6/perimeter-security/seed"
	"github.com/tfortune6/perimeter-security/store"
)

func main() {
	seedValue := pflag.Int64("seed", 0, "random seed; 0 picks a time-based seed")
	alarms := pflag.Int("alarms", seed.DefaultAlarmCount, "number of alarms to generate")
	videos := pflag.Int("videos", seed.DefaultVideoCount, "number of videos to generate")
	utc := pflag.Bool("utc", false, "generate timestamps in UTC instead of local time")
	pflag.Parse()

	loc := time.Local
	if *utc {
		loc = time.UTC
	}

	fmt.Fprintln(os.Stderr, "🌱 Generating dataset...")
	dataset := seed.Generate(seed.NewRand(*seedValue), seed.Config{
		Alarms:   *alarms,
		Videos:   *videos,
		Location: loc,
	})

	if err := writeDataset(os.Stdout, dataset); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to encode dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "✅ Generated %d alarms and %d videos\n", len(dataset.Alarms), len(dataset.Videos))
}

// writeDataset encodes d as indented JSON
func writeDataset(w io.Writer, d store.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
