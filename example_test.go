package flapship_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/veloboard/flapship"
)

// Example shows the embedding pattern: one instance per process, so every
// dispatch path shares the same rate gate.
func Example() {
	fs, err := flapship.New(flapship.Config{
		APIKey:    "your-read-write-key",
		CacheDir:  "/var/lib/flapship",
		Freshness: 45 * time.Minute,
	})
	if err != nil {
		log.Fatal(err)
	}

	outcome, err := fs.ShowMessage(context.Background(), flapship.Content{
		Title:  "STAGE 12",
		Accent: "red",
		Lines: []flapship.Line{
			{Text: "POGACAR  4:51:12"},
			{Text: "VINGEGAARD  +0:28"},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(outcome.Status)
}
