package main

import (
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/BME310-2025-Spring-project/group1/internal/seed"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		out      = flag.String("out", "seed.json", "output path for the seed file")
		doctors  = flag.Int("doctors", 20, "generated doctors on top of the fixtures")
		policies = flag.Int("policies", 200, "generated policies on top of the fixtures")
	)
	flag.Parse()

	log.Printf("seed starting: doctors=%d policies=%d out=%s", *doctors, *policies, *out)

	gofakeit.Seed(time.Now().UnixNano())

	data := seed.Fixtures()
	data.Doctors = append(data.Doctors, seed.GenerateDoctors(*doctors)...)
	data.Policies = append(data.Policies, seed.GeneratePolicies(*policies)...)

	if err := seed.Save(*out, data); err != nil {
		log.Fatalf("save seed file: %v", err)
	}

	log.Printf("seed complete: %d doctors, %d policies", len(data.Doctors), len(data.Policies))
}
