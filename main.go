package main

import (
	"log"

	"Osprey/CronJobs"
	"Osprey/FiberConfig"
	"Osprey/Models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	Models.Connect()

	checker := CronJobs.NewInspectionChecker(true)
	if err := checker.Start(); err != nil {
		log.Printf("Failed to start inspection sweep: %v", err)
	}

	FiberConfig.FiberConfig(Models.DB)
}
