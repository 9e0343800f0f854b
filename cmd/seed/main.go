package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surya-tn99/lumi-your-voice-for-care/config"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/medication"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/nominee"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/user"
)

// Seeds a demo account so the companion has something to show on first
// run. Log in with the seeded phone number and the universal demo OTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDB)
	userRepository := user.NewUserRepository(db.Collection("users"))
	medicationRepository := medication.NewMedicationRepository(db.Collection("medications"))
	nomineeRepository := nominee.NewNomineeRepository(db.Collection("nominees"))

	const demoPhone = "9876543210"

	existing, err := userRepository.FindByPhone(ctx, demoPhone)
	if err != nil {
		log.Fatalf("Failed to check demo user: %v", err)
	}
	if existing != nil {
		log.Printf("Demo user %s already seeded", demoPhone)
		return
	}

	demoUser := &user.User{
		ID:         primitive.NewObjectID(),
		Fullname:   "Lakshmi Narayanan",
		Phone:      demoPhone,
		DOB:        "1948-03-12",
		BloodGroup: "B+",
		Address:    "12 Temple Street, Chennai",
		CreatedAt:  time.Now(),
	}
	if err := userRepository.Create(ctx, demoUser); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	today := time.Now().Format("2006-01-02")
	meds := []*medication.Medication{
		{ID: primitive.NewObjectID(), UserID: demoUser.ID, Name: "Metformin", Dosage: "500mg", ScheduledTime: "08:00", StartDate: today},
		{ID: primitive.NewObjectID(), UserID: demoUser.ID, Name: "Amlodipine", Dosage: "5mg", ScheduledTime: "13:00", StartDate: today},
		{ID: primitive.NewObjectID(), UserID: demoUser.ID, Name: "Atorvastatin", Dosage: "10mg", ScheduledTime: "21:00", StartDate: today},
	}
	for _, med := range meds {
		if err := medicationRepository.Create(ctx, med); err != nil {
			log.Fatalf("Failed to seed medication %s: %v", med.Name, err)
		}
	}

	nominees := []*nominee.Nominee{
		{ID: primitive.NewObjectID(), UserID: demoUser.ID, Name: "Surya", Relationship: "Son", Phone: "9876500001"},
		{ID: primitive.NewObjectID(), UserID: demoUser.ID, Name: "Priya", Relationship: "Daughter", Phone: "9876500002"},
	}
	for _, contact := range nominees {
		if err := nomineeRepository.Create(ctx, contact); err != nil {
			log.Fatalf("Failed to seed nominee %s: %v", contact.Name, err)
		}
	}

	log.Printf("Seeded demo user %s with %d medications and %d nominees", demoPhone, len(meds), len(nominees))
}
