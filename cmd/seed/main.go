package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"campushub/internal/config"
	"campushub/internal/database"
	"campushub/internal/logger"
	"campushub/internal/models"
	"campushub/internal/repository"
	"campushub/internal/service"
)

// Seeds a fresh database with demo accounts, events, clubs, placement
// data and the FAQ knowledge base.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repos := repository.NewRepositories(db)

	organizer := seedUsers(ctx, repos, cfg.Auth.BcryptCost)
	seedEvents(ctx, repos, organizer)
	seedClubs(ctx, repos)
	seedPlacements(ctx, repos)
	seedFAQ(ctx, repos)

	log.Println("Seed complete")
}

func seedUsers(ctx context.Context, repos *repository.Repositories, bcryptCost int) int64 {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := []models.User{
		{Email: "admin@campushub.edu", Name: "Portal Admin", Role: models.RoleAdmin},
		{Email: "organizer@campushub.edu", Name: "Events Office", Role: models.RoleOrganizer},
		{Email: "student@campushub.edu", Name: "Sam Student", Role: models.RoleStudent},
	}

	var organizerID int64
	for i := range users {
		users[i].PasswordHash = string(hash)
		if err := repos.Users.Create(ctx, &users[i]); err != nil {
			log.Printf("Skipping user %s: %v", users[i].Email, err)
			continue
		}
		if users[i].Role == models.RoleOrganizer {
			organizerID = users[i].ID
		}
		log.Printf("Created user %s (%s)", users[i].Email, users[i].Role)
	}

	if organizerID == 0 {
		existing, err := repos.Users.GetByEmail(ctx, "organizer@campushub.edu")
		if err != nil || existing == nil {
			log.Fatal("No organizer account available for seeding events")
		}
		organizerID = existing.ID
	}
	return organizerID
}

func seedEvents(ctx context.Context, repos *repository.Repositories, organizerID int64) {
	rules := "Teams of up to 4. Bring your own laptop."
	prizes := "1st: 50,000. 2nd: 25,000. 3rd: 10,000."
	venue := "Main Auditorium"
	startTime := "09:00"

	events := []struct {
		title    string
		category string
		daysOut  int
		details  *models.EventDetails
		tickets  []models.TicketType
	}{
		{
			title:    "TechFest Hackathon",
			category: "technical",
			daysOut:  14,
			details:  &models.EventDetails{Rules: &rules, Prizes: &prizes},
			tickets: []models.TicketType{
				{Name: "Participant", Price: 0, Total: 200, Available: 200},
			},
		},
		{
			title:    "Annual Cultural Night",
			category: "cultural",
			daysOut:  30,
			tickets: []models.TicketType{
				{Name: "General", Price: 100, Total: 500, Available: 500},
				{Name: "VIP", Price: 500, Total: 50, Available: 50},
			},
		},
		{
			title:    "Inter-College Football Cup",
			category: "sports",
			daysOut:  7,
		},
	}

	for _, e := range events {
		event := &models.Event{
			Title:              e.title,
			Slug:               service.Slugify(e.title),
			Category:           e.category,
			Date:               time.Now().AddDate(0, 0, e.daysOut),
			Time:               &startTime,
			Venue:              &venue,
			VenueCapacity:      600,
			OrganizerID:        organizerID,
			Status:             "upcoming",
			RegistrationStatus: "open",
		}
		if err := repos.Events.Create(ctx, event, e.details, e.tickets); err != nil {
			log.Printf("Skipping event %q: %v", e.title, err)
			continue
		}
		log.Printf("Created event %q (%s)", event.Title, event.Slug)
	}
}

func seedClubs(ctx context.Context, repos *repository.Repositories) {
	desc := "Weekly sessions, open to all branches."
	clubs := []models.Club{
		{Name: "Coding Club", Category: "technical", Description: &desc},
		{Name: "Drama Society", Category: "cultural", Description: &desc},
		{Name: "Photography Club", Category: "arts", Description: &desc},
	}

	for i := range clubs {
		clubs[i].Slug = service.Slugify(clubs[i].Name)
		if err := repos.Clubs.Create(ctx, &clubs[i]); err != nil {
			log.Printf("Skipping club %q: %v", clubs[i].Name, err)
			continue
		}
		log.Printf("Created club %q", clubs[i].Name)
	}
}

func seedPlacements(ctx context.Context, repos *repository.Repositories) {
	sector := "Software"
	ctc := "12 LPA"
	company := &models.PlacementCompany{
		Name:   "Acme Systems",
		Sector: &sector,
		CTC:    &ctc,
		Status: "completed",
	}
	if err := repos.Placements.CreateCompany(ctx, company); err != nil {
		log.Printf("Skipping company: %v", err)
		return
	}

	branch := "CSE"
	pkg := "12 LPA"
	students := []models.PlacedStudent{
		{CompanyID: company.ID, StudentName: "Priya Sharma", Branch: &branch, Package: &pkg, Year: 2025},
		{CompanyID: company.ID, StudentName: "Rahul Verma", Branch: &branch, Package: &pkg, Year: 2025},
	}
	for i := range students {
		if err := repos.Placements.CreateStudent(ctx, &students[i]); err != nil {
			log.Printf("Skipping placed student: %v", err)
		}
	}
	log.Printf("Created placement data for %q", company.Name)
}

func seedFAQ(ctx context.Context, repos *repository.Repositories) {
	entries := []models.FAQEntry{
		{
			Question: "How do I register for an event?",
			Answer:   "Open the event page and press Register. You need to be logged in; your confirmation shows up under My Registrations.",
			Keywords: "register,registration,sign up,join event",
			Category: "events",
		},
		{
			Question: "How do I cancel my registration?",
			Answer:   "Go to My Registrations and press Cancel next to the event. Your spot is released immediately.",
			Keywords: "cancel,cancellation,withdraw",
			Category: "events",
		},
		{
			Question: "How can I join a club?",
			Answer:   "Check the Clubs page for the club's coordinator and contact them directly. Most clubs accept members at the start of each semester.",
			Keywords: "club,join club,society,membership",
			Category: "clubs",
		},
		{
			Question: "Where can I see placement statistics?",
			Answer:   "The Placements page lists visiting companies, placed students and year-wise statistics.",
			Keywords: "placement,placements,company,ctc,salary",
			Category: "placements",
		},
		{
			Question: "Are events free to attend?",
			Answer:   "Many events are free. Paid events show ticket prices on the event page before you register.",
			Keywords: "ticket,price,fee,cost,free",
			Category: "events",
		},
	}

	for i := range entries {
		if err := repos.FAQ.Create(ctx, &entries[i]); err != nil {
			log.Printf("Skipping FAQ entry: %v", err)
			continue
		}
	}
	log.Printf("Created %d FAQ entries", len(entries))
}
