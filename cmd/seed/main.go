// Command seed creates or rotates the admin account and optionally inserts sample projects.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nilehomes/landing/internal/config"
	"github.com/nilehomes/landing/internal/database"
	"github.com/nilehomes/landing/internal/modules/auth"
	"github.com/nilehomes/landing/internal/modules/project"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "Admin email (default $ADMIN_EMAIL)")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "Admin password (default $ADMIN_PASSWORD)")
	hashOnly := flag.String("hash", "", "Print a bcrypt hash for the given password and exit")
	samples := flag.Bool("samples", false, "Insert sample projects when absent")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if errors.Is(err, os.ErrNotExist) && *configPath == config.DefaultConfigPath {
		cfg, err = config.Parse(nil)
	}
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if *hashOnly != "" {
		hash, err := auth.HashPassword(*hashOnly, cfg.BcryptCost)
		if err != nil {
			logger.Fatal("hash password", zap.Error(err))
		}
		fmt.Println(hash)
		return
	}

	if *email == "" && !*samples {
		logger.Fatal("nothing to do: pass -email and -password, -samples, or -hash")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	ctx := context.Background()
	if *email != "" {
		admin, err := auth.NewService(db, nil).UpsertAdmin(ctx, *email, *password, cfg.BcryptCost)
		if err != nil {
			logger.Fatal("upsert admin", zap.String("email", *email), zap.Error(err))
		}
		logger.Info("admin ready", zap.Uint("id", admin.ID), zap.String("email", admin.Email))
	}

	if *samples {
		svc := project.NewService(db)
		for _, dto := range sampleProjects() {
			p, err := svc.Create(ctx, dto)
			switch {
			case errors.Is(err, apperr.ErrConflict):
				logger.Info("sample project exists", zap.String("slug", *dto.Slug))
			case err != nil:
				logger.Fatal("create sample project", zap.String("slug", *dto.Slug), zap.Error(err))
			default:
				logger.Info("sample project created", zap.String("slug", p.Slug), zap.Uint("id", p.ID))
			}
		}
	}
}

func str(s string) *string { return &s }

func sampleProjects() []project.ProjectDTO {
	return []project.ProjectDTO{
		{
			Slug:          str("cairo-business-plaza"),
			Title:         str("Cairo Business Plaza"),
			Subtitle:      str("Grade A offices in New Cairo"),
			Description:   str("Office and retail space with **direct access** to the Ring Road."),
			HeroImage:     str("/images/cairo-business-plaza/hero.jpg"),
			Location:      str("New Cairo"),
			Type:          str("Commercial"),
			Status:        str("Under Construction"),
			DeliveryDate:  str("2027"),
			StartingPrice: str("EGP 4,500,000"),
			Highlights:    []string{"Ring Road frontage", "Underground parking", "24/7 security"},
			FAQs: []project.FAQDTO{
				{Question: "What is the down payment?", Answer: "10% with installments over 7 years."},
			},
			Videos: []project.VideoDTO{
				{
					Title:        "Site tour",
					Category:     "Tour",
					ThumbnailURL: "/images/cairo-business-plaza/tour.jpg",
					VideoURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
					AspectRatio:  "16:9",
				},
			},
		},
		{
			Slug:          str("nile-view-residence"),
			Title:         str("Nile View Residence"),
			Subtitle:      str("Riverside apartments in Maadi"),
			Description:   str("Two residential towers overlooking the Nile.\n\n- Gym\n- Pool\n- Kids area"),
			HeroImage:     str("/images/nile-view-residence/hero.jpg"),
			Location:      str("Maadi, Cairo"),
			Type:          str("Residential"),
			Status:        str("Ready to Move"),
			StartingPrice: str("EGP 6,200,000"),
			Gallery: []project.GalleryImageDTO{
				{URL: "/images/nile-view-residence/lobby.jpg", Alt: str("Lobby")},
				{URL: "/images/nile-view-residence/pool.jpg", Alt: str("Pool")},
			},
		},
	}
}
