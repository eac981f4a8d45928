package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tutorbot/core/bootstrap"
	corecmd "tutorbot/core/cmd"
	"tutorbot/core/telegram"
	"tutorbot/internal/bot"
	"tutorbot/internal/config"
	"tutorbot/internal/dialog"
	"tutorbot/internal/dialog/session"
	"tutorbot/internal/domain"
	"tutorbot/internal/service"
	"tutorbot/internal/storage"
)

func main() {
	os.Exit(corecmd.Run(run))
}

func run(ctx context.Context) error {
	// Local development keeps secrets in .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(corecmd.ConfigPath())
	if err != nil {
		return err
	}

	db, err := bootstrap.Init(bootstrap.Options{
		Core:     cfg.Core(),
		Database: cfg.Database,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	studentStore := storage.NewStudents(db)
	taskStore, err := storage.NewMaterials(db, domain.KindTask)
	if err != nil {
		return err
	}
	noteStore, err := storage.NewMaterials(db, domain.KindNote)
	if err != nil {
		return err
	}
	variantStore := storage.NewVariants(db)

	students := service.NewStudents(studentStore)
	tasks := service.NewMaterials(taskStore)
	notes := service.NewMaterials(noteStore)
	variants := service.NewVariants(variantStore, studentStore)

	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessions session.Store
	if cfg.Session.Backend == "bigcache" {
		cache, err := session.NewCacheStore(ttl)
		if err != nil {
			return fmt.Errorf("session cache: %w", err)
		}
		defer cache.Close()
		sessions = cache
	} else {
		mem := session.NewMemoryStore(ttl)
		defer mem.Close()
		sessions = mem
	}

	engine := dialog.NewEngine(dialog.Options{
		Sessions: sessions,
		Students: students,
		Tasks:    tasks,
		Notes:    notes,
		Variants: variants,
		AdminIDs: cfg.Bot.AdminIDs,
	})
	binding := bot.New(engine, bot.NewStats(cfg.Bot.AdminIDs, students, tasks, notes))

	return telegram.RunTelegram(ctx, telegram.RunOptions{
		Config: cfg.Core(),
		Routes: binding.Register,
	})
}
