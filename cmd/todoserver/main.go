package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gerald-Wheaton/personal-todos/internal/config"
	"github.com/Gerald-Wheaton/personal-todos/internal/repository"
	"github.com/Gerald-Wheaton/personal-todos/internal/server"
	"github.com/Gerald-Wheaton/personal-todos/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	assigneeRepo := repository.NewAssigneeRepository(db)
	shareRepo := repository.NewShareRepository(db)
	pendingRepo := repository.NewPendingShareRepository(db)

	accessSvc := service.NewAccessService(shareRepo)
	sessionSvc := service.NewSessionService(userRepo, []byte(cfg.SessionSecret))
	pendingSvc := service.NewPendingShareService(pendingRepo)
	authSvc := service.NewAuthService(userRepo)
	cloneSvc := service.NewCloneService(db)
	categorySvc := service.NewCategoryService(categoryRepo, todoRepo, assigneeRepo, accessSvc)
	todoSvc := service.NewTodoService(todoRepo, categoryRepo, accessSvc)
	assigneeSvc := service.NewAssigneeService(assigneeRepo, todoRepo, categoryRepo, accessSvc)
	shareSvc := service.NewShareService(shareRepo, categoryRepo, userRepo)
	overviewSvc := service.NewOverviewService(todoRepo, categoryRepo)
	generatorSvc := service.NewGeneratorService(cfg.OpenAIAPIKey)

	srv := server.New(cfg, server.Deps{
		Sessions:   sessionSvc,
		Pending:    pendingSvc,
		Auth:       authSvc,
		Clone:      cloneSvc,
		Categories: categorySvc,
		Todos:      todoSvc,
		Assignees:  assigneeSvc,
		Shares:     shareSvc,
		Overview:   overviewSvc,
		Generator:  generatorSvc,
	})

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.PendingPurge, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		purged, err := pendingSvc.PurgeExpired(jobCtx, time.Now())
		if err != nil {
			log.Printf("purge pending shares: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("[info] purged %d expired pending shares", purged)
		}
	}); err != nil {
		log.Fatalf("schedule purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("[info] personal todos listening on %s", cfg.HTTPAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
