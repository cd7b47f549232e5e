package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timekeep-hq/timekeep-backend-go/internal/config"
	appHTTP "github.com/timekeep-hq/timekeep-backend-go/internal/handler/http"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/cron"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/jwt"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/workday"
	"github.com/timekeep-hq/timekeep-backend-go/internal/repository/postgresql"
	attendanceService "github.com/timekeep-hq/timekeep-backend-go/internal/service/attendance"
	ledgerService "github.com/timekeep-hq/timekeep-backend-go/internal/service/ledger"
	notificationService "github.com/timekeep-hq/timekeep-backend-go/internal/service/notification"
	shiftService "github.com/timekeep-hq/timekeep-backend-go/internal/service/shift"
	"github.com/timekeep-hq/timekeep-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	directory := postgresql.NewEmployeeDirectory(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	workdayResolver := workday.NewResolver(
		cfg.App.Timezone,
		cfg.Engine.NightWindowStart,
		cfg.Engine.NightWindowEnd,
		cfg.Engine.BoundaryRefreshInterval,
	)
	calculator := timesheet.NewCalculator(
		cfg.Engine.DayExpectedHours,
		cfg.Engine.NightExpectedHours,
		cfg.Engine.DefaultExpectedHours,
		workdayResolver.Location(),
	)

	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})
	defer notificationSvc.Stop()

	shiftResolver := shiftService.NewResolver(
		shiftRepo,
		assignmentRepo,
		directory,
		cfg.Engine.CheckInTolerance,
		workdayResolver.Location(),
	)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		ledgerRepo,
		shiftRepo,
		assignmentRepo,
		shiftResolver,
		workdayResolver,
		calculator,
		cfg.Engine.CheckInTolerance,
		notificationSvc,
	)
	ledgerSvc := ledgerService.NewLedgerService(ledgerRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	ledgerHandler := appHTTP.NewLedgerHandler(ledgerSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	adminHandler := appHTTP.NewAdminHandler(attendanceSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, workdayResolver, 2).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		ledgerHandler,
		shiftHandler,
		adminHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down...")
	_ = server.Close()
}
