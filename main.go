package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "altura-admin/internal/config"
	router "altura-admin/internal/http"
	"altura-admin/internal/http/handlers"
	"altura-admin/internal/jobs"
	"altura-admin/internal/logger"
	"altura-admin/internal/notify"
	"altura-admin/internal/repositories"
	"altura-admin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		logger.L().WithError(err).Fatal("konfigurasi tidak valid")
	}
	if err := logger.Init(logger.Config{
		Level:  env.LogLevel,
		Format: env.LogFormat,
		Output: env.LogOutput,
		File:   env.LogFile,
	}); err != nil {
		logger.L().WithError(err).Fatal("gagal menyiapkan logger")
	}
	log := logger.L()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	time.Local = env.Location()

	if _, err := intconfig.ConnectDB(env.DBDSN); err != nil {
		// history is optional; keep serving without it
		log.WithError(err).Warn("database tidak tersedia, riwayat ekspor dinonaktifkan")
	}
	defer intconfig.CloseDB()

	var store notify.Store = notify.NewMemoryStore()
	if env.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: env.RedisAddr, Password: env.RedisPassword, DB: env.RedisDB})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis tidak tersedia, notifikasi disimpan di memori")
			_ = rdb.Close()
		} else {
			store = notify.NewRedisStore(rdb)
			defer rdb.Close()
			log.WithField("addr", env.RedisAddr).Info("notifikasi memakai redis")
		}
		cancel()
	}

	apk := services.NewAPKProxy(env.APKUpstreamURL, &http.Client{})
	handlers.Configure(handlers.Deps{
		Bookings: repositories.BookingRepository{
			BaseURL:   env.BackendBaseURL,
			Client:    &http.Client{},
			UserAgent: "altura-admin/1.0",
		},
		BackendTimeout: env.BackendTimeout,
		Notify:         store,
		APK:            apk,
		Company:        env.Company(),
	})

	scheduler, err := jobs.StartAPKProbe(apk, env.APKProbeInterval, time.Local)
	if err != nil {
		log.WithError(err).Warn("apk probe tidak dijadwalkan")
	}

	// Router (Gin engine)
	r := router.NewRouter(env)
	handlers.SetRouter(r)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		// long enough for the APK relay
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Gagal menjalankan server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Mematikan server...")

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.WithError(err).Warn("scheduler shutdown")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Shutdown server gagal")
	}

	log.Info("Server berhenti dengan aman.")
}
