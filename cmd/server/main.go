package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/voxel-engine/internal/api"
	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/game"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/world"

	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

const frameRate = 60

func main() {
	configPath := flag.String("config", "", "путь к yaml-конфигу (иначе ENGINE_CONFIG или значения по умолчанию)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("engine"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🌍 Запуск воксельного движка...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	restAddr := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	logging.Info("📡 Конфигурация: seed=%d, радиус=%d, уровень моря=%d, REST=%s",
		cfg.World.Seed, cfg.World.Radius, cfg.World.SeaLevel, restAddr)

	ctx := context.Background()

	// === ТЕЛЕМЕТРИЯ ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, "voxel-engine")
	if err != nil {
		logging.Error("⚠️  Телеметрия недоступна: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === ШИНА СОБЫТИЙ ===
	bus := eventbus.NewMemoryBus(cfg.EventBus.Buffer)
	busMetrics := eventbus.NewMetricsExporter(bus)
	busMetrics.Start()
	defer busMetrics.Stop()
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Error("Ошибка подписки лог-слушателя: %v", err)
	}

	// === ГЕНЕРАЦИЯ МИРА ===
	logging.Debug("Генерация ландшафта...")
	started := time.Now()
	gen := world.NewTerrainGenerator(cfg.World.Seed, cfg.World.SeaLevel)
	store, heights := gen.Generate(ctx, cfg.World.Radius)
	logging.Info("✅ Мир сгенерирован: %d вокселей за %s", store.Size(), time.Since(started))

	ev := eventbus.NewEnvelope("server", eventbus.EventTypeWorldGenerated, nil)
	if err := bus.Publish(ctx, ev); err != nil {
		logging.Error("Ошибка публикации события генерации: %v", err)
	}

	// === ИГРОВАЯ СЕССИЯ ===
	session := game.NewSession(cfg, store, heights, bus)
	logging.Info("🧍 Тело появилось в %v", session.Body().Pos)

	// === REST API ===
	restServer := api.NewRestServer(api.Config{
		Port:    restAddr,
		Session: session,
	})
	go func() {
		if err := restServer.Start(); err != nil {
			logging.Error("❌ Ошибка REST сервера: %v", err)
		}
	}()

	// Отдельный Prometheus-эндпоинт для скрейпа вне REST-поверхности
	metricsAddr := fmt.Sprintf(":%d", cfg.Server.GetMetricsPort())
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logging.Error("❌ Ошибка сервера метрик: %v", err)
		}
	}()

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: http://localhost%s", restAddr)
	logging.Info("   📊 Метрики: http://localhost%s/metrics", metricsAddr)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restAddr)

	// === ИГРОВОЙ ЦИКЛ ===
	// Вся работа с миром выполняется этой горутиной: один кадр — один
	// забор ввода, одна интеграция, не более одной мутации.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	last := time.Now()
loop:
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			session.Step(session.ConsumeInput(), dt)
		case sig := <-sigCh:
			logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
			break loop
		}
	}

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := bus.Close(); err != nil {
		logging.Error("Ошибка остановки шины событий: %v", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки телеметрии: %v", err)
	}

	logging.Info("✅ Движок остановлен")
}
