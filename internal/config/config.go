package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/annel0/voxel-engine/internal/physics"
)

// Config корневая структура конфигурации движка.
// Все настраиваемые константы ядра живут здесь, а не в коде.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Ray      RayConfig      `yaml:"ray"`
	Server   ServerConfig   `yaml:"server"`
	EventBus EventBusConfig `yaml:"eventbus"`
}

// WorldConfig — параметры генерации мира
type WorldConfig struct {
	Seed     int64 `yaml:"seed"`
	Radius   int   `yaml:"radius"`    // Радиус кубоида генерации в колонках
	SeaLevel int   `yaml:"sea_level"` // Уровень моря: ниже — заливка водой
}

// PlayerConfig — параметры тела и интеграции движения
type PlayerConfig struct {
	WalkSpeed    float64 `yaml:"walk_speed"`
	SprintFactor float64 `yaml:"sprint_factor"`
	FlySpeed     float64 `yaml:"fly_speed"`
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	TerminalFall float64 `yaml:"terminal_fall"`
	Radius       float64 `yaml:"radius"`
	Height       float64 `yaml:"height"`
	DecayBase    float64 `yaml:"decay_base"` // База сглаживания скорости
	FloorY       float64 `yaml:"floor_y"`    // Жесткий пол мира
}

// RayConfig — параметры маршировки луча пика
type RayConfig struct {
	Step  float64 `yaml:"step"`  // Размер шага, мировые единицы
	Reach float64 `yaml:"reach"` // Максимальная дистанция пика
}

// ServerConfig — порты сервисных HTTP-поверхностей
type ServerConfig struct {
	RESTPort    int `yaml:"rest_port"`
	MetricsPort int `yaml:"metrics_port"`
}

// EventBusConfig — параметры in-memory шины событий
type EventBusConfig struct {
	Buffer int `yaml:"buffer"`
}

// Default возвращает конфигурацию с типовыми значениями
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:     1,
			Radius:   32,
			SeaLevel: 5,
		},
		Player: PlayerConfig{
			WalkSpeed:    4.0,
			SprintFactor: 1.6,
			FlySpeed:     10.0,
			Gravity:      25.0,
			JumpImpulse:  8.0,
			TerminalFall: 40.0,
			Radius:       0.35,
			Height:       1.7,
			DecayBase:    0.001,
			FloorY:       -0.5,
		},
		Ray: RayConfig{
			Step:  0.05,
			Reach: 6.0,
		},
		Server: ServerConfig{
			RESTPort:    8088,
			MetricsPort: 2112,
		},
		EventBus: EventBusConfig{
			Buffer: 1024,
		},
	}
}

// SolverConfig собирает конфигурацию решателя коллизий из параметров игрока
func (p PlayerConfig) SolverConfig() physics.SolverConfig {
	return physics.SolverConfig{
		WalkSpeed:    p.WalkSpeed,
		SprintFactor: p.SprintFactor,
		FlySpeed:     p.FlySpeed,
		Gravity:      p.Gravity,
		JumpImpulse:  p.JumpImpulse,
		TerminalFall: p.TerminalFall,
		Radius:       p.Radius,
		Height:       p.Height,
		DecayBase:    p.DecayBase,
		FloorY:       p.FloorY,
	}
}

// GetRESTPort возвращает REST порт с приоритетом: config -> env -> default
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "ENGINE_REST_PORT", 8088)
}

// GetMetricsPort возвращает Prometheus порт с приоритетом: config -> env -> default
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "ENGINE_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV ENGINE_CONFIG;
// без файла возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("ENGINE_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
