package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/voxel-engine/internal/game"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/middleware"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// RestServer — REST-поверхность движка: опрос состояния для HUD,
// батчи для рендера и прием ввода. Обработчики не трогают мир напрямую:
// ввод кладется в почтовый ящик сессии, мутации выполняет игровой цикл.
type RestServer struct {
	router  *gin.Engine
	session *game.Session
	port    string
	metrics *ServerMetrics
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port    string        // порт для запуска сервера
	Session *game.Session // игровая сессия
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("engine_api"))

	promMw := middleware.NewPrometheusMiddleware("engine_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:  router,
		session: config.Session,
		port:    config.Port,
		metrics: NewServerMetrics(),
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := rs.router.Group("/api")
	{
		api.GET("/status", rs.handleStatus)
		api.GET("/pick", rs.handlePick)
		api.GET("/batches", rs.handleBatches)
		api.POST("/input", rs.handleInput)
		api.POST("/action", rs.handleAction)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InputRequest — ввод движения от клиентского слоя трансляции ввода.
// Look задает направление взгляда в мировых координатах.
type InputRequest struct {
	Forward float64       `json:"forward"`
	Strafe  float64       `json:"strafe"`
	Ascend  float64       `json:"ascend"`
	Sprint  bool          `json:"sprint"`
	Jump    bool          `json:"jump"`
	Look    vec.Vec3Float `json:"look"`
}

// ActionRequest — дискретное действие: break, place или fly_toggle
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
	Kind   uint16 `json:"kind"`
}

// handleStatus возвращает снимок HUD и метрики процесса
func (rs *RestServer) handleStatus(c *gin.Context) {
	hud := rs.session.HUD()

	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Состояние движка",
		Data: map[string]interface{}{
			"hud": hud,
			"server": map[string]interface{}{
				"uptime":      rs.metrics.GetUptime(),
				"memory_mb":   fmt.Sprintf("%.2f", memoryMB),
				"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
				"server_time": time.Now().Unix(),
			},
			"memory_details": rs.metrics.GetDetailedMemoryStats(),
		},
	})
}

// handlePick возвращает результат пика текущего кадра
func (rs *RestServer) handlePick(c *gin.Context) {
	pick, ok := rs.session.Pick()
	if !ok {
		c.JSON(http.StatusOK, GenericResponse{
			Success: true,
			Message: "Луч не попал в блок",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Блок в прицеле",
		Data:    pick,
	})
}

// handleBatches возвращает батчи рендер-инстансов по видам блоков.
// По умолчанию отдаются только размеры; ?positions=1 включает позиции.
func (rs *RestServer) handleBatches(c *gin.Context) {
	batches := rs.session.Batches()
	withPositions := c.Query("positions") == "1"

	counts := make(map[uint16]int, len(batches))
	positions := make(map[uint16][]vec.Vec3, len(batches))
	total := 0
	for kind, list := range batches {
		counts[uint16(kind)] = len(list)
		total += len(list)
		if withPositions {
			positions[uint16(kind)] = list
		}
	}

	data := map[string]interface{}{
		"counts": counts,
		"total":  total,
	}
	if withPositions {
		data["positions"] = positions
	}

	resp := GenericResponse{
		Success: true,
		Message: "Батчи видимости",
		Data:    data,
	}

	// Полный список позиций при типовом радиусе — десятки тысяч записей;
	// отдаем сжатым, если клиент поддерживает gzip
	if withPositions && strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
		body, err := json.Marshal(resp)
		if err != nil {
			c.JSON(http.StatusInternalServerError, GenericResponse{
				Success: false,
				Message: "Ошибка сериализации батчей: " + err.Error(),
			})
			return
		}

		c.Header("Content-Encoding", "gzip")
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Status(http.StatusOK)
		gz := gzip.NewWriter(c.Writer)
		if _, err := gz.Write(body); err != nil {
			logging.Error("Ошибка записи сжатых батчей: %v", err)
		}
		if err := gz.Close(); err != nil {
			logging.Error("Ошибка завершения gzip-потока: %v", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleInput принимает ввод движения и кладет его в почтовый ящик кадра
func (rs *RestServer) handleInput(c *gin.Context) {
	var req InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	rs.session.SubmitInput(game.FrameInput{
		Move: physics.MoveIntent{
			Forward: req.Forward,
			Strafe:  req.Strafe,
			Ascend:  req.Ascend,
			Sprint:  req.Sprint,
			Jump:    req.Jump,
		},
		Look: req.Look,
	})

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Ввод принят",
	})
}

// handleAction принимает дискретное действие.
// Политика (неразрушимость бедрока, занятые клетки, самозамуровывание)
// применяется игровым циклом, поэтому ответ здесь — только о приеме.
func (rs *RestServer) handleAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	var in game.FrameInput
	switch req.Action {
	case "break":
		in.Break = true
	case "place":
		kind := block.BlockID(req.Kind)
		if !block.IsValidBlockID(kind) {
			c.JSON(http.StatusBadRequest, GenericResponse{
				Success: false,
				Message: fmt.Sprintf("Неизвестный вид блока: %d", req.Kind),
			})
			return
		}
		in.Place = true
		in.PlaceKind = kind
	case "fly_toggle":
		in.FlyToggle = true
	default:
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неизвестное действие: " + req.Action,
		})
		return
	}

	rs.session.SubmitAction(in)

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Действие принято",
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает REST сервер
func (rs *RestServer) Start() error {
	return rs.router.Run(rs.port)
}

// Handler возвращает корневой http.Handler роутера (тесты, встраивание)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}
