package controller

import (
	"dev-assessment-be/internal/dto"
	"dev-assessment-be/internal/pkg/logger"
	"dev-assessment-be/internal/pkg/serverutils"
	"dev-assessment-be/internal/service"
	internalWS "dev-assessment-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IAssessmentController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type assessmentController struct {
	assessmentService service.IAssessmentService
	hub               *internalWS.Hub
	logger            logger.ILogger
}

func NewAssessmentController(assessmentService service.IAssessmentService, hub *internalWS.Hub, log logger.ILogger) IAssessmentController {
	return &assessmentController{
		assessmentService: assessmentService,
		hub:               hub,
		logger:            log,
	}
}

func (c *assessmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assessment/v1")
	h.Post("analyze", c.Analyze)
	h.Get("health", c.Health)

	// WebSocket stream subscription
	r.Get("/ws/assessment/:stream_id", c.ServeWs)
}

func (c *assessmentController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.Analyze(ctx.Context(), &req)
	if err != nil {
		// Only model runtime transport failures reach this point; tool
		// failures are absorbed inside the synthesis loop.
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze developer", res))
}

func (c *assessmentController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", nil))
}

// ServeWs subscribes the connection to one assessment stream. The caller
// chooses the stream id and passes the same id in the analyze request.
func (c *assessmentController) ServeWs(ctx *fiber.Ctx) error {
	streamID, err := uuid.Parse(ctx.Params("stream_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid stream id")
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.logger.Info("AssessmentController", "Starting WebSocket session", map[string]interface{}{"stream_id": streamID})
			internalWS.ServeWs(c.hub, conn, streamID)
			c.logger.Info("AssessmentController", "WebSocket session ended", map[string]interface{}{"stream_id": streamID})
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
