package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "orderhub/docs"
	"orderhub/internal/domain"
	"orderhub/internal/http/middleware"
	"orderhub/internal/logging"
	"orderhub/internal/metrics"
	"orderhub/internal/repository"
	"orderhub/internal/service"
)

type Server struct {
	engine *gin.Engine
	orders *service.OrderService
}

func NewServer(orders *service.OrderService) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(logging.New("http")), middleware.Metrics())
	s := &Server{engine: r, orders: orders}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// any other method or path: 404 with an empty body
	s.engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	v1 := s.engine.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)
	}
}

type orderItemReq struct {
	ProductID int64 `json:"ProductID"`
	Quantity  int64 `json:"Quantity"`
}

// createOrderReq documents the body; decoding goes through service.DecodeCreateOrderRequest.
type createOrderReq struct {
	Total      string         `json:"Total"`
	CustomerID int64          `json:"CustomerID"`
	OrderItems []orderItemReq `json:"OrderItems"`
}

type createdResp struct {
	Status  string `json:"status"`
	OrderID int64  `json:"order_id"`
}

type errorResp struct {
	ErrorCode domain.ErrorCode `json:"error_code"`
	Error     string           `json:"error"`
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} createdResp
// @Failure 400 {object} errorResp
// @Failure 500 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, domain.NewValidationError(domain.MissingRequiredInputs))
		return
	}
	req, err := service.DecodeCreateOrderRequest(body)
	if err != nil {
		metrics.ValidationFailed(domain.MissingRequiredInputs)
		s.writeError(c, err)
		return
	}
	o, err := s.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResp{Status: "created", OrderID: o.ID})
}

// @Summary List orders of a distribution hub
// @Tags orders
// @Produce json
// @Param DistributionHubID query int true "Distribution hub ID"
// @Success 200 {array} domain.Order
// @Failure 400 {object} errorResp
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	var hubID *int64
	if v, ok := c.GetQuery("DistributionHubID"); ok {
		if id, err := parseID(v); err == nil {
			hubID = &id
		}
	}
	list, err := s.orders.ListOrders(c.Request.Context(), hubID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResp
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	var id *int64
	if v, err := parseID(c.Param("id")); err == nil {
		id = &v
	}
	o, err := s.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, errorResp{ErrorCode: ve.Code, Error: ve.Code.String()})
		return
	}
	_ = c.Error(err)
	logging.FromCtx(c.Request.Context()).Error("request failed", "error", err)
	status := mapErrorToStatus(err)
	msg := "internal error"
	if status == http.StatusNotFound {
		msg = "not found"
	}
	c.JSON(status, gin.H{"error": msg})
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
